package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Board-related Prometheus metrics. Defined in a standalone package to avoid
// import cycles between the store and HTTP packages.

var (
	BoardSubmits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_submits_total",
		Help: "Records aceptados via submit",
	})

	BoardFetches = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_fetches_total",
		Help: "Lecturas de snapshot (fetch)",
	})

	BoardMoves = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_moves_total",
		Help: "Operaciones moveShape (incluye no-ops)",
	})

	BoardDeletes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_deletes_total",
		Help: "Operaciones deleteShape (incluye no-ops)",
	})

	BoardClears = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_clears_total",
		Help: "Limpiezas completas del canvas",
	})

	BoardRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "board_records",
		Help: "Records vivos en el canvas store",
	})

	BoardRecordsEvicted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "board_records_evicted_total",
		Help: "Records descartados por cap o por retention window",
	})

	BoardOnlineUsers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "board_online_users",
		Help: "Participantes presentes segun el presence tracker",
	})
)

// RegisterBoard registers the board metrics on the given registry (or default if nil).
func RegisterBoard(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	collectors := []prometheus.Collector{
		BoardSubmits, BoardFetches, BoardMoves, BoardDeletes, BoardClears,
		BoardRecords, BoardRecordsEvicted, BoardOnlineUsers,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
