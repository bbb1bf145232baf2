package client

import (
	"context"
	"sync"
	"time"

	"github.com/dropDatabas3/inkboard/internal/board"
	dto "github.com/dropDatabas3/inkboard/internal/http/dto/board"
	"github.com/dropDatabas3/inkboard/internal/observability/logger"
)

// DefaultPollInterval es la cadencia de reconciliación contra el servidor.
const DefaultPollInterval = time.Second

// Reconciler mantiene una réplica local del canvas por polling. Cada tick
// reemplaza el estado completo con el snapshot del servidor: no hay merge,
// el servidor siempre gana. Las mutaciones locales se aplican de forma
// optimista y el siguiente tick las confirma o las revierte.
type Reconciler struct {
	client   *Client
	interval time.Duration

	// OnSnapshot se invoca después de cada reconciliación exitosa, con el
	// estado ya reemplazado. Útil para disparar un re-render.
	OnSnapshot func(recs []board.Record, online []string)

	mu     sync.RWMutex
	recs   []board.Record
	online []string
}

// NewReconciler crea un reconciler sobre el client dado. Un interval <= 0
// usa DefaultPollInterval.
func NewReconciler(c *Client, interval time.Duration) *Reconciler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Reconciler{client: c, interval: interval}
}

// Run reconcilia hasta que el contexto se cancele. Un fetch fallido no corta
// el loop: el estado local queda stale hasta el próximo tick exitoso.
func (r *Reconciler) Run(ctx context.Context) error {
	log := logger.With(logger.Component("reconciler"))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if err := r.Sync(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn("sync failed", logger.Err(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Sync hace una reconciliación inmediata.
func (r *Reconciler) Sync(ctx context.Context) error {
	resp, err := r.client.Fetch(ctx)
	if err != nil {
		return err
	}
	r.replace(resp)
	return nil
}

func (r *Reconciler) replace(resp dto.FetchResponse) {
	r.mu.Lock()
	r.recs = resp.Records
	r.online = resp.Online
	r.mu.Unlock()

	if r.OnSnapshot != nil {
		r.OnSnapshot(resp.Records, resp.Online)
	}
}

// Snapshot devuelve una copia del estado local.
func (r *Reconciler) Snapshot() []board.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]board.Record, len(r.recs))
	copy(out, r.recs)
	return out
}

// Online devuelve la lista de participantes presentes según el último sync.
func (r *Reconciler) Online() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.online))
	copy(out, r.online)
	return out
}

// ShapeAt resuelve el shape visible más arriba en (x, y) sobre la réplica
// local.
func (r *Reconciler) ShapeAt(x, y float64) *board.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return ShapeAt(x, y, r.recs)
}

// Submit manda un record y lo agrega localmente sin esperar al próximo tick.
func (r *Reconciler) Submit(ctx context.Context, rec board.Record) error {
	if err := r.client.Submit(ctx, rec); err != nil {
		return err
	}
	r.mu.Lock()
	r.recs = append(r.recs, rec)
	r.mu.Unlock()
	return nil
}

// MoveShape aplica el move optimista local y lo manda al servidor. Si el
// servidor lo rechaza, el próximo sync revierte la réplica.
func (r *Reconciler) MoveShape(ctx context.Context, shapeID string, x, y float64) error {
	r.mu.Lock()
	for i := range r.recs {
		if r.recs[i].ID == shapeID {
			r.recs[i].X = x
			r.recs[i].Y = y
		}
	}
	r.mu.Unlock()

	return r.client.MoveShape(ctx, shapeID, x, y)
}

// DeleteShape borra el shape local y lo manda al servidor.
func (r *Reconciler) DeleteShape(ctx context.Context, shapeID string) error {
	r.mu.Lock()
	kept := r.recs[:0]
	for _, rec := range r.recs {
		if rec.ID != shapeID {
			kept = append(kept, rec)
		}
	}
	r.recs = kept
	r.mu.Unlock()

	return r.client.DeleteShape(ctx, shapeID)
}
