package board

import (
	"net/http"
	"time"

	dto "github.com/dropDatabas3/inkboard/internal/http/dto/board"
	httperrors "github.com/dropDatabas3/inkboard/internal/http/errors"
	svc "github.com/dropDatabas3/inkboard/internal/http/services/board"
	"github.com/dropDatabas3/inkboard/internal/observability/logger"
	"github.com/gorilla/websocket"
)

// DefaultStreamInterval matches the polling cadence of HTTP clients.
const DefaultStreamInterval = time.Second

const streamWriteTimeout = 5 * time.Second

// StreamController handles GET /api/board/stream: a websocket that pushes the
// same payload as fetch, once on connect and then on every tick. It is a
// push-based alternative to polling, nothing more; clients reconcile each
// snapshot exactly as if they had fetched it.
type StreamController struct {
	service svc.SyncService

	// Interval entre snapshots; cero usa DefaultStreamInterval.
	Interval time.Duration

	upgrader websocket.Upgrader
}

// NewStreamController creates a new stream controller.
func NewStreamController(service svc.SyncService) *StreamController {
	return &StreamController{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// El CORS middleware ya filtra orígenes en el resto del API;
			// acá aceptamos todos igual que el original.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Stream upgrades the connection and pushes snapshots until the client goes
// away or the server shuts down.
func (c *StreamController) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("StreamController.Stream"))

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("userId")

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade ya respondió con el status que corresponde.
		log.Debug("websocket upgrade failed", logger.Err(err))
		return
	}
	defer conn.Close()

	// Drenar mensajes entrantes para detectar el close del cliente; el
	// stream es unidireccional, lo que llegue se ignora.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Debug("stream opened", logger.AuthorID(userID))

	interval := c.Interval
	if interval <= 0 {
		interval = DefaultStreamInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		recs, online, err := c.service.Fetch(ctx, userID)
		if err != nil {
			log.Error("stream fetch failed", logger.Err(err))
			return
		}

		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(dto.FetchResponse{Records: recs, Online: online}); err != nil {
			log.Debug("stream closed", logger.Err(err))
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
