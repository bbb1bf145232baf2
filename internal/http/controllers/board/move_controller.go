package board

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/inkboard/internal/http/dto/board"
	httperrors "github.com/dropDatabas3/inkboard/internal/http/errors"
	svc "github.com/dropDatabas3/inkboard/internal/http/services/board"
	"github.com/dropDatabas3/inkboard/internal/observability/logger"
)

const maxMoveBodySize = 4 * 1024 // 4KB

// MoveController handles POST /api/board/move.
type MoveController struct {
	service svc.SyncService
}

// NewMoveController creates a new move controller.
func NewMoveController(service svc.SyncService) *MoveController {
	return &MoveController{service: service}
}

// Move repositions every record carrying the given shape id.
func (c *MoveController) Move(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("MoveController.Move"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxMoveBodySize)
	defer r.Body.Close()

	var req dto.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	if req.ShapeID == "" || req.UserID == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("shapeId and userId are required"))
		return
	}
	// Punteros distinguen "0" de "ausente": x=0 es una coordenada válida.
	if req.X == nil || req.Y == nil {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("x and y are required"))
		return
	}

	if err := c.service.MoveShape(ctx, req.ShapeID, *req.X, *req.Y, req.UserID); err != nil {
		switch {
		case errors.Is(err, svc.ErrMissingShapeID), errors.Is(err, svc.ErrMissingAuthor):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("shapeId and userId are required"))
		default:
			log.Error("move failed", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.OKResponse{OK: true})
}
