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

const maxClearBodySize = 4 * 1024 // 4KB

// ClearController handles POST /api/board/clear.
type ClearController struct {
	service svc.SyncService
}

// NewClearController creates a new clear controller.
func NewClearController(service svc.SyncService) *ClearController {
	return &ClearController{service: service}
}

// Clear wipes the whole canvas. Presence is untouched: everyone stays online
// in front of an empty board.
func (c *ClearController) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("ClearController.Clear"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxClearBodySize)
	defer r.Body.Close()

	var req dto.ClearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	if req.UserID == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("userId is required"))
		return
	}

	if err := c.service.ClearAll(ctx, req.UserID); err != nil {
		switch {
		case errors.Is(err, svc.ErrMissingAuthor):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("userId is required"))
		default:
			log.Error("clear failed", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.OKResponse{OK: true})
}
