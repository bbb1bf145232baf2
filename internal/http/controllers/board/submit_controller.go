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

const maxSubmitBodySize = 64 * 1024 // 64KB

// SubmitController handles POST /api/board/submit.
type SubmitController struct {
	service svc.SyncService
}

// NewSubmitController creates a new submit controller.
func NewSubmitController(service svc.SyncService) *SubmitController {
	return &SubmitController{service: service}
}

// Submit appends one mutation record to the canvas.
func (c *SubmitController) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("SubmitController.Submit"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBodySize)
	defer r.Body.Close()

	var req dto.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	if req.Drawing == nil || req.UserID == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("drawing and userId are required"))
		return
	}

	if err := c.service.Submit(ctx, req.Drawing, req.UserID); err != nil {
		switch {
		case errors.Is(err, svc.ErrMissingRecord), errors.Is(err, svc.ErrMissingAuthor):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("drawing and userId are required"))
		case errors.Is(err, svc.ErrInvalidRecord):
			httperrors.WriteError(w, httperrors.ErrInvalidFormat.WithDetail(err.Error()))
		default:
			log.Error("submit failed", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.OKResponse{OK: true})
}
