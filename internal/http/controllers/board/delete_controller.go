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

const maxDeleteBodySize = 4 * 1024 // 4KB

// DeleteController handles POST /api/board/delete.
type DeleteController struct {
	service svc.SyncService
}

// NewDeleteController creates a new delete controller.
func NewDeleteController(service svc.SyncService) *DeleteController {
	return &DeleteController{service: service}
}

// Delete removes every record carrying the given shape id. Deleting an id
// that no longer exists still succeeds.
func (c *DeleteController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("DeleteController.Delete"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDeleteBodySize)
	defer r.Body.Close()

	var req dto.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	if req.ShapeID == "" || req.UserID == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("shapeId and userId are required"))
		return
	}

	if err := c.service.DeleteShape(ctx, req.ShapeID, req.UserID); err != nil {
		switch {
		case errors.Is(err, svc.ErrMissingShapeID), errors.Is(err, svc.ErrMissingAuthor):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("shapeId and userId are required"))
		default:
			log.Error("delete failed", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.OKResponse{OK: true})
}
