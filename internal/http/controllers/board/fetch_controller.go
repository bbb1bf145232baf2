package board

import (
	"net/http"

	dto "github.com/dropDatabas3/inkboard/internal/http/dto/board"
	httperrors "github.com/dropDatabas3/inkboard/internal/http/errors"
	svc "github.com/dropDatabas3/inkboard/internal/http/services/board"
	"github.com/dropDatabas3/inkboard/internal/observability/logger"
)

// FetchController handles GET /api/board/fetch.
type FetchController struct {
	service svc.SyncService
}

// NewFetchController creates a new fetch controller.
func NewFetchController(service svc.SyncService) *FetchController {
	return &FetchController{service: service}
}

// Fetch returns the full canvas snapshot plus the current presence list.
// The optional userId query parameter marks the caller as online.
func (c *FetchController) Fetch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("FetchController.Fetch"))

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("userId")

	recs, online, err := c.service.Fetch(ctx, userID)
	if err != nil {
		log.Error("fetch failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	// Snapshots quedan obsoletos en un tick de polling: nunca cachear.
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, dto.FetchResponse{Records: recs, Online: online})
}
