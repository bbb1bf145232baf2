package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/inkboard/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/inkboard/internal/http/errors"
	"github.com/dropDatabas3/inkboard/internal/http/middlewares"
	svc "github.com/dropDatabas3/inkboard/internal/http/services/auth"
)

// MeController handles GET /api/auth/me.
type MeController struct {
	service svc.Service
}

// NewMeController creates a new me controller.
func NewMeController(service svc.Service) *MeController {
	return &MeController{service: service}
}

// Me resuelve la sesión actual. Sin token (o con token inválido) responde
// 200 con authenticated=false: el cliente usa esto para decidir si muestra
// el login, no es una condición de error.
func (c *MeController) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	w.Header().Set("Cache-Control", "no-store")

	claims := middlewares.GetClaims(ctx)
	if claims == nil {
		writeJSON(w, http.StatusOK, dto.MeResponse{Authenticated: false})
		return
	}

	u, err := c.service.UserFromClaims(ctx, claims)
	if err != nil {
		writeJSON(w, http.StatusOK, dto.MeResponse{Authenticated: false})
		return
	}

	writeJSON(w, http.StatusOK, dto.MeResponse{Authenticated: true, User: &u})
}
