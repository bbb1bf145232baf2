package auth

import (
	"net/http"

	dto "github.com/dropDatabas3/inkboard/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/inkboard/internal/http/errors"
	svc "github.com/dropDatabas3/inkboard/internal/http/services/auth"
)

// LogoutController handles POST /api/auth/logout.
type LogoutController struct {
	service svc.Service
	cookie  dto.CookieConfig
}

// NewLogoutController creates a new logout controller.
func NewLogoutController(service svc.Service, cookie dto.CookieConfig) *LogoutController {
	return &LogoutController{service: service, cookie: cookie}
}

// Logout expira la cookie de sesión. No hay server-side state que invalidar:
// el token sigue siendo válido hasta su exp, igual que el original.
func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	http.SetCookie(w, c.service.BuildDeletionCookie(c.cookie))
	writeJSON(w, http.StatusOK, dto.LogoutResponse{Success: true, Message: "Logged out successfully"})
}
