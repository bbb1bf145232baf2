package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/inkboard/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/inkboard/internal/http/errors"
	svc "github.com/dropDatabas3/inkboard/internal/http/services/auth"
	"github.com/dropDatabas3/inkboard/internal/observability/logger"
)

const maxLoginBodySize = 16 * 1024 // 16KB

// LoginController handles POST /api/auth/login.
type LoginController struct {
	service svc.Service
	cookie  dto.CookieConfig
}

// NewLoginController creates a new login controller.
func NewLoginController(service svc.Service, cookie dto.CookieConfig) *LoginController {
	return &LoginController{service: service, cookie: cookie}
}

// Login verifies credentials and sets the session cookie.
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBodySize)
	defer r.Body.Close()

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	u, token, err := c.service.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, svc.ErrMissingFields):
			httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("email and password are required"))
		case errors.Is(err, svc.ErrInvalidEmail), errors.Is(err, svc.ErrInvalidCredentials):
			// Un email inexistente y un password incorrecto responden igual.
			httperrors.WriteError(w, httperrors.ErrInvalidCredentials)
		default:
			log.Error("login error", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrInternalServerError)
		}
		return
	}

	http.SetCookie(w, c.service.BuildSessionCookie(token, c.cookie))
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, dto.SessionResponse{
		Success: true,
		Message: "Login successful",
		User:    u,
		Token:   token,
	})

	log.Info("user logged in", logger.UserID(u.ID))
}
