package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	dto "github.com/dropDatabas3/inkboard/internal/http/dto/auth"
	httperrors "github.com/dropDatabas3/inkboard/internal/http/errors"
	svc "github.com/dropDatabas3/inkboard/internal/http/services/auth"
	"github.com/dropDatabas3/inkboard/internal/observability/logger"
	"go.uber.org/zap"
)

const maxRegisterBodySize = 16 * 1024 // 16KB

// RegisterController handles POST /api/auth/register.
type RegisterController struct {
	service svc.Service
	cookie  dto.CookieConfig
}

// NewRegisterController creates a new register controller.
func NewRegisterController(service svc.Service, cookie dto.CookieConfig) *RegisterController {
	return &RegisterController{service: service, cookie: cookie}
}

// Register creates the account and opens the session in one step.
func (c *RegisterController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("RegisterController.Register"))

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRegisterBodySize)
	defer r.Body.Close()

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	u, token, err := c.service.Register(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	http.SetCookie(w, c.service.BuildSessionCookie(token, c.cookie))
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusCreated, dto.SessionResponse{
		Success: true,
		Message: "Account created successfully",
		User:    u,
		Token:   token,
	})

	log.Info("user registered", logger.UserID(u.ID))
}

// handleError maps service errors to HTTP responses.
func (c *RegisterController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, svc.ErrMissingFields):
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("all fields are required"))
	case errors.Is(err, svc.ErrPasswordMismatch):
		httperrors.WriteError(w, httperrors.ErrInvalidFormat.WithDetail("passwords do not match"))
	case errors.Is(err, svc.ErrPasswordTooShort):
		httperrors.WriteError(w, httperrors.ErrInvalidFormat.WithDetail("password must be at least 6 characters long"))
	case errors.Is(err, svc.ErrInvalidEmail):
		httperrors.WriteError(w, httperrors.ErrInvalidFormat.WithDetail("invalid email address"))
	case errors.Is(err, svc.ErrEmailTaken):
		httperrors.WriteError(w, httperrors.ErrEmailTaken)
	default:
		log.Error("registration error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
