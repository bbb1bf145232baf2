// Package auth implementa el colaborador de identidad: emite los authorIDs
// opacos que el engine del canvas trata como etiquetas sin verificar.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	dto "github.com/dropDatabas3/inkboard/internal/http/dto/auth"
	"github.com/dropDatabas3/inkboard/internal/jwt"
	"github.com/dropDatabas3/inkboard/internal/observability/logger"
	"github.com/dropDatabas3/inkboard/internal/security/password"
	"github.com/dropDatabas3/inkboard/internal/users"
)

// Service defines account operations for the auth controllers.
type Service interface {
	Register(ctx context.Context, req dto.RegisterRequest) (users.User, string, error)
	Login(ctx context.Context, req dto.LoginRequest) (users.User, string, error)
	UserFromClaims(ctx context.Context, claims map[string]any) (users.User, error)
	BuildSessionCookie(token string, cfg dto.CookieConfig) *http.Cookie
	BuildDeletionCookie(cfg dto.CookieConfig) *http.Cookie
}

// Service errors
var (
	ErrMissingFields      = fmt.Errorf("all fields are required")
	ErrPasswordMismatch   = fmt.Errorf("passwords do not match")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least 6 characters long")
	ErrInvalidEmail       = fmt.Errorf("invalid email address")
	ErrEmailTaken         = fmt.Errorf("user with this email already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
)

// MinPasswordLength matches the original registration rule.
const MinPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Deps contains dependencies for the auth service.
type Deps struct {
	Users  users.Store
	Issuer *jwt.Issuer
	Hash   password.Params
}

type service struct {
	users  users.Store
	issuer *jwt.Issuer
	hash   password.Params
}

// New creates a Service. Zero Hash params fall back to password.Default.
func New(deps Deps) Service {
	h := deps.Hash
	if h.KeyLen == 0 {
		h = password.Default
	}
	return &service{users: deps.Users, issuer: deps.Issuer, hash: h}
}

// Register crea la cuenta, hashea el password y emite el token de sesión.
func (s *service) Register(ctx context.Context, req dto.RegisterRequest) (users.User, string, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth"), logger.Op("Register"))

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if firstName == "" || lastName == "" || email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return users.User{}, "", ErrMissingFields
	}
	if req.Password != req.ConfirmPassword {
		return users.User{}, "", ErrPasswordMismatch
	}
	if len(req.Password) < MinPasswordLength {
		return users.User{}, "", ErrPasswordTooShort
	}
	if !emailRe.MatchString(email) {
		return users.User{}, "", ErrInvalidEmail
	}

	phc, err := password.Hash(s.hash, req.Password)
	if err != nil {
		return users.User{}, "", err
	}

	u, err := s.users.Create(ctx, users.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: phc,
	})
	if err != nil {
		if err == users.ErrEmailTaken {
			return users.User{}, "", ErrEmailTaken
		}
		return users.User{}, "", err
	}

	token, err := s.issuer.Sign(u.ID, u.Email)
	if err != nil {
		return users.User{}, "", err
	}

	log.Info("account created", logger.UserID(u.ID))
	return u, token, nil
}

// Login verifica credenciales y emite el token de sesión.
func (s *service) Login(ctx context.Context, req dto.LoginRequest) (users.User, string, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth"), logger.Op("Login"))

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return users.User{}, "", ErrMissingFields
	}
	if !emailRe.MatchString(email) {
		return users.User{}, "", ErrInvalidEmail
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		log.Debug("user lookup failed", logger.Err(err))
		return users.User{}, "", ErrInvalidCredentials
	}
	if !password.Verify(req.Password, u.PasswordHash) {
		log.Debug("password mismatch", logger.UserID(u.ID))
		return users.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issuer.Sign(u.ID, u.Email)
	if err != nil {
		return users.User{}, "", err
	}

	log.Info("login successful", logger.UserID(u.ID))
	return u, token, nil
}

// UserFromClaims resuelve el usuario del token ya validado por el middleware.
func (s *service) UserFromClaims(ctx context.Context, claims map[string]any) (users.User, error) {
	uid, _ := claims["userId"].(string)
	if uid == "" {
		return users.User{}, ErrNotAuthenticated
	}
	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		return users.User{}, ErrNotAuthenticated
	}
	return u, nil
}

// BuildSessionCookie arma la cookie HttpOnly de sesión.
func (s *service) BuildSessionCookie(token string, cfg dto.CookieConfig) *http.Cookie {
	name := cfg.Name
	if name == "" {
		name = "auth-token"
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = int(jwt.DefaultTTL.Seconds())
	}
	return &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: parseSameSite(cfg.SameSite),
	}
}

// BuildDeletionCookie arma la cookie que borra la sesión en el browser.
func (s *service) BuildDeletionCookie(cfg dto.CookieConfig) *http.Cookie {
	name := cfg.Name
	if name == "" {
		name = "auth-token"
	}
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: parseSameSite(cfg.SameSite),
	}
}

func parseSameSite(v string) http.SameSite {
	switch strings.ToLower(v) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteStrictMode
	}
}
