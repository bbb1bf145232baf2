// Package router define las rutas HTTP del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authctrl "github.com/dropDatabas3/inkboard/internal/http/controllers/auth"
	boardctrl "github.com/dropDatabas3/inkboard/internal/http/controllers/board"
	healthctrl "github.com/dropDatabas3/inkboard/internal/http/controllers/health"
	httperrors "github.com/dropDatabas3/inkboard/internal/http/errors"
	mw "github.com/dropDatabas3/inkboard/internal/http/middlewares"
)

// Deps contiene las dependencias del router principal.
type Deps struct {
	Board  *boardctrl.Controllers
	Auth   *authctrl.Controllers
	Health *healthctrl.HealthController

	// JWT validation for the optional session layer.
	JWTSecret []byte
	JWTIssuer string

	CORSAllowedOrigins []string
	RateLimiter        mw.RateLimiter // opcional
	ExposeMetrics      bool           // monta /metrics en este mismo server
}

// New arma el router completo con su middleware stack.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Orden importa: recover primero, logging una vez que hay request id.
	r.Use(mw.WithRecover())
	r.Use(mw.WithRequestID())
	r.Use(mw.WithLogging())
	r.Use(mw.WithSecurityHeaders())
	r.Use(mw.WithCORS(deps.CORSAllowedOrigins))
	if deps.RateLimiter != nil {
		r.Use(mw.WithRateLimit(mw.RateLimitConfig{
			Limiter:   deps.RateLimiter,
			KeyFunc:   mw.IPPathRateKey,
			Whitelist: []string{"/healthz", "/readyz", "/metrics"},
		}))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	// Session: el token es opcional en todo el API. Los endpoints del board
	// aceptan authorIds anónimos; auth/me decide con las claims inyectadas.
	session := mw.WithAuth(mw.AuthConfig{
		Secret:   deps.JWTSecret,
		Issuer:   deps.JWTIssuer,
		Required: false,
	})

	r.Group(func(r chi.Router) {
		r.Use(session)
		r.Use(mw.WithNoStore())

		r.Post("/api/board/submit", deps.Board.Submit.Submit)
		r.Get("/api/board/fetch", deps.Board.Fetch.Fetch)
		r.Post("/api/board/move", deps.Board.Move.Move)
		r.Post("/api/board/delete", deps.Board.Delete.Delete)
		r.Post("/api/board/clear", deps.Board.Clear.Clear)
		r.Get("/api/board/stream", deps.Board.Stream.Stream)

		if deps.Auth != nil {
			r.Post("/api/auth/register", deps.Auth.Register.Register)
			r.Post("/api/auth/login", deps.Auth.Login.Login)
			r.Post("/api/auth/logout", deps.Auth.Logout.Logout)
			r.Get("/api/auth/me", deps.Auth.Me.Me)
		}
	})

	health := deps.Health
	if health == nil {
		health = healthctrl.NewHealthController()
	}
	r.Get("/healthz", health.Live)
	r.Get("/readyz", health.Ready)

	if deps.ExposeMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}
