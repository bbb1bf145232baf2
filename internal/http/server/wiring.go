// Package server arma el handler HTTP con todas sus dependencias.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/inkboard/internal/config"
	authctrl "github.com/dropDatabas3/inkboard/internal/http/controllers/auth"
	boardctrl "github.com/dropDatabas3/inkboard/internal/http/controllers/board"
	healthctrl "github.com/dropDatabas3/inkboard/internal/http/controllers/health"
	authdto "github.com/dropDatabas3/inkboard/internal/http/dto/auth"
	mw "github.com/dropDatabas3/inkboard/internal/http/middlewares"
	"github.com/dropDatabas3/inkboard/internal/http/router"
	authsvc "github.com/dropDatabas3/inkboard/internal/http/services/auth"
	boardsvc "github.com/dropDatabas3/inkboard/internal/http/services/board"
	"github.com/dropDatabas3/inkboard/internal/jwt"
	"github.com/dropDatabas3/inkboard/internal/metrics"
	"github.com/dropDatabas3/inkboard/internal/observability/logger"
	"github.com/dropDatabas3/inkboard/internal/presence"
	"github.com/dropDatabas3/inkboard/internal/rate"
	"github.com/dropDatabas3/inkboard/internal/store"
	storemem "github.com/dropDatabas3/inkboard/internal/store/memory"
	"github.com/dropDatabas3/inkboard/internal/users"
	usersmem "github.com/dropDatabas3/inkboard/internal/users/memory"
	userspg "github.com/dropDatabas3/inkboard/internal/users/pg"
)

// rateAdapter traduce el Result del limiter al tipo del middleware.
type rateAdapter struct {
	limiter rate.Limiter
}

func (a rateAdapter) Allow(ctx context.Context, key string) (mw.RateLimitResult, error) {
	res, err := a.limiter.Allow(ctx, key)
	if err != nil {
		return mw.RateLimitResult{}, err
	}
	return mw.RateLimitResult{
		Allowed:     res.Allowed,
		Remaining:   res.Remaining,
		RetryAfter:  res.RetryAfter,
		WindowTTL:   res.WindowTTL,
		CurrentHits: res.CurrentHits,
	}, nil
}

// Build instancia stores, services y controllers a partir de la config y
// devuelve el handler listo para servir junto con su cleanup.
func Build(ctx context.Context, cfg *config.Config) (http.Handler, func() error, error) {
	log := logger.With(logger.Component("server"))

	if err := metrics.RegisterBoard(nil); err != nil {
		return nil, nil, err
	}

	// Canvas store: siempre in-memory, el estado del board es efímero.
	canvas := storemem.New(store.Limits{
		MaxRecords: cfg.Board.MaxRecords,
		Retention:  config.Duration(cfg.Board.Retention),
	})
	tracker := presence.New(config.Duration(cfg.Board.PresenceWindow))

	sync := boardsvc.New(boardsvc.Deps{Canvas: canvas, Presence: tracker})
	boardControllers := boardctrl.NewControllers(sync)
	boardControllers.Stream.Interval = config.Duration(cfg.Board.StreamInterval)

	cleanups := []func() error{}
	cleanup := func() error {
		var first error
		for i := len(cleanups) - 1; i >= 0; i-- {
			if err := cleanups[i](); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	var readiness []healthctrl.ReadinessCheck

	// Cuentas de usuario: opcionales, el board funciona con authorIds
	// anónimos si auth está apagado.
	var authControllers *authctrl.Controllers
	if cfg.Auth.Enabled {
		var userStore users.Store
		switch cfg.Storage.Driver {
		case "postgres":
			pg, err := userspg.New(ctx, cfg.Storage.DSN)
			if err != nil {
				_ = cleanup()
				return nil, nil, err
			}
			cleanups = append(cleanups, func() error { pg.Close(); return nil })
			readiness = append(readiness, func() error {
				pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return pg.Ping(pingCtx)
			})
			userStore = pg
			log.Info("user store: postgres")
		default:
			userStore = usersmem.New()
			log.Info("user store: memory")
		}

		issuer := jwt.NewIssuer(cfg.JWT.Issuer, []byte(cfg.JWT.Secret))
		issuer.TTL = config.Duration(cfg.Auth.Session.TTL)

		service := authsvc.New(authsvc.Deps{Users: userStore, Issuer: issuer})
		authControllers = authctrl.NewControllers(service, authdto.CookieConfig{
			Name:     cfg.Auth.Session.CookieName,
			Secure:   cfg.Auth.Session.Secure,
			SameSite: cfg.Auth.Session.SameSite,
			MaxAge:   int(config.Duration(cfg.Auth.Session.TTL).Seconds()),
		})
	}

	var limiter mw.RateLimiter
	if cfg.Rate.Enabled {
		rl, err := rate.NewRedisLimiter(rate.Options{
			Addr:     cfg.Rate.Redis.Addr,
			Password: cfg.Rate.Redis.Password,
			DB:       cfg.Rate.Redis.DB,
			Prefix:   cfg.Rate.Redis.Prefix,
			Max:      cfg.Rate.MaxRequests,
			Window:   config.Duration(cfg.Rate.Window),
		})
		if err != nil {
			_ = cleanup()
			return nil, nil, err
		}
		cleanups = append(cleanups, rl.Close)
		limiter = rateAdapter{limiter: rl}
		log.Info("rate limiting enabled",
			logger.String("addr", cfg.Rate.Redis.Addr),
			logger.Int("max", cfg.Rate.MaxRequests),
		)
	}

	handler := router.New(router.Deps{
		Board:              boardControllers,
		Auth:               authControllers,
		Health:             healthctrl.NewHealthController(readiness...),
		JWTSecret:          []byte(cfg.JWT.Secret),
		JWTIssuer:          cfg.JWT.Issuer,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimiter:        limiter,
		ExposeMetrics:      cfg.Metrics.Addr == "",
	})

	return handler, cleanup, nil
}
