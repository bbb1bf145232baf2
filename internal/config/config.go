package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Log struct {
		Level string `yaml:"level"` // debug | info | warn | error
	} `yaml:"log"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Metrics struct {
		// Con addr vacío, /metrics se monta en el server principal.
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`

	Board struct {
		MaxRecords     int    `yaml:"max_records"`
		Retention      string `yaml:"retention"`
		PresenceWindow string `yaml:"presence_window"` // <=0 desactiva expiración
		StreamInterval string `yaml:"stream_interval"`
	} `yaml:"board"`

	Storage struct {
		// memory | postgres (solo para cuentas de usuario; el canvas es
		// siempre in-memory)
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"storage"`

	Auth struct {
		Enabled bool `yaml:"enabled"`
		Session struct {
			CookieName string `yaml:"cookie_name"`
			SameSite   string `yaml:"samesite"`
			Secure     bool   `yaml:"secure"`
			TTL        string `yaml:"ttl"`
		} `yaml:"session"`
	} `yaml:"auth"`

	JWT struct {
		Issuer string `yaml:"issuer"`
		Secret string `yaml:"secret"` // preferible via JWT_SECRET
	} `yaml:"jwt"`

	Rate struct {
		Enabled     bool   `yaml:"enabled"`
		Window      string `yaml:"window"`
		MaxRequests int    `yaml:"max_requests"`
		Redis       struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"rate"`
}

// Load lee el YAML (si path existe), aplica defaults y pisa con env vars.
// Un path vacío arranca todo por defaults+env: útil en dev y en tests.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Board.MaxRecords == 0 {
		c.Board.MaxRecords = 1000
	}
	if c.Board.Retention == "" {
		c.Board.Retention = "1h"
	}
	if c.Board.PresenceWindow == "" {
		c.Board.PresenceWindow = "5m"
	}
	if c.Board.StreamInterval == "" {
		c.Board.StreamInterval = "1s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Auth.Session.CookieName == "" {
		c.Auth.Session.CookieName = "auth-token"
	}
	if c.Auth.Session.SameSite == "" {
		c.Auth.Session.SameSite = "Strict"
	}
	if c.Auth.Session.TTL == "" {
		c.Auth.Session.TTL = "168h" // 7d
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "inkboard"
	}
	if c.Rate.Window == "" {
		c.Rate.Window = "1m"
	}
	if c.Rate.MaxRequests == 0 {
		c.Rate.MaxRequests = 120
	}
	if c.Rate.Redis.Prefix == "" {
		c.Rate.Redis.Prefix = "inkboard:rate"
	}

	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}
func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}, true
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}
	if v, ok := getEnvStr("METRICS_ADDR"); ok {
		c.Metrics.Addr = v
	}

	// BOARD
	if v, ok := getEnvInt("BOARD_MAX_RECORDS"); ok {
		c.Board.MaxRecords = v
	}
	if v, ok := getEnvStr("BOARD_RETENTION"); ok {
		c.Board.Retention = v
	}
	if v, ok := getEnvStr("BOARD_PRESENCE_WINDOW"); ok {
		c.Board.PresenceWindow = v
	}
	if v, ok := getEnvStr("BOARD_STREAM_INTERVAL"); ok {
		c.Board.StreamInterval = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}

	// AUTH / JWT
	if v, ok := getEnvBool("AUTH_ENABLED"); ok {
		c.Auth.Enabled = v
	}
	if v, ok := getEnvStr("AUTH_SESSION_COOKIE_NAME"); ok {
		c.Auth.Session.CookieName = v
	}
	if v, ok := getEnvStr("AUTH_SESSION_SAMESITE"); ok {
		c.Auth.Session.SameSite = v
	}
	if v, ok := getEnvBool("AUTH_SESSION_SECURE"); ok {
		c.Auth.Session.Secure = v
	}
	if v, ok := getEnvStr("AUTH_SESSION_TTL"); ok {
		c.Auth.Session.TTL = v
	}
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}

	// RATE
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvStr("RATE_WINDOW"); ok {
		c.Rate.Window = v
	}
	if v, ok := getEnvInt("RATE_MAX_REQUESTS"); ok {
		c.Rate.MaxRequests = v
	}
	if v, ok := getEnvStr("RATE_REDIS_ADDR"); ok {
		c.Rate.Redis.Addr = v
	}
	if v, ok := getEnvStr("RATE_REDIS_PASSWORD"); ok {
		c.Rate.Redis.Password = v
	}
	if v, ok := getEnvInt("RATE_REDIS_DB"); ok {
		c.Rate.Redis.DB = v
	}
	if v, ok := getEnvStr("RATE_REDIS_PREFIX"); ok {
		c.Rate.Redis.Prefix = v
	}
}

// Validate chequea los valores críticos que no pueden resolverse con defaults.
func (c *Config) Validate() error {
	for name, s := range map[string]string{
		"board.retention":       c.Board.Retention,
		"board.presence_window": c.Board.PresenceWindow,
		"board.stream_interval": c.Board.StreamInterval,
		"auth.session.ttl":      c.Auth.Session.TTL,
		"rate.window":           c.Rate.Window,
	} {
		if _, err := time.ParseDuration(s); err != nil {
			return fmt.Errorf("config: invalid duration for %s: %q", name, s)
		}
	}
	if c.Board.MaxRecords < 0 {
		return fmt.Errorf("config: board.max_records must be >= 0")
	}
	switch c.Storage.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && c.Storage.DSN == "" {
		return fmt.Errorf("config: storage.dsn is required with the postgres driver")
	}
	if c.Auth.Enabled && c.JWT.Secret == "" {
		return fmt.Errorf("config: jwt.secret (or JWT_SECRET) is required with auth enabled")
	}
	if c.Rate.Enabled && c.Rate.Redis.Addr == "" {
		return fmt.Errorf("config: rate.redis.addr is required with rate limiting enabled")
	}
	return nil
}

// Duration devuelve una duración ya validada por Load.
func Duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
