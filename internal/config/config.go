package config

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"

	"timberd/internal/apperr"
)

// Config holds runtime configuration for the timberd API service.
type Config struct {
	Addr            string        `env:"ADDR,default=:8080"`
	Env             string        `env:"ENV,default=development"`
	DBDSN           string        `env:"DB_DSN,required"`
	JWTSigningKey   string        `env:"JWT_SIGNING_KEY,required"`
	JWTRefreshKey   string        `env:"JWT_REFRESH_KEY,required"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL,default=336h"`
	CookieDomain    string        `env:"COOKIE_DOMAIN"`
	CookieSecure    bool          `env:"COOKIE_SECURE,default=false"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SeedAdminEmail  string        `env:"SEED_ADMIN_EMAIL,default=admin@timberd.local"`
	SeedAdminPass   string        `env:"SEED_ADMIN_PASSWORD"`
}

// Production reports whether the service runs in production mode. Production
// mode withholds internal error detail from responses and marks cookies
// secure.
func (c Config) Production() bool { return c.Env == "production" }

// Load returns a Config populated from environment variables. A missing
// required variable is a fatal ConfigurationError, never a per-request one.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		if errors.Is(err, envconfig.ErrMissingRequired) {
			return Config{}, &apperr.ConfigurationError{Key: missingKey(err)}
		}
		return Config{}, err
	}
	return cfg, nil
}

// missingKey extracts the variable name from envconfig's
// "missing required value: NAME" error text.
func missingKey(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
