// Package httpapi exposes the timberd domain over HTTP/JSON: session
// endpoints plus CRUD for users, species, wood lots, and transactions.
package httpapi

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"timberd/internal/activity"
	"timberd/internal/auth"
	"timberd/internal/config"
	"timberd/internal/services/species"
	"timberd/internal/services/transactions"
	"timberd/internal/services/users"
	"timberd/internal/services/woodlots"
)

// API wires the domain services, token issuer, and audit recorder for the
// HTTP handlers.
type API struct {
	users        *users.Service
	species      *species.Service
	woodlots     *woodlots.Service
	transactions *transactions.Service
	issuer       *auth.Issuer
	recorder     *activity.Recorder
	cookies      auth.CookieOptions
	origins      []string
	production   bool
	log          zerolog.Logger
}

// New initialises the API layer from configuration and an open database.
func New(cfg config.Config, database *gorm.DB, log zerolog.Logger) (*API, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}

	issuer, err := auth.NewIssuer(cfg.JWTSigningKey, cfg.JWTRefreshKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &API{
		users:        users.New(database, log),
		species:      species.New(database, log),
		woodlots:     woodlots.New(database, log),
		transactions: transactions.New(database, log),
		issuer:       issuer,
		recorder:     activity.NewRecorder(database, log),
		cookies: auth.CookieOptions{
			Domain: cfg.CookieDomain,
			Secure: cfg.CookieSecure || cfg.Production(),
		},
		origins:    cfg.AllowedOrigins,
		production: cfg.Production(),
		log:        log.With().Str("component", "httpapi").Logger(),
	}, nil
}

// requestTimeout bounds each handler's work against the store.
const requestTimeout = 60 * time.Second
