// Package daemon wires configuration, Google clients, adapters and the web
// service into one runnable unit. All remote clients are constructed here,
// once, and injected downward.
package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/drivestore"
	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/sheetstore"
	"github.com/takapay/takapay/internal/token"
	"github.com/takapay/takapay/internal/web"
	"github.com/takapay/takapay/internal/web/handler"
	"github.com/takapay/takapay/internal/web/middleware/auth"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	ctx := context.Background()

	records, objects, err := newStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tokens := token.NewService(cfg.Admin.Password, cfg.Admin.JWTSecret)

	deps := &handler.Deps{
		Tokens:       tokens,
		Records:      records,
		Objects:      objects,
		RequireAdmin: auth.RequireAdmin(tokens),
	}

	webService, err := web.New(cfg, deps)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		webService: webService,
	}, nil
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// newStores builds the tabular and object stores and makes sure every table
// tab carries its header. In dev mode without Google credentials both stores
// fall back to in-memory backends so the service stays runnable locally.
func newStores(ctx context.Context, cfg *config.Config) (*sheetstore.Store, *drivestore.Store, error) {
	var (
		sheetBackend sheetstore.Backend
		driveBackend drivestore.Backend
	)

	credsJSON, err := cfg.Google.CredentialsJSON()

	switch {
	case err == nil:
		if cfg.Google.SheetsID == "" {
			return nil, nil, config.ErrSheetsIDMissing
		}

		if cfg.Google.DriveFolderID == "" {
			return nil, nil, config.ErrDriveFolderIDMissing
		}

		sheetBackend, err = sheetstore.NewGoogleBackend(ctx, credsJSON, cfg.Google.SheetsID)
		if err != nil {
			return nil, nil, err
		}

		driveBackend, err = drivestore.NewGoogleBackend(ctx, credsJSON)
		if err != nil {
			return nil, nil, err
		}
	case cfg.DevMode && errors.Is(err, config.ErrGoogleCredsIncomplete):
		log.Warn().Msg("dev mode without google credentials: using in-memory stores")

		sheetBackend = sheetstore.NewMemoryBackend()
		driveBackend = drivestore.NewMemoryBackend()
	default:
		return nil, nil, err
	}

	records, err := sheetstore.New(sheetBackend)
	if err != nil {
		return nil, nil, err
	}

	objects, err := drivestore.New(driveBackend, cfg.Google.DriveFolderID)
	if err != nil {
		return nil, nil, err
	}

	for _, t := range schema.All() {
		if err := records.EnsureSchema(ctx, t); err != nil {
			return nil, nil, err
		}
	}

	return records, objects, nil
}
