package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/drivestore"
	"github.com/takapay/takapay/internal/sheetstore"
	"github.com/takapay/takapay/internal/token"
)

// Deps bundles the adapters every handler works against. Constructed once at
// daemon startup and injected through Init.
type Deps struct {
	Tokens  *token.Service
	Records *sheetstore.Store
	Objects *drivestore.Store

	// RequireAdmin guards admin routes; it rejects requests without a valid
	// admin bearer token.
	RequireAdmin fiber.Handler
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, deps *Deps) error
}
