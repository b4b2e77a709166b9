// Package ping implements the connectivity check endpoint the mobile apps
// poll on startup.
package ping

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/web/handler"
)

// Path is the ping endpoint.
const Path = handler.RootPath + "/ping"

// Service is the ping handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the ping handler.
var Handler = Service{}

// Init initializes the ping handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg

	app.Get(Path, s.Get)

	return nil
}

// Get answers with the configured ping message.
func (s *Service) Get(c *fiber.Ctx) error {
	return handler.OK(c, fiber.Map{"message": s.cfg.Ping})
}
