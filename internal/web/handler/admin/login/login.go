// Package login implements the admin login and token verification endpoints.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/token"
	"github.com/takapay/takapay/internal/web/handler"
)

const (
	// Path is the admin login endpoint.
	Path = handler.RootPath + "/admin/login"

	// VerifyPath is the token verification endpoint.
	VerifyPath = handler.RootPath + "/admin/verify"
)

// Service is the admin login handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	tokens *token.Service
}

// Handler is the admin login handler.
var Handler = Service{}

// Init initializes the admin login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.tokens = deps.Tokens

	app.Post(Path, s.Post)
	app.Get(VerifyPath, deps.RequireAdmin, s.Verify)

	return nil
}

type loginRequest struct {
	Password string `json:"password"`
}

// Post handles the admin login request.
func (s *Service) Post(c *fiber.Ctx) error {
	in := new(loginRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	signed, err := s.tokens.Issue(in.Password)
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"token": signed, "role": token.RoleAdmin})
}

// Verify reports the role of an already verified bearer token. The admin
// middleware has done the actual verification before this runs.
func (s *Service) Verify(c *fiber.Ctx) error {
	return handler.OK(c, fiber.Map{"role": c.Locals("role")})
}
