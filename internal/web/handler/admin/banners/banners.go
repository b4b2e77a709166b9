// Package banners implements the admin banner endpoints.
package banners

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/sheetstore"
	"github.com/takapay/takapay/internal/web/handler"
)

// Path is the banner endpoint.
const Path = handler.RootPath + "/admin/banners"

// Service is the banner handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	records   *sheetstore.Store
	validator *validator.Validate
}

// Handler is the banner handler.
var Handler = Service{}

// Init initializes the banner handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.records = deps.Records
	s.validator = validator.New()

	app.Get(Path, deps.RequireAdmin, s.List)
	app.Post(Path, deps.RequireAdmin, s.Create)
	app.Delete(Path, deps.RequireAdmin, s.Delete)

	return nil
}

// List returns all banners in insertion order.
func (s *Service) List(c *fiber.Ctx) error {
	rows, err := s.records.ReadAll(c.Context(), schema.Banners)
	if err != nil {
		return handler.Fail(c, err)
	}

	banners := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		banners = append(banners, fiber.Map{
			"id":        row.Get("id"),
			"image":     row.Get("image"),
			"link":      row.Get("link"),
			"createdAt": row.Get("createdAt"),
		})
	}

	return handler.OK(c, fiber.Map{"banners": banners})
}

type createRequest struct {
	Image string `json:"image" validate:"required"`
	Link  string `json:"link"`
}

// Create adds one banner and returns its generated id.
func (s *Service) Create(c *fiber.Ctx) error {
	in := new(createRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	row := schema.Row{
		"id":    uuid.NewString(),
		"image": in.Image,
		"link":  in.Link,
	}
	row.SetTime("createdAt", time.Now())

	if err := s.records.Append(c.Context(), schema.Banners, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"id": row.Get("id")})
}

type deleteRequest struct {
	BannerID string `json:"bannerId" validate:"required"`
}

// Delete removes one banner by id.
func (s *Service) Delete(c *fiber.Ctx) error {
	in := new(deleteRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.records.DeleteWhere(c.Context(), schema.Banners, "id", in.BannerID); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, nil)
}
