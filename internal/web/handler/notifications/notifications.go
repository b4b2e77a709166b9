// Package notifications implements the per-phone notification endpoints.
package notifications

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

// Path is the notification endpoint.
const Path = handler.RootPath + "/notifications"

// Service is the notifications handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	records   *sheetstore.Store
	validator *validator.Validate
}

// Handler is the notifications handler.
var Handler = Service{}

// Init initializes the notifications handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.records = deps.Records
	s.validator = validator.New()

	app.Get(Path, s.List)
	app.Post(Path, s.Create)
	app.Post(Path+"/read", s.MarkRead)

	return nil
}

type createRequest struct {
	Phone string `json:"phone" validate:"required,len=11,numeric"`
	Title string `json:"title" validate:"required"`
	Body  string `json:"body"`
}

// Create adds one notification for a phone, unread.
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
		"phone": in.Phone,
		"title": in.Title,
		"body":  in.Body,
	}
	row.SetBool("read", false)
	row.SetTime("createdAt", time.Now())

	if err := s.records.Append(c.Context(), schema.Notifications, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"notification": row})
}

// List returns the notifications of one phone.
func (s *Service) List(c *fiber.Ctx) error {
	phone := c.Query("phone")
	if phone == "" {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	rows, err := s.records.FindAll(c.Context(), schema.Notifications, "phone", phone)
	if err != nil {
		return handler.Fail(c, err)
	}

	if rows == nil {
		rows = []schema.Row{}
	}

	return handler.OK(c, fiber.Map{"notifications": rows})
}

type readRequest struct {
	ID string `json:"id" validate:"required"`
}

// MarkRead marks one notification as read.
func (s *Service) MarkRead(c *fiber.Ctx) error {
	in := new(readRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	updated, err := s.records.UpdateWhere(c.Context(), schema.Notifications, "id", in.ID,
		func(row schema.Row) (schema.Row, error) {
			row.SetBool("read", true)
			return row, nil
		})
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"notification": updated})
}
