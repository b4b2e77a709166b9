// Package requests implements the cash-in/cash-out request queue endpoints
// of the admin console.
package requests

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

const (
	// Path is the request queue endpoint.
	Path = handler.RootPath + "/admin/requests"

	// StatusPending is the status of a freshly created request.
	StatusPending = "pending"
)

// Service is the request queue handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	records   *sheetstore.Store
	validator *validator.Validate
}

// Handler is the request queue handler.
var Handler = Service{}

// Init initializes the request queue handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.records = deps.Records
	s.validator = validator.New()

	app.Get(Path, deps.RequireAdmin, s.List)
	app.Post(Path, deps.RequireAdmin, s.Create)
	app.Post(Path+"/status", deps.RequireAdmin, s.SetStatus)

	return nil
}

type createRequest struct {
	Type   string  `json:"type" validate:"required,oneof=cashin cashout recharge"`
	Phone  string  `json:"phone" validate:"required,len=11,numeric"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required"`
	Number string  `json:"number" validate:"required"`
}

// Create adds one request in pending state.
func (s *Service) Create(c *fiber.Ctx) error {
	in := new(createRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	now := time.Now()
	row := schema.Row{
		"id":     uuid.NewString(),
		"type":   in.Type,
		"phone":  in.Phone,
		"method": in.Method,
		"number": in.Number,
		"status": StatusPending,
	}
	row.SetNumber("amount", in.Amount)
	row.SetTime("createdAt", now)
	row.SetTime("updatedAt", now)

	if err := s.records.Append(c.Context(), schema.Requests, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"id": row.Get("id"), "status": StatusPending})
}

// List returns requests, optionally filtered by type and status.
func (s *Service) List(c *fiber.Ctx) error {
	var (
		wantType   = c.Query("type")
		wantStatus = c.Query("status")
	)

	rows, err := s.records.ReadAll(c.Context(), schema.Requests)
	if err != nil {
		return handler.Fail(c, err)
	}

	requests := make([]schema.Row, 0, len(rows))

	for _, row := range rows {
		if wantType != "" && row.Get("type") != wantType {
			continue
		}

		if wantStatus != "" && row.Get("status") != wantStatus {
			continue
		}

		requests = append(requests, row)
	}

	return handler.OK(c, fiber.Map{"requests": requests})
}

type statusRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

// SetStatus moves one request to a new status.
func (s *Service) SetStatus(c *fiber.Ctx) error {
	in := new(statusRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	updated, err := s.records.UpdateWhere(c.Context(), schema.Requests, "id", in.ID,
		func(row schema.Row) (schema.Row, error) {
			row["status"] = in.Status
			row.SetTime("updatedAt", time.Now())

			return row, nil
		})
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"request": updated})
}
