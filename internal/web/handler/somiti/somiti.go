// Package somiti implements the savings group ledger endpoints: groups, their
// running details, group members and field workers.
package somiti

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
	// Path is the base path of the somiti endpoints.
	Path = handler.RootPath + "/somiti"

	// MembersPath is the group member endpoint.
	MembersPath = handler.RootPath + "/members"

	// WorkersPath is the field worker endpoint.
	WorkersPath = handler.RootPath + "/workers"
)

// Service is the somiti handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	records   *sheetstore.Store
	validator *validator.Validate
}

// Handler is the somiti handler.
var Handler = Service{}

// Init initializes the somiti handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.records = deps.Records
	s.validator = validator.New()

	app.Get(Path, s.List)
	app.Post(Path, s.Create)
	app.Get(Path+"/:id/details", s.Details)

	app.Get(MembersPath, s.ListMembers)
	app.Post(MembersPath, s.CreateMember)

	app.Get(WorkersPath, s.ListWorkers)
	app.Post(WorkersPath, s.CreateWorker)

	return nil
}

type createRequest struct {
	Name       string `json:"name" validate:"required"`
	Area       string `json:"area" validate:"required"`
	OwnerPhone string `json:"ownerPhone" validate:"required,len=11,numeric"`
}

// Create adds one group together with its empty details row.
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
		"id":         uuid.NewString(),
		"name":       in.Name,
		"area":       in.Area,
		"ownerPhone": in.OwnerPhone,
	}
	row.SetTime("createdAt", now)

	if err := s.records.Append(c.Context(), schema.Somiti, row); err != nil {
		return handler.Fail(c, err)
	}

	details := schema.Row{
		"somitiId": row.Get("id"),
		"note":     "",
	}
	details.SetNumber("balance", 0)
	details.SetNumber("memberCount", 0)
	details.SetTime("updatedAt", now)

	if err := s.records.Append(c.Context(), schema.SomitiDetails, details); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"somiti": row})
}

// List returns all groups.
func (s *Service) List(c *fiber.Ctx) error {
	rows, err := s.records.ReadAll(c.Context(), schema.Somiti)
	if err != nil {
		return handler.Fail(c, err)
	}

	if rows == nil {
		rows = []schema.Row{}
	}

	return handler.OK(c, fiber.Map{"somiti": rows})
}

// Details returns the running details of one group.
func (s *Service) Details(c *fiber.Ctx) error {
	row, _, err := s.records.FindFirst(c.Context(), schema.SomitiDetails, "somitiId", c.Params("id"))
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"details": row})
}
