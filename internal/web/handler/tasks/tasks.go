// Package tasks implements the field worker task endpoints.
package tasks

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
	// Path is the task endpoint.
	Path = handler.RootPath + "/tasks"

	// StatusOpen is the status of a freshly created task.
	StatusOpen = "open"
)

// Service is the tasks handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	records   *sheetstore.Store
	validator *validator.Validate
}

// Handler is the tasks handler.
var Handler = Service{}

// Init initializes the tasks handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.records = deps.Records
	s.validator = validator.New()

	app.Get(Path, s.List)
	app.Post(Path, s.Create)
	app.Post(Path+"/status", s.SetStatus)

	return nil
}

type createRequest struct {
	WorkerID string `json:"workerId" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Detail   string `json:"detail"`
}

// Create assigns one task to a worker.
func (s *Service) Create(c *fiber.Ctx) error {
	in := new(createRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	// assigning to an unknown worker is a 404
	if _, _, err := s.records.FindFirst(c.Context(), schema.Workers, "id", in.WorkerID); err != nil {
		return handler.Fail(c, err)
	}

	now := time.Now()
	row := schema.Row{
		"id":       uuid.NewString(),
		"workerId": in.WorkerID,
		"title":    in.Title,
		"detail":   in.Detail,
		"status":   StatusOpen,
	}
	row.SetTime("createdAt", now)
	row.SetTime("updatedAt", now)

	if err := s.records.Append(c.Context(), schema.Tasks, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"task": row})
}

// List returns tasks, optionally filtered by worker.
func (s *Service) List(c *fiber.Ctx) error {
	workerID := c.Query("workerId")

	var (
		rows []schema.Row
		err  error
	)

	if workerID == "" {
		rows, err = s.records.ReadAll(c.Context(), schema.Tasks)
	} else {
		rows, err = s.records.FindAll(c.Context(), schema.Tasks, "workerId", workerID)
	}

	if err != nil {
		return handler.Fail(c, err)
	}

	if rows == nil {
		rows = []schema.Row{}
	}

	return handler.OK(c, fiber.Map{"tasks": rows})
}

type statusRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=open doing done"`
}

// SetStatus moves one task to a new status.
func (s *Service) SetStatus(c *fiber.Ctx) error {
	in := new(statusRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	updated, err := s.records.UpdateWhere(c.Context(), schema.Tasks, "id", in.ID,
		func(row schema.Row) (schema.Row, error) {
			row["status"] = in.Status
			row.SetTime("updatedAt", time.Now())

			return row, nil
		})
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"task": updated})
}
