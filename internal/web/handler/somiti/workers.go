package somiti

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/web/handler"
)

type createWorkerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,len=11,numeric"`
	Area  string `json:"area" validate:"required"`
}

// CreateWorker registers one field worker, active by default.
func (s *Service) CreateWorker(c *fiber.Ctx) error {
	in := new(createWorkerRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	row := schema.Row{
		"id":    uuid.NewString(),
		"name":  in.Name,
		"phone": in.Phone,
		"area":  in.Area,
	}
	row.SetBool("active", true)
	row.SetTime("createdAt", time.Now())

	if err := s.records.Append(c.Context(), schema.Workers, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"worker": row})
}

// ListWorkers returns workers, optionally filtered by area.
func (s *Service) ListWorkers(c *fiber.Ctx) error {
	area := c.Query("area")

	var (
		rows []schema.Row
		err  error
	)

	if area == "" {
		rows, err = s.records.ReadAll(c.Context(), schema.Workers)
	} else {
		rows, err = s.records.FindAll(c.Context(), schema.Workers, "area", area)
	}

	if err != nil {
		return handler.Fail(c, err)
	}

	if rows == nil {
		rows = []schema.Row{}
	}

	return handler.OK(c, fiber.Map{"workers": rows})
}
