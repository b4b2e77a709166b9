// Package transactions implements the transaction history endpoints. A
// transaction is one movement on a phone's wallet: a send, a cash-in, a
// cash-out or a recharge. Balance movement itself happens through the users
// balance endpoint; this table is the history the apps render.
package transactions

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
	// Path is the transaction endpoint.
	Path = handler.RootPath + "/transactions"

	// StatusCompleted is the default status of a recorded transaction.
	StatusCompleted = "completed"
)

// Service is the transactions handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	records   *sheetstore.Store
	validator *validator.Validate
}

// Handler is the transactions handler.
var Handler = Service{}

// Init initializes the transactions handler.
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
	Phone        string  `json:"phone" validate:"required,len=11,numeric"`
	Type         string  `json:"type" validate:"required,oneof=send cashin cashout recharge"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Fee          float64 `json:"fee" validate:"gte=0"`
	Counterparty string  `json:"counterparty"`
	Status       string  `json:"status" validate:"omitempty,oneof=pending completed failed"`
}

// Create records one transaction and returns its generated id.
func (s *Service) Create(c *fiber.Ctx) error {
	in := new(createRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if in.Status == "" {
		in.Status = StatusCompleted
	}

	now := time.Now()
	row := schema.Row{
		"id":           uuid.NewString(),
		"phone":        in.Phone,
		"type":         in.Type,
		"counterparty": in.Counterparty,
		"status":       in.Status,
	}
	row.SetNumber("amount", in.Amount)
	row.SetNumber("fee", in.Fee)
	row.SetTime("createdAt", now)
	row.SetTime("updatedAt", now)

	if err := s.records.Append(c.Context(), schema.Transactions, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"id": row.Get("id"), "status": in.Status})
}

// List returns transactions, optionally filtered by phone.
func (s *Service) List(c *fiber.Ctx) error {
	phone := c.Query("phone")

	var (
		rows []schema.Row
		err  error
	)

	if phone == "" {
		rows, err = s.records.ReadAll(c.Context(), schema.Transactions)
	} else {
		rows, err = s.records.FindAll(c.Context(), schema.Transactions, "phone", phone)
	}

	if err != nil {
		return handler.Fail(c, err)
	}

	if rows == nil {
		rows = []schema.Row{}
	}

	return handler.OK(c, fiber.Map{"transactions": rows})
}

type statusRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending completed failed"`
}

// SetStatus moves one transaction to a new status.
func (s *Service) SetStatus(c *fiber.Ctx) error {
	in := new(statusRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	updated, err := s.records.UpdateWhere(c.Context(), schema.Transactions, "id", in.ID,
		func(row schema.Row) (schema.Row, error) {
			row["status"] = in.Status
			row.SetTime("updatedAt", time.Now())

			return row, nil
		})
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"transaction": updated})
}
