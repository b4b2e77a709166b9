// Package users implements registration, login and account endpoints for
// consumer accounts. The PIN is stored argon2id-hashed and never leaves the
// users table.
package users

import (
	"errors"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/sheetstore"
	"github.com/takapay/takapay/internal/web/handler"
)

// Path is the base path of the user endpoints.
const Path = handler.RootPath + "/users"

// AdminPath is the admin-only user management path.
const AdminPath = handler.RootPath + "/admin/users"

// Service is the users handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	records   *sheetstore.Store
	validator *validator.Validate
}

// Handler is the users handler.
var Handler = Service{}

// Init initializes the users handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.records = deps.Records
	s.validator = validator.New()

	app.Post(Path+"/register", s.Register)
	app.Post(Path+"/login", s.Login)
	app.Post(Path+"/balance", s.AdjustBalance)
	app.Get(Path, s.List)
	app.Get(Path+"/:phone", s.Get)

	app.Delete(AdminPath+"/:phone", deps.RequireAdmin, s.Delete)

	return nil
}

type registerRequest struct {
	Phone string `json:"phone" validate:"required,len=11,numeric"`
	PIN   string `json:"pin" validate:"required,len=5,numeric"`
	Name  string `json:"name" validate:"required"`
}

// Register creates a new account. The phone number is the account identity;
// registering an existing phone is a conflict.
func (s *Service) Register(c *fiber.Ctx) error {
	in := new(registerRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	_, _, err := s.records.FindFirst(c.Context(), schema.Users, "phone", in.Phone)
	if err == nil {
		return handler.Fail(c, handler.ErrConflict)
	}

	if !errors.Is(err, sheetstore.ErrRowNotFound) {
		return handler.Fail(c, err)
	}

	hash, err := argon2id.CreateHash(in.PIN, argon2id.DefaultParams)
	if err != nil {
		return handler.Fail(c, err)
	}

	row := schema.Row{
		"phone": in.Phone,
		"pin":   hash,
		"name":  in.Name,
	}
	row.SetNumber("balance", 0)
	row.SetTime("createdAt", time.Now())

	if err := s.records.Append(c.Context(), schema.Users, row); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"user": sanitize(row)})
}

type loginRequest struct {
	Phone string `json:"phone" validate:"required"`
	PIN   string `json:"pin" validate:"required"`
}

// Login checks the PIN against the stored hash.
func (s *Service) Login(c *fiber.Ctx) error {
	in := new(loginRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	row, _, err := s.records.FindFirst(c.Context(), schema.Users, "phone", in.Phone)
	if errors.Is(err, sheetstore.ErrRowNotFound) {
		return handler.Fail(c, handler.ErrUnauthorized)
	}

	if err != nil {
		return handler.Fail(c, err)
	}

	match, err := argon2id.ComparePasswordAndHash(in.PIN, row.Get("pin"))
	if err != nil || !match {
		return handler.Fail(c, handler.ErrUnauthorized)
	}

	return handler.OK(c, fiber.Map{"user": sanitize(row)})
}

// Get returns one account by phone.
func (s *Service) Get(c *fiber.Ctx) error {
	row, _, err := s.records.FindFirst(c.Context(), schema.Users, "phone", c.Params("phone"))
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"user": sanitize(row)})
}

// List returns all accounts.
func (s *Service) List(c *fiber.Ctx) error {
	rows, err := s.records.ReadAll(c.Context(), schema.Users)
	if err != nil {
		return handler.Fail(c, err)
	}

	users := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		users = append(users, sanitize(row))
	}

	return handler.OK(c, fiber.Map{"users": users})
}

type balanceRequest struct {
	Phone  string  `json:"phone" validate:"required"`
	Amount float64 `json:"amount" validate:"required"`
}

// AdjustBalance adds amount (which may be negative) to the account balance.
// The read-modify-write runs under the users table lock.
func (s *Service) AdjustBalance(c *fiber.Ctx) error {
	in := new(balanceRequest)
	if err := c.BodyParser(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	if err := s.validator.Struct(in); err != nil {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	updated, err := s.records.UpdateWhere(c.Context(), schema.Users, "phone", in.Phone,
		func(row schema.Row) (schema.Row, error) {
			balance, err := row.Number("balance")
			if err != nil {
				return nil, err
			}

			row.SetNumber("balance", balance+in.Amount)

			return row, nil
		})
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"user": sanitize(updated)})
}

// Delete removes one account. Admin only.
func (s *Service) Delete(c *fiber.Ctx) error {
	if err := s.records.DeleteWhere(c.Context(), schema.Users, "phone", c.Params("phone")); err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, nil)
}

// sanitize strips the PIN hash from a user row before it leaves the API.
func sanitize(row schema.Row) fiber.Map {
	// stored balances always come from SetNumber; an unparseable one reads as 0
	balance, _ := row.Number("balance")

	return fiber.Map{
		"phone":     row.Get("phone"),
		"name":      row.Get("name"),
		"balance":   balance,
		"createdAt": row.Get("createdAt"),
	}
}
