// Package payoutwallets implements the admin payout wallet endpoints. Each
// wallet provider is one row keyed by provider name, carrying whether payouts
// through it are enabled and its reserve balance.
package payoutwallets

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/sheetstore"
	"github.com/takapay/takapay/internal/web/handler"
)

// Path is the payout wallet endpoint.
const Path = handler.RootPath + "/admin/payout-wallets"

// Service is the payout wallet handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	records *sheetstore.Store
}

// Handler is the payout wallet handler.
var Handler = Service{}

// Init initializes the payout wallet handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if app == nil || cfg == nil || deps == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.records = deps.Records

	app.Get(Path, deps.RequireAdmin, s.List)
	app.Post(Path, deps.RequireAdmin, s.Set)

	return nil
}

type wallet struct {
	Enabled bool    `json:"enabled"`
	Reserve float64 `json:"reserve"`
}

// List returns all payout wallets keyed by provider.
func (s *Service) List(c *fiber.Ctx) error {
	wallets, err := s.readWallets(c)
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"wallets": wallets})
}

// Set upserts every posted provider and returns the resulting wallets.
func (s *Service) Set(c *fiber.Ctx) error {
	in := make(map[string]wallet)
	if err := c.BodyParser(&in); err != nil || len(in) == 0 {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	for key, w := range in {
		if err := s.upsert(c, key, w); err != nil {
			return handler.Fail(c, err)
		}
	}

	wallets, err := s.readWallets(c)
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"wallets": wallets})
}

func (s *Service) readWallets(c *fiber.Ctx) (map[string]wallet, error) {
	rows, err := s.records.ReadAll(c.Context(), schema.PayoutWallets)
	if err != nil {
		return nil, err
	}

	wallets := make(map[string]wallet, len(rows))

	for _, row := range rows {
		enabled, err := row.Bool("enabled")
		if err != nil {
			return nil, err
		}

		reserve, err := row.Number("reserve")
		if err != nil {
			return nil, err
		}

		wallets[row.Get("key")] = wallet{Enabled: enabled, Reserve: reserve}
	}

	return wallets, nil
}

func (s *Service) upsert(c *fiber.Ctx, key string, w wallet) error {
	_, err := s.records.UpdateWhere(c.Context(), schema.PayoutWallets, "key", key,
		func(row schema.Row) (schema.Row, error) {
			row.SetBool("enabled", w.Enabled)
			row.SetNumber("reserve", w.Reserve)

			return row, nil
		})
	if errors.Is(err, sheetstore.ErrRowNotFound) {
		row := schema.Row{"key": key}
		row.SetBool("enabled", w.Enabled)
		row.SetNumber("reserve", w.Reserve)

		return s.records.Append(c.Context(), schema.PayoutWallets, row)
	}

	return err
}
