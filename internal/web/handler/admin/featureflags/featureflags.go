// Package featureflags implements the admin feature flag endpoints. Flags are
// stored one row per key with the JSON type recorded next to the encoded
// value, so booleans and numbers survive the string-only storage.
package featureflags

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/sheetstore"
	"github.com/takapay/takapay/internal/web/handler"
)

// Path is the feature flag endpoint.
const Path = handler.RootPath + "/admin/feature-flags"

// Service is the feature flag handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	records *sheetstore.Store
}

// Handler is the feature flag handler.
var Handler = Service{}

// Init initializes the feature flag handler.
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

// List returns all flags as a key to typed value map.
func (s *Service) List(c *fiber.Ctx) error {
	flags, err := s.readFlags(c)
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"flags": flags})
}

// Set upserts every key of the posted map and returns the resulting flags.
func (s *Service) Set(c *fiber.Ctx) error {
	in := make(map[string]interface{})
	if err := c.BodyParser(&in); err != nil || len(in) == 0 {
		return handler.Fail(c, handler.ErrBadRequest)
	}

	for key, value := range in {
		encoded, kind, err := encodeFlag(value)
		if err != nil {
			return handler.Fail(c, err)
		}

		if err := s.upsert(c, key, encoded, kind); err != nil {
			return handler.Fail(c, err)
		}
	}

	flags, err := s.readFlags(c)
	if err != nil {
		return handler.Fail(c, err)
	}

	return handler.OK(c, fiber.Map{"flags": flags})
}

func (s *Service) readFlags(c *fiber.Ctx) (map[string]interface{}, error) {
	rows, err := s.records.ReadAll(c.Context(), schema.FeatureFlags)
	if err != nil {
		return nil, err
	}

	flags := make(map[string]interface{}, len(rows))
	for _, row := range rows {
		flags[row.Get("key")] = decodeFlag(row.Get("value"), row.Get("type"))
	}

	return flags, nil
}

func (s *Service) upsert(c *fiber.Ctx, key, value, kind string) error {
	_, err := s.records.UpdateWhere(c.Context(), schema.FeatureFlags, "key", key,
		func(row schema.Row) (schema.Row, error) {
			row["value"] = value
			row["type"] = kind

			return row, nil
		})
	if errors.Is(err, sheetstore.ErrRowNotFound) {
		return s.records.Append(c.Context(), schema.FeatureFlags,
			schema.Row{"key": key, "value": value, "type": kind})
	}

	return err
}

// encodeFlag maps a decoded JSON value to its stored string form and type tag.
func encodeFlag(value interface{}) (string, string, error) {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v), "bool", nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), "number", nil
	case string:
		return v, "string", nil
	default:
		return "", "", handler.ErrBadRequest
	}
}

// decodeFlag is the inverse of encodeFlag. Undecodable values fall back to
// the raw string rather than failing a whole listing.
func decodeFlag(value, kind string) interface{} {
	switch kind {
	case "bool":
		return value == "true"
	case "number":
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n
		}

		return value
	default:
		return value
	}
}
