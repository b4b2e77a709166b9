// Package handler holds the shared pieces of the HTTP surface: the JSON
// response envelope, the error-to-status mapping and the dependency bundle
// injected into every handler package.
package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/takapay/takapay/internal/drivestore"
	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/sheetstore"
	"github.com/takapay/takapay/internal/token"
)

// OK sends the success envelope. Extra fields are merged next to "ok".
func OK(c *fiber.Ctx, data fiber.Map) error {
	body := fiber.Map{"ok": true}
	for k, v := range data {
		body[k] = v
	}

	return c.JSON(body)
}

// Fail maps err to an HTTP status and sends the failure envelope. Unclassified
// errors are treated as upstream failures: logged in full, relayed with a
// generic message so remote error detail never reaches clients.
func Fail(c *fiber.Ctx, err error) error {
	status := StatusOf(err)

	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")

		// missing admin credentials are an operator problem and carry no
		// remote detail, so that message passes through
		if !errors.Is(err, token.ErrNotConfigured) {
			msg = "internal error"
		}
	}

	return c.Status(status).JSON(fiber.Map{"ok": false, "error": msg})
}

// StatusOf classifies an error into an HTTP status code.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, schema.ErrInvalidValue):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, token.ErrInvalidCredentials),
		errors.Is(err, token.ErrMalformed),
		errors.Is(err, token.ErrBadSignature),
		errors.Is(err, token.ErrExpired),
		errors.Is(err, token.ErrWrongRole):
		return fiber.StatusUnauthorized
	case errors.Is(err, sheetstore.ErrRowNotFound),
		errors.Is(err, drivestore.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		// token.ErrNotConfigured and upstream errors land here
		return fiber.StatusInternalServerError
	}
}
