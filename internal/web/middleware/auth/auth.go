package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/takapay/takapay/internal/token"
	"github.com/takapay/takapay/internal/web/handler"
)

// LocalsRole is the fiber.Locals key holding the verified role.
const LocalsRole = "role"

// RequireAdmin is a Fiber middleware that rejects requests without a valid
// admin bearer token.
func RequireAdmin(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, found := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !found || raw == "" {
			return handler.Fail(c, handler.ErrUnauthorized)
		}

		claims, err := tokens.VerifyAdmin(raw)
		if err != nil {
			return handler.Fail(c, err)
		}

		c.Locals(LocalsRole, claims.Role)

		return c.Next()
	}
}
