// Package auth provides the bearer-token middleware for admin routes.
//
// The middleware reads the Authorization header, verifies the token with the
// credential token service and stores the verified role in fiber.Locals.
// Requests without a valid admin token get the failure envelope with 401.
//
// Usage:
//
//	adminGroup.Use(auth.RequireAdmin(tokens))
package auth
