package token

import "errors"

var (
	// ErrNotConfigured is returned when ADMIN_PASSWORD or ADMIN_JWT_SECRET
	// is missing from the environment.
	ErrNotConfigured = errors.New("admin credentials are not configured")

	// ErrInvalidCredentials is returned when the supplied password does not
	// match the configured admin password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMalformed is returned when a token is not a three-segment JWT.
	ErrMalformed = errors.New("malformed token")

	// ErrBadSignature is returned when the token signature does not verify.
	ErrBadSignature = errors.New("bad token signature")

	// ErrExpired is returned when a correctly signed token is past its expiry.
	ErrExpired = errors.New("token expired")

	// ErrWrongRole is returned when a valid token does not carry the admin role.
	ErrWrongRole = errors.New("wrong role")
)
