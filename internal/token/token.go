// Package token implements the credential token service: it issues and
// verifies the short-lived HS256 signed session token for the single
// administrative principal. Tokens are never stored server-side; a token is
// invalidated only by its expiry.
package token

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTL is the lifetime of an issued admin token.
const TTL = 8 * time.Hour

// RoleAdmin is the only role this service issues.
const RoleAdmin = "admin"

// Claims are the claims carried by an issued token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies admin session tokens.
// It is a pure function of its inputs plus the configured secret; there is
// no revocation list, no key rotation and no replay protection, so a leaked
// token stays valid until its natural expiry.
type Service struct {
	password string
	secret   []byte

	// now is the clock, swappable in tests.
	now func() time.Time
}

// NewService creates a token service from the configured admin password and
// signing secret. Either may be empty; Issue and Verify then fail with
// ErrNotConfigured.
func NewService(password, secret string) *Service {
	return &Service{
		password: password,
		secret:   []byte(secret),
		now:      time.Now,
	}
}

// Issue compares suppliedSecret against the configured admin password and,
// on a match, returns a signed token with subject and role "admin" valid
// for TTL. The comparison is constant-time.
func (s *Service) Issue(suppliedSecret string) (string, error) {
	if s.password == "" || len(s.secret) == 0 {
		return "", ErrNotConfigured
	}

	if subtle.ConstantTimeCompare([]byte(suppliedSecret), []byte(s.password)) != 1 {
		return "", ErrInvalidCredentials
	}

	now := s.now()
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   RoleAdmin,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	return signed, nil
}

// Verify parses and checks tokenString and returns its claims.
// Failure modes: ErrMalformed for anything that is not a three-segment
// token, ErrBadSignature for a signature mismatch, ErrExpired for a
// correctly signed token past its expiry.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrNotConfigured
	}

	if strings.Count(tokenString, ".") != 2 { //nolint: mnd
		return nil, ErrMalformed
	}

	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, ErrBadSignature
			}

			return s.secret, nil
		},
		jwt.WithTimeFunc(s.now),
	)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrBadSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, ErrMalformed
	case err != nil:
		return nil, ErrMalformed
	}

	if !tok.Valid {
		return nil, ErrBadSignature
	}

	return claims, nil
}

// VerifyAdmin is Verify plus the role check all admin endpoints require.
func (s *Service) VerifyAdmin(tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Role != RoleAdmin {
		return nil, ErrWrongRole
	}

	return claims, nil
}
