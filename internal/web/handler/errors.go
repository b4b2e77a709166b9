package handler

import "errors"

var (
	// ErrBadRequest marks a request body or parameter that failed validation.
	ErrBadRequest = errors.New("invalid request")

	// ErrConflict marks a write that would duplicate an existing record.
	ErrConflict = errors.New("record already exists")

	// ErrUnauthorized marks a request without a usable bearer token.
	ErrUnauthorized = errors.New("unauthorized")
)
