package enrollments

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("enrollment not found")
	ErrConflict            = errors.New("already enrolled")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUpstreamUnavailable = errors.New("identity service unavailable")
	ErrInternal            = errors.New("internal error")
)
