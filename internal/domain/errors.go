package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Verification lifecycle failures.
var (
	ErrUsernameTaken        = errors.New("username is already taken")
	ErrEmailTaken           = errors.New("user already exists with this email")
	ErrInvalidCode          = errors.New("incorrect verification code")
	ErrCodeExpired          = errors.New("verification code has expired")
	ErrDeliveryFailure      = errors.New("failed to deliver verification code")
	ErrNotVerified          = errors.New("account is not verified")
	ErrNotAcceptingMessages = errors.New("user is not accepting messages")
)
