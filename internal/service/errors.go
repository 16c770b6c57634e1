package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto the HTTP
// error taxonomy; anything else surfaces as an internal error.
var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("duplicate resource")
	ErrForbidden = errors.New("forbidden")

	ErrNotStarted        = errors.New("task not started")
	ErrAlreadySubmitted  = errors.New("photo already submitted")
	ErrSubmissionBlocked = errors.New("submission blocked")
	ErrInvalidUpload     = errors.New("missing or invalid photo")
	ErrInvalidScore      = errors.New("points must be a non-negative integer")

	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrProfileLocked      = errors.New("profile already edited")
	ErrValidation         = errors.New("invalid request")
)
