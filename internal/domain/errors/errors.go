package errors

import "errors"

var (
	ErrAlreadyExists           = errors.New("already exists")
	ErrNotFound                = errors.New("not found")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidRole             = errors.New("invalid role")
	ErrInvalidOrder            = errors.New("invalid order payload")
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrForbiddenTransition     = errors.New("transition not allowed for role")
	ErrRejectionReasonRequired = errors.New("rejection reason required")
	ErrConflict                = errors.New("order modified concurrently")
)
