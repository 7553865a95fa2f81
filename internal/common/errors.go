package common

import (
	"errors"
	"fmt"
)

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Versioning errors
	ErrValidation          = errors.New("invalid revision transition")
	ErrStaleParent         = errors.New("concurrent modification: parent is no longer the tip")
	ErrAlreadyCreated      = errors.New("document already has a create revision")
	ErrAlreadyDeleted      = errors.New("document already deleted")
	ErrConcurrencyConflict = errors.New("revision conflict, retry with a fresh tip")

	// Permission errors
	ErrPermissionDenied = errors.New("permission denied")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMemberNotFound     = errors.New("member not found")
	ErrMemberExists       = errors.New("member already exists")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// ConflictError carries machine-readable context for a lost revision race:
// which document, which index was attempted, and which revision currently
// holds the tip.
type ConflictError struct {
	DocumentID     uint64
	AttemptedIndex int
	TipRevisionID  uint64
	Err            error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("document %d: %v (attempted index %d, tip revision %d)",
		e.DocumentID, e.Err, e.AttemptedIndex, e.TipRevisionID)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
