package entities

import "github.com/pkg/errors"

var (
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
	ErrNotFound            = errors.New("not found")
	ErrOutOfRange          = errors.New("identifier out of range")
	ErrProtectedEntity     = errors.New("protected entity")
	// ErrCorruptRecord is recoverable: loaders skip the record and keep going.
	ErrCorruptRecord    = errors.New("corrupt record")
	ErrIOFailure        = errors.New("io failure")
	ErrInvalidInput     = errors.New("invalid input")
	ErrAuthentication   = errors.New("authentication failed")
	ErrPermissionDenied = errors.New("permission denied")
)
