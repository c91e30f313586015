package models

import "errors"

// Custom errors
var (
	ErrInvalidPayload  = errors.New("payload does not match the documented shape")
	ErrMissingIdentity = errors.New("record is missing required identity fields")
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateKey    = errors.New("duplicate key violation")
)
