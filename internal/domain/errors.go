package domain

import "errors"

// Sentinel errors used across layers. Plan mutations deliberately do not use
// these for missing entities; they no-op instead.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidDate   = errors.New("invalid date")
)
