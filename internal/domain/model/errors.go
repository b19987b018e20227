package model

import "errors"

// Sentinel kinds for validation errors.
var (
	ErrInvalidEvent   = errors.New("invalid event")
	ErrInvalidProfile = errors.New("invalid profile")
)
