package services

import "errors"

// Validation errors, reported before any request is issued.
var (
	ErrEmptyText        = errors.New("please enter text to generate QR code")
	ErrMissingFields    = errors.New("username and email are required")
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrPasswordTooShort = errors.New("new password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("new passwords do not match")
	ErrNotFound         = errors.New("not found")
)
