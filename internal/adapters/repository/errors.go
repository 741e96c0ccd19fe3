package repository

import "errors"

// Sentinel kinds for directory errors.
var (
	ErrActivityNotFound  = errors.New("activity not found")
	ErrAlreadySignedUp   = errors.New("student is already signed up")
	ErrNotParticipant    = errors.New("student is not signed up for this activity")
	ErrInvalidEmail      = errors.New("email is required")
	ErrDuplicateActivity = errors.New("duplicate activity")
)
