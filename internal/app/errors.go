package service

import "errors"

// Sentinel kinds for session-level errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrRosterTooLarge  = errors.New("roster exceeds configured maximum")
	ErrEmptyRoster     = errors.New("roster is empty")
)
