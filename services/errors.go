package services

import (
	"errors"
	"strings"
)

// Misuse errors returned to the immediate caller. None of these indicate a
// transient fault, so none should be retried automatically.
var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyClockedIn = errors.New("staff member is already clocked in")
	ErrAlreadyClosed    = errors.New("attendance record is already closed")
	ErrInvalidPrice     = errors.New("service price must be a positive number")
	ErrInvalidService   = errors.New("service not found for this salon")
)

// ErrInvalidTransition means a claim/serve precondition failed: someone
// else already handled the consultation. Expected under concurrency; the
// caller refreshes and re-presents state rather than surfacing an alarm.
var ErrInvalidTransition = errors.New("consultation was already handled")

// ValidationError lists the intake fields that were missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid consultation submission: " + strings.Join(e.Fields, ", ")
}
