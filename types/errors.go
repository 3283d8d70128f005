package types

import (
	"errors"
	"fmt"
)

// Ignored-command sentinels. These report a no-op outcome from a lifecycle
// command so callers can tell it apart from success; none of them indicate
// corrupted state.
var (
	// ErrSessionActive is returned by start when a session is already running.
	ErrSessionActive = errors.New("a session is already active")
	// ErrNoActiveSession is returned by pause/resume/stop with no live session.
	ErrNoActiveSession = errors.New("no active session")
	// ErrAlreadyPaused is returned by pause when the session is paused.
	ErrAlreadyPaused = errors.New("session is already paused")
	// ErrNotPaused is returned by resume when the session is not paused.
	ErrNotPaused = errors.New("session is not paused")
	// ErrTaskNotFound is returned when a referenced task does not exist.
	ErrTaskNotFound = errors.New("task not found")
)

// IsIgnored reports whether err is one of the benign no-op sentinels.
func IsIgnored(err error) bool {
	return errors.Is(err, ErrSessionActive) ||
		errors.Is(err, ErrNoActiveSession) ||
		errors.Is(err, ErrAlreadyPaused) ||
		errors.Is(err, ErrNotPaused)
}

// CommandError provides structured error information for protocol responses
type CommandError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewCommandError creates a new structured command error
func NewCommandError(code string, message string, details map[string]interface{}) *CommandError {
	return &CommandError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
