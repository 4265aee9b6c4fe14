// Package errors provides standardized error handling for the assistant core.
package errors

import (
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Session Controller errors.
	ErrCodeTurnInFlight ErrorCode = "TURN_IN_FLIGHT"

	// Remote assistant errors. Both are surfaced to the transcript as the
	// same fixed apology turn; the code only differentiates logging.
	ErrCodeAssistantUnavailable ErrorCode = "ASSISTANT_UNAVAILABLE"
	ErrCodeAssistantBadStatus   ErrorCode = "ASSISTANT_BAD_STATUS"

	// Identity Store errors.
	ErrCodeIdentityStoreFailed ErrorCode = "IDENTITY_STORE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Constructors
// ==========================

// New creates a StandardError with the given code and message.
func New(code ErrorCode, message string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// Wrap creates a StandardError carrying the underlying error as details.
func Wrap(code ErrorCode, message string, err error) *StandardError {
	e := New(code, message)
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// NewTransportError marks a failed request to the remote assistant. A single
// failed attempt ends the turn, so these are never retryable here.
func NewTransportError(err error) *StandardError {
	return Wrap(ErrCodeAssistantUnavailable, "assistant request failed", err)
}

// NewBadStatusError marks a non-2xx response from the remote assistant. The
// status and body text are kept for logging only.
func NewBadStatusError(status int, body string) *StandardError {
	e := New(ErrCodeAssistantBadStatus, fmt.Sprintf("assistant returned status %d", status))
	e.Details = body
	e.Metadata = map[string]interface{}{"status": status}
	return e
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}
