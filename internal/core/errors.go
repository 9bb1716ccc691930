package core

import "errors"

// Error codes for domain errors.
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeAlreadyBound   = "already_bound"
	ErrCodeBadRequest     = "bad_request"
)

var (
	ErrInvalidMessage = errors.New("message id must not be empty")
	ErrAlreadyBound   = errors.New("connection already bound to a room")
)

// CoreError wraps a code and human-readable message.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}
