// Package exception provides the error type used by the flclient module.
// Callback methods never return errors; CallbackError describes failures that
// happen while configuring, wiring or persisting for callbacks, so they can be
// reported at startup or logged and dropped at the call site.
package exception

import (
	"errors"
	"fmt"
)

// CallbackError is an error raised while building or supporting a callback.
type CallbackError struct {
	// Module indicates the module where the error occurred (e.g., "config", "factory", "history").
	Module string
	// Message is a concise description of the error.
	Message string
	// OriginalErr is the wrapped original error.
	OriginalErr error
}

// NewCallbackError creates a new CallbackError instance.
// module: The module where the error occurred.
// message: The error message.
// originalErr: The original error to wrap. May be nil.
func NewCallbackError(module, message string, originalErr error) *CallbackError {
	return &CallbackError{
		Module:      module,
		Message:     message,
		OriginalErr: originalErr,
	}
}

// NewCallbackErrorf creates a new CallbackError using a format string.
// If the last argument is an error it is wrapped rather than formatted.
//
// Examples:
// NewCallbackErrorf("factory", "unknown listener ref '%s'", "foo")
// NewCallbackErrorf("history", "failed to save record %s", id, err)
func NewCallbackErrorf(module, format string, a ...interface{}) *CallbackError {
	var originalErr error
	args := a
	if len(args) > 0 {
		if err, ok := args[len(args)-1].(error); ok {
			originalErr = err
			args = args[:len(args)-1]
		}
	}
	return &CallbackError{
		Module:      module,
		Message:     fmt.Sprintf(format, args...),
		OriginalErr: originalErr,
	}
}

// Error implements the error interface.
func (e *CallbackError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Module, e.Message, e.OriginalErr)
	}
	return fmt.Sprintf("[%s] %s", e.Module, e.Message)
}

// Unwrap returns the original error for errors.Unwrap.
func (e *CallbackError) Unwrap() error {
	return e.OriginalErr
}

// IsCallbackError reports whether err is, or wraps, a CallbackError.
func IsCallbackError(err error) bool {
	var ce *CallbackError
	return errors.As(err, &ce)
}

// ExtractErrorMessage returns the Message field for CallbackError values and
// err.Error() otherwise.
func ExtractErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var ce *CallbackError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
