package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for different categories
var (
	// ErrInvalidInput - invalid input (show validation error, never retried)
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound - resource not found (unknown tool, unknown model)
	ErrNotFound = errors.New("not found")

	// ErrTransient - transient error (remote call failed, may succeed on retry)
	ErrTransient = errors.New("transient error")

	// ErrUnavailable - a collaborator never initialized (vector index, TTS engine);
	// callers degrade to a textual fallback instead of failing the turn
	ErrUnavailable = errors.New("unavailable")

	// ErrInternal - internal error
	ErrInternal = errors.New("internal error")
)

// Wrap wraps an error with context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsCategory checks if error belongs to a specific category.
func IsCategory(err error, category error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, category)
}

// NotFound wraps a message as a not-found error.
func NotFound(message string) error {
	return fmt.Errorf("%s: %w", message, ErrNotFound)
}

// InvalidInput wraps a message as an invalid-input error.
func InvalidInput(message string) error {
	return fmt.Errorf("%s: %w", message, ErrInvalidInput)
}

// Transient wraps a message as a transient error.
func Transient(message string) error {
	return fmt.Errorf("%s: %w", message, ErrTransient)
}

// Unavailable wraps a message as an unavailable error.
func Unavailable(message string) error {
	return fmt.Errorf("%s: %w", message, ErrUnavailable)
}

// Internal wraps a message as an internal error.
func Internal(message string) error {
	return fmt.Errorf("%s: %w", message, ErrInternal)
}
