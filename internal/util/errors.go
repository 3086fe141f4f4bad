// Package util provides utility functions and types for the routing engine.
//
// # Error Conventions
//
// This project follows a standardized error pattern across all packages:
//
//   - Sentinel errors (errors.New) for well-known, stable conditions
//     that callers check with errors.Is(). Example: ErrInvalidInput.
//   - Structured error types for context-rich errors that carry
//     additional fields (e.g., ConfigError, PatternError). Each type
//     implements Error(), Unwrap() (if wrapping), and Is().
//   - fmt.Errorf with %w for ad-hoc wrapping that adds context to an
//     existing error without introducing a new type.
//
// All custom error types must implement:
//
//	Error() string           – human-readable message
//	Unwrap() error           – if the type wraps another error
//	Is(target error) bool    – for errors.Is() compatibility
package util

import (
	"errors"
	"fmt"
)

// Common sentinel errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrConfigInvalid = errors.New("invalid configuration")
)

// ConfigError represents a configuration-related error, reported
// synchronously at registration time, never deferred to serving time.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error at %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *ConfigError) Is(target error) bool {
	if target == ErrConfigInvalid {
		return true
	}
	_, ok := target.(*ConfigError)
	return ok || errors.Is(e.Cause, target)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with a cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// PatternError represents a malformed route pattern, such as unbalanced
// braces or a template segment binding an empty variable name.
type PatternError struct {
	Pattern string
	Segment string
	Message string
}

// Error implements the error interface.
func (e *PatternError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("invalid pattern %q: segment %q: %s", e.Pattern, e.Segment, e.Message)
	}
	return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Message)
}

// Is checks if the error matches the target.
func (e *PatternError) Is(target error) bool {
	if target == ErrConfigInvalid {
		return true
	}
	_, ok := target.(*PatternError)
	return ok
}

// NewPatternError creates a new PatternError.
func NewPatternError(pattern, segment, message string) *PatternError {
	return &PatternError{Pattern: pattern, Segment: segment, Message: message}
}

// RouteConflictError represents a registration-time conflict between two
// route registrations, such as two different variable names at the same
// trie position.
type RouteConflictError struct {
	Pattern  string
	Existing string
	Message  string
}

// Error implements the error interface.
func (e *RouteConflictError) Error() string {
	if e.Existing != "" {
		return fmt.Sprintf("route conflict for %q (existing %q): %s", e.Pattern, e.Existing, e.Message)
	}
	return fmt.Sprintf("route conflict for %q: %s", e.Pattern, e.Message)
}

// Is checks if the error matches the target.
func (e *RouteConflictError) Is(target error) bool {
	if target == ErrConfigInvalid {
		return true
	}
	_, ok := target.(*RouteConflictError)
	return ok
}

// NewRouteConflictError creates a new RouteConflictError.
func NewRouteConflictError(pattern, existing, message string) *RouteConflictError {
	return &RouteConflictError{Pattern: pattern, Existing: existing, Message: message}
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
