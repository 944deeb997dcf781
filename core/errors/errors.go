// Package errors defines the error kinds shared by the engine, the ingestion
// layer and the CLI. Callers match kinds with Is against the sentinels.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry marks a rectangle that cannot be constructed.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrInvalidInput marks input rejected before or during computation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported marks an unknown input or output format.
	ErrUnsupported = errors.New("unsupported")
)

// GeometryError names the rectangle field that was rejected.
type GeometryError struct {
	Field  string
	Value  int
	Reason string // defaults to "must be positive"
}

func (e *GeometryError) Error() string {
	if e.Field == "" {
		return "invalid geometry"
	}
	reason := e.Reason
	if reason == "" {
		reason = "must be positive"
	}
	return fmt.Sprintf("invalid geometry: %s %s, got %d", e.Field, reason, e.Value)
}

func (e *GeometryError) Unwrap() error { return ErrInvalidGeometry }

// ValidationError reports input that is well-formed but unacceptable.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// IOError wraps a failure to open, read or decompress an input.
type IOError struct {
	Operation string
	Path      string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports an input that could not be decoded.
type ParseError struct {
	Format  string // "JSON", "XML" or "text"
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error { return ErrInvalidInput }

// UnsupportedError reports a format the tool does not handle.
type UnsupportedError struct {
	Feature string
	Reason  string
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// NewGeometry rejects a non-positive field.
func NewGeometry(field string, value int) *GeometryError {
	return &GeometryError{Field: field, Value: value}
}

// NewGeometryReason rejects field for reason.
func NewGeometryReason(field, reason string, value int) *GeometryError {
	return &GeometryError{Field: field, Value: value, Reason: reason}
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

func NewParse(format, path, message string) *ParseError {
	return &ParseError{Format: format, Path: path, Message: message}
}

func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{Feature: feature, Reason: reason}
}

// Wrap prefixes err with message. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is calls errors.Is, so callers need only this package.
func Is(err, target error) bool { return errors.Is(err, target) }

// As calls errors.As.
func As(err error, target any) bool { return errors.As(err, target) }
