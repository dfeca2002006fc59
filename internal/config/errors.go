package config

import (
	"errors"
	"fmt"

	"github.com/dshills/playground/internal/config/loader"
)

// Errors returned by registry operations.
var (
	// ErrConfigNotFound indicates the registry document doesn't exist or
	// its location cannot be resolved.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrConfigExists indicates Init was asked to overwrite an existing registry.
	ErrConfigExists = errors.New("configuration already exists")

	// ErrTypeNotConfigured indicates the requested playground type is absent.
	ErrTypeNotConfigured = errors.New("playground type not configured")

	// ErrOptionNotSet indicates a required type option is missing.
	ErrOptionNotSet = errors.New("option not set")

	// ErrInvalidValue indicates an option holds a value of the wrong shape.
	ErrInvalidValue = errors.New("invalid option value")

	// ErrInvalidKey indicates a key path that cannot be followed.
	ErrInvalidKey = errors.New("invalid configuration key")
)

// FormatError reports a malformed document. Path names the document
// ("input" for command-line values) and Detail carries the position.
type FormatError = loader.ParseError

// TypeNotConfiguredError is returned when a type name is not in the registry.
type TypeNotConfiguredError struct {
	Type string
}

// Error implements the error interface.
func (e *TypeNotConfiguredError) Error() string {
	return fmt.Sprintf("playground type %q is not configured", e.Type)
}

// Is reports whether target is ErrTypeNotConfigured.
func (e *TypeNotConfiguredError) Is(target error) bool {
	return target == ErrTypeNotConfigured
}

// OptionError describes a problem with a single option.
// Type is empty when the key does not belong to a known type.
type OptionError struct {
	// Key is the option name or dotted key path.
	Key string
	// Type is the playground type the option belongs to.
	Type string
	// Err is ErrOptionNotSet, ErrInvalidValue or ErrInvalidKey.
	Err error
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("option %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("type %q: option %q: %v", e.Type, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *OptionError) Unwrap() error {
	return e.Err
}
