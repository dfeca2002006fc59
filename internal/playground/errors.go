package playground

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/playground/internal/integration/process"
)

// Errors returned by playground operations.
var (
	// ErrNotFound indicates the playground directory does not exist.
	ErrNotFound = errors.New("playground not found")

	// ErrSettingsNotFound indicates the playground has no settings document.
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrInvalidSettings indicates required settings are missing.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrEmptyName indicates a playground name was not given.
	ErrEmptyName = errors.New("playground name is empty")

	// ErrOutsideRoot indicates a declared path escapes the playground root.
	ErrOutsideRoot = errors.New("path escapes the playground directory")
)

// ExitError reports a child process that exited with a non-zero status.
type ExitError = process.ExitError

// NotFoundError is returned when a playground directory does not exist.
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("playground %s does not exist", e.Path)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// SettingsNotFoundError is returned when settings.json is missing.
type SettingsNotFoundError struct {
	// Path is the playground root.
	Path string
}

// Error implements the error interface.
func (e *SettingsNotFoundError) Error() string {
	return fmt.Sprintf("settings for playground %s not found", e.Path)
}

// Is reports whether target is ErrSettingsNotFound.
func (e *SettingsNotFoundError) Is(target error) bool {
	return target == ErrSettingsNotFound
}

// InvalidSettingsError lists required settings that are absent or unusable.
type InvalidSettingsError struct {
	Path    string
	Missing []string
}

// Error implements the error interface.
func (e *InvalidSettingsError) Error() string {
	return fmt.Sprintf("settings for playground %s missing: %s", e.Path, strings.Join(e.Missing, ", "))
}

// Is reports whether target is ErrInvalidSettings.
func (e *InvalidSettingsError) Is(target error) bool {
	return target == ErrInvalidSettings
}
