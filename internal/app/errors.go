package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/playground/internal/config"
	"github.com/dshills/playground/internal/console"
	"github.com/dshills/playground/internal/playground"
	"github.com/dshills/playground/internal/template"
)

// Command errors.
var (
	// ErrUsage indicates the command line could not be parsed.
	ErrUsage = errors.New("usage error")

	// ErrHelp indicates help was requested. It is not a failure.
	ErrHelp = errors.New("help requested")
)

// UsageError describes a malformed command line.
type UsageError struct {
	// Command is the command being parsed ("" for the top level).
	Command string
	// Msg describes the problem.
	Msg string
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Msg)
}

// Is reports whether target is ErrUsage.
func (e *UsageError) Is(target error) bool {
	return target == ErrUsage
}

func usageErrorf(command, format string, args ...any) error {
	return &UsageError{Command: command, Msg: fmt.Sprintf(format, args...)}
}

// Message converts err into the sentence shown to the user.
// Errors without an entry fall back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		formatErr    *config.FormatError
		notFound     *playground.NotFoundError
		typeErr      *config.TypeNotConfiguredError
		optionErr    *config.OptionError
		settingsErr  *playground.SettingsNotFoundError
		invalidErr   *playground.InvalidSettingsError
		missingErr   *template.MissingSubstitutionError
		reservedErr  *template.ReservedNameError
		collisionErr *template.KeyCollisionError
		exitErr      *playground.ExitError
		usageErr     *UsageError
	)

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Operation cancelled."
	case errors.Is(err, config.ErrConfigNotFound):
		return "The configuration could not be found."
	case errors.Is(err, config.ErrConfigExists):
		return "The configuration already exists. Use --force to replace it."
	case errors.As(err, &formatErr):
		return fmt.Sprintf("JSON format error in '%s': %s", formatErr.Path, formatErr.Detail())
	case errors.As(err, &notFound):
		return fmt.Sprintf("The playground %s does not exist.", notFound.Path)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("The playground type '%s' is not configured.", typeErr.Type)
	case errors.As(err, &optionErr):
		return optionMessage(optionErr)
	case errors.As(err, &settingsErr):
		return fmt.Sprintf("Settings for playground '%s' was not found.", settingsErr.Path)
	case errors.As(err, &invalidErr):
		return fmt.Sprintf("Settings options missing: %s", strings.Join(invalidErr.Missing, ", "))
	case errors.As(err, &missingErr):
		return fmt.Sprintf("No value for template variable '%s'.", missingErr.Identifier)
	case errors.As(err, &reservedErr):
		return fmt.Sprintf("'%s' is a reserved template variable.", reservedErr.Name)
	case errors.As(err, &collisionErr):
		return fmt.Sprintf("More than one key formats to '%s'.", collisionErr.Key)
	case errors.As(err, &exitErr):
		if exitErr.Code < 0 {
			return fmt.Sprintf("'%s' was terminated by a signal.", exitErr.Name)
		}
		return fmt.Sprintf("'%s' exited with status %d.", exitErr.Name, exitErr.Code)
	case errors.Is(err, playground.ErrEmptyName):
		return "A playground name is required."
	case errors.Is(err, playground.ErrOutsideRoot):
		return "The playground type declares a path outside the playground directory."
	case errors.Is(err, console.ErrNoInput):
		return "No playground name was given."
	case errors.As(err, &usageErr):
		return usageErr.Error()
	default:
		return err.Error()
	}
}

func optionMessage(e *config.OptionError) string {
	switch {
	case errors.Is(e.Err, config.ErrOptionNotSet):
		return fmt.Sprintf("'%s' is not set for type '%s'.", e.Key, e.Type)
	case errors.Is(e.Err, config.ErrInvalidValue) && e.Type == "":
		return fmt.Sprintf("'%s' is not a valid type definition.", e.Key)
	case errors.Is(e.Err, config.ErrInvalidValue):
		return fmt.Sprintf("'%s' has an invalid value for type '%s'.", e.Key, e.Type)
	default:
		return fmt.Sprintf("'%s' is not a valid configuration key.", e.Key)
	}
}
