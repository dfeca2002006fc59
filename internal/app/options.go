package app

import (
	"fmt"

	"github.com/dshills/playground/internal/config/keypath"
	"github.com/dshills/playground/internal/config/loader"
)

// DefaultVerbosity prints one status line per creation step.
const DefaultVerbosity = 1

// Options are the global settings of one invocation. Flags override
// environment values.
type Options struct {
	// ConfigPath is the registry location; empty means the default.
	ConfigPath string
	// Python is the base interpreter used to create environments.
	Python string
	// LogLevel is the diagnostic log level name.
	LogLevel string
	// Verbose is 0 (quiet), 1 (steps) or 2 (steps and items).
	Verbose int
	// NoColor disables styled output.
	NoColor bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		LogLevel: "warn",
		Verbose:  DefaultVerbosity,
	}
}

// EnvOptions applies the environment settings read by l on top of base.
func EnvOptions(l *loader.EnvLoader, base Options) (Options, error) {
	env, err := l.Load()
	if err != nil {
		return base, err
	}

	opts := base
	if v, ok := lookup(env, "config"); ok {
		opts.ConfigPath = fmt.Sprint(v)
	}
	if v, ok := lookup(env, "python"); ok {
		opts.Python = fmt.Sprint(v)
	}
	if v, ok := lookup(env, "log.level"); ok {
		opts.LogLevel = fmt.Sprint(v)
	}
	if v, ok := lookup(env, "verbose"); ok {
		n, isInt := v.(int64)
		if !isInt {
			return base, usageErrorf("", "PLAYGROUND_VERBOSE must be a number, got %v", v)
		}
		opts.Verbose = int(n)
	}
	if v, ok := lookup(env, "noColor"); ok {
		// NO_COLOR disables color when set to anything but an empty string.
		opts.NoColor = v != "" && v != false
	}
	return opts, nil
}

func lookup(env map[string]any, key string) (any, bool) {
	v, err := keypath.Get(keypath.Parse(key), env)
	return v, err == nil
}
