// Package main is the entry point for the playground command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dshills/playground/internal/app"
	"github.com/dshills/playground/internal/config"
	"github.com/dshills/playground/internal/config/loader"
	"github.com/dshills/playground/internal/console"
	"github.com/dshills/playground/internal/integration/process"
	"github.com/dshills/playground/internal/playground"
)

// Version information (set via ldflags during build).
var version = "dev"

const shutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	app.Version = version

	// Variables already in the environment win over .env.
	if err := loader.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading .env: %v\n", err)
		return 1
	}
	opts, err := app.EnvOptions(loader.NewEnvLoader(loader.DefaultEnvPrefix), app.DefaultOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", app.Message(err))
		return 1
	}

	showAbout, showVersion := parseFlags(&opts)
	switch {
	case showAbout:
		fmt.Println(app.AboutText())
		return 0
	case showVersion:
		fmt.Println(app.VersionText())
		return 0
	case flag.NArg() == 0:
		flag.Usage()
		return 0
	}

	level, ok := app.ParseLogLevel(opts.LogLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return 1
	}
	logger := app.NewLogger(app.LoggerConfig{Level: level, Output: os.Stderr, Prefix: app.Name})

	cmd, err := app.ParseCommand(flag.Args(), os.Stderr)
	if errors.Is(err, app.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", app.Message(err))
		fmt.Fprintf(os.Stderr, "Run '%s -h' for usage.\n", app.Name)
		return 1
	}

	// Only the default location is seeded; an explicit path must exist.
	configPath, autoInit := opts.ConfigPath, false
	if configPath == "" {
		configPath, err = config.DefaultPath()
		if err != nil {
			logger.Warn("no default configuration directory: %v", err)
		}
		autoInit = err == nil
	}
	logger.Debug("using configuration %s", configPath)

	supervisor := process.NewSupervisor()
	defer func() {
		if n := supervisor.Count(); n > 0 {
			logger.Debug("stopping %d child process(es)", n)
		}
		supervisor.Shutdown(shutdownTimeout)
	}()

	env := playground.NewVenvEnvironment(
		playground.WithInterpreter(opts.Python),
		playground.WithSupervisor(supervisor),
		playground.WithStdio(os.Stdin, os.Stdout, os.Stderr),
	)
	printer := console.NewPrinter(os.Stdout, os.Stderr,
		console.WithColor(console.ColorEnabled(os.Stdout, opts.NoColor)))

	appOpts := []app.Option{
		app.WithPrinter(printer),
		app.WithLogger(logger),
		app.WithAutoInit(autoInit),
		app.WithPlaygroundOptions(
			playground.WithEnvironment(env),
			playground.WithVerbosity(opts.Verbose),
		),
	}
	if console.IsTerminal(os.Stdin) {
		appOpts = append(appOpts, app.WithPrompter(console.NewReadlinePrompter(nil, nil)))
	}
	application := app.New(config.NewStore(configPath), appOpts...)

	// Handle signals by cancelling the running command
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Dispatch(ctx, cmd); err != nil {
		return 1
	}
	return 0
}

func parseFlags(opts *app.Options) (showAbout, showVersion bool) {
	flag.BoolVar(&showAbout, "about", false, "Show information about "+app.Name)
	flag.BoolVar(&showAbout, "a", false, "Show information about "+app.Name+" (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show the installed version")
	flag.BoolVar(&showVersion, "v", false, "Show the installed version (shorthand)")
	flag.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Path to the configuration file")
	flag.StringVar(&opts.Python, "python", opts.Python, "Base interpreter used to create environments")
	flag.IntVar(&opts.Verbose, "verbose", opts.Verbose, "Output detail: 0 quiet, 1 steps, 2 steps and items")
	flag.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.NoColor, "no-color", opts.NoColor, "Disable styled output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - %s\n\n", app.Name, app.Description)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [arguments]\n\n", app.Name)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  new <type> -n NAME [-i PKG]... [--var KEY=VALUE]...  Create a playground\n")
		fmt.Fprintf(os.Stderr, "  delete <name>                                      Delete a playground\n")
		fmt.Fprintf(os.Stderr, "  run <name>                                         Run a playground\n")
		fmt.Fprintf(os.Stderr, "  preview <type> [-n NAME]                           List what a type creates\n")
		fmt.Fprintf(os.Stderr, "  config [-k KEY]                                    Show the configuration\n")
		fmt.Fprintf(os.Stderr, "  config add <type> <json>                           Add a playground type\n")
		fmt.Fprintf(os.Stderr, "  config delete <key> | --file PATH                  Delete types or options\n")
		fmt.Fprintf(os.Stderr, "  config edit|set <key> <json>                       Change an option\n")
		fmt.Fprintf(os.Stderr, "  config read <key>                                  Show one option\n")
		fmt.Fprintf(os.Stderr, "  config merge <file>                                Merge types from JSON, TOML or YAML\n")
		fmt.Fprintf(os.Stderr, "  config init [--force]                              Write the default configuration\n")
		fmt.Fprintf(os.Stderr, "\nArguments after -- are never read as flags.\n")
	}

	flag.Parse()
	return showAbout, showVersion
}
