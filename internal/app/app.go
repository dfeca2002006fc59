// Package app wires the registry, the materializer and the console into
// the playground command set.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/playground/internal/config"
	"github.com/dshills/playground/internal/console"
	"github.com/dshills/playground/internal/playground"
)

// App runs playground commands. Each process runs one command.
type App struct {
	store      *config.Store
	playground *playground.Materializer
	printer    *console.Printer
	prompter   console.Prompter
	logger     *Logger
	autoInit   bool
	pgOptions  []playground.Option
}

// Option configures an App.
type Option func(*App)

// WithPrinter sets the user-facing output.
func WithPrinter(p *console.Printer) Option {
	return func(a *App) {
		a.printer = p
	}
}

// WithPrompter enables asking for a missing playground name.
func WithPrompter(p console.Prompter) Option {
	return func(a *App) {
		a.prompter = p
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithAutoInit seeds the registry with the default types when it does not
// exist yet. Only the default registry location should be seeded.
func WithAutoInit(enabled bool) Option {
	return func(a *App) {
		a.autoInit = enabled
	}
}

// WithPlaygroundOptions passes options to the materializer. The printer
// and logger are always added as its reporter and logger.
func WithPlaygroundOptions(opts ...playground.Option) Option {
	return func(a *App) {
		a.pgOptions = append(a.pgOptions, opts...)
	}
}

// New creates an App around the registry store.
func New(store *config.Store, opts ...Option) *App {
	a := &App{
		store:  store,
		logger: NullLogger,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.printer == nil {
		a.printer = console.NewPrinter(os.Stdout, os.Stderr)
	}

	pgOpts := append([]playground.Option{
		playground.WithReporter(a.printer),
		playground.WithLogger(a.logger.WithComponent("playground")),
	}, a.pgOptions...)
	a.playground = playground.New(pgOpts...)
	return a
}

// Dispatch runs cmd. A failure is reported on the printer's error stream
// and returned; the caller decides the exit status.
func (a *App) Dispatch(ctx context.Context, cmd Command) error {
	log := a.logger.WithField("command", cmd.Kind)
	log.Debug("dispatching")

	err := a.execute(ctx, cmd)
	if err != nil {
		log.Debug("failed: %v", err)
		a.printer.Error(Message(err))
	}
	return err
}

func (a *App) execute(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case CmdNew:
		return a.newPlayground(ctx, cmd)
	case CmdDelete:
		_, err := a.playground.Delete(cmd.Name)
		return err
	case CmdRun:
		return a.playground.Run(ctx, cmd.Name)
	case CmdPreview:
		return a.preview(cmd)
	case CmdConfigRead:
		return a.readConfig(cmd.Key)
	case CmdConfigAdd:
		return a.updateConfig(func(reg config.Registry) error {
			return reg.Add(cmd.Type, cmd.Value)
		})
	case CmdConfigEdit, CmdConfigSet:
		return a.updateConfig(func(reg config.Registry) error {
			return reg.Set(cmd.Key, cmd.Value)
		})
	case CmdConfigDelete:
		if cmd.File != "" {
			return a.importConfig(cmd.File, a.store.DeleteFrom, "removed")
		}
		return a.updateConfig(func(reg config.Registry) error {
			return reg.Delete(cmd.Key)
		})
	case CmdConfigMerge:
		return a.importConfig(cmd.File, a.store.MergeFrom, "merged")
	case CmdConfigInit:
		if err := a.store.Init(cmd.Force); err != nil {
			return err
		}
		a.printer.Success(fmt.Sprintf("Configuration written to %s.", a.store.Path()))
		return nil
	default:
		return usageErrorf("", "unknown command %q", cmd.Kind)
	}
}

func (a *App) newPlayground(ctx context.Context, cmd Command) error {
	name := cmd.Name
	if name == "" && a.prompter != nil {
		answer, err := a.prompter.Prompt("Playground name: ")
		if err != nil {
			return err
		}
		name = answer
	}

	reg, err := a.registry()
	if err != nil {
		return err
	}

	root, err := a.playground.Create(ctx, reg, playground.Request{
		Name: name,
		Type: cmd.Type,
		Lib:  cmd.Include,
		Vars: cmd.Vars,
	})
	if err != nil {
		// An empty root means nothing was touched on disk.
		if root != "" {
			a.playground.Cleanup(name)
		}
		return err
	}
	a.logger.Info("created playground %s", root)
	return nil
}

func (a *App) preview(cmd Command) error {
	reg, err := a.registry()
	if err != nil {
		return err
	}
	paths, err := a.playground.Preview(reg, playground.Request{
		Name: cmd.Name,
		Type: cmd.Type,
		Vars: cmd.Vars,
	})
	if err != nil {
		return err
	}
	a.printer.Lines(paths)

	vars, err := reg.Variables(cmd.Type)
	if err != nil {
		return err
	}
	if len(vars) > 0 {
		names := make([]string, len(vars))
		for i, v := range vars {
			names[i] = v.String()
		}
		a.printer.Println("Variables: " + strings.Join(names, ", "))
	}
	return nil
}

func (a *App) readConfig(key string) error {
	reg, err := a.registry()
	if err != nil {
		return err
	}
	value, err := reg.Read(key)
	if err != nil {
		return err
	}
	return a.printer.JSON(value)
}

func (a *App) updateConfig(fn func(config.Registry) error) error {
	if err := a.ensureRegistry(); err != nil {
		return err
	}
	if err := a.store.Update(fn); err != nil {
		return err
	}
	a.printer.Success("Configuration modified successfully.")
	return nil
}

func (a *App) importConfig(path string, apply func(string) ([]string, error), verb string) error {
	if err := a.ensureRegistry(); err != nil {
		return err
	}
	names, err := apply(path)
	if err != nil {
		return err
	}
	a.logger.Info("%s %d type(s) from %s: %v", verb, len(names), path, names)
	a.printer.Success("Configuration modified successfully.")
	return nil
}

// registry loads the registry, seeding it first when allowed.
func (a *App) registry() (config.Registry, error) {
	if err := a.ensureRegistry(); err != nil {
		return nil, err
	}
	return a.store.Load()
}

func (a *App) ensureRegistry() error {
	if !a.autoInit || a.store.Exists() {
		return nil
	}
	if err := a.store.Init(false); err != nil {
		return err
	}
	a.logger.Info("created default configuration at %s", a.store.Path())
	return nil
}
