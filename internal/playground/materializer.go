package playground

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dshills/playground/internal/config"
	"github.com/dshills/playground/internal/vfs"
)

// Reporter receives user-facing progress messages.
type Reporter interface {
	// Status reports a step.
	Status(msg string)
	// Detail reports an item within a step.
	Detail(msg string)
	// Success reports the outcome of a command.
	Success(msg string)
}

// Logger receives diagnostic messages.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopReporter struct{}

func (nopReporter) Status(string)  {}
func (nopReporter) Detail(string)  {}
func (nopReporter) Success(string) {}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Request describes a playground to create.
type Request struct {
	// Name is the playground directory, relative to the working directory
	// or absolute. It is also bound to ${name}.
	Name string
	// Type is the registry type to scaffold.
	Type string
	// Lib lists extra packages to install after the type's own.
	Lib []string
	// Vars override the type's format defaults.
	Vars map[string]string
}

// Materializer creates, runs and deletes playgrounds.
type Materializer struct {
	fs       vfs.VFS
	env      Environment
	runner   Runner
	reporter Reporter
	logger   Logger
	verbose  int
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithFS sets the file system playgrounds are created in.
func WithFS(fsys vfs.VFS) Option {
	return func(m *Materializer) {
		m.fs = fsys
	}
}

// WithEnvironment sets the environment provider.
func WithEnvironment(env Environment) Option {
	return func(m *Materializer) {
		m.env = env
	}
}

// WithRunner sets the runner used by Run.
func WithRunner(r Runner) Option {
	return func(m *Materializer) {
		m.runner = r
	}
}

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(m *Materializer) {
		m.reporter = r
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l Logger) Option {
	return func(m *Materializer) {
		m.logger = l
	}
}

// WithVerbosity sets how much progress is reported: 0 reports only the
// outcome, 1 each step, 2 and above each folder and file.
func WithVerbosity(level int) Option {
	return func(m *Materializer) {
		m.verbose = level
	}
}

// New creates a Materializer. Without options it works on the OS file
// system with a VenvEnvironment and verbosity 1.
func New(opts ...Option) *Materializer {
	m := &Materializer{
		reporter: nopReporter{},
		logger:   nopLogger{},
		verbose:  1,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.fs == nil {
		m.fs = vfs.NewOSFS()
	}
	if m.env == nil {
		m.env = NewVenvEnvironment()
	}
	if m.runner == nil {
		if r, ok := m.env.(Runner); ok {
			m.runner = r
		}
	}
	return m
}

// Root returns the absolute playground directory for name.
func (m *Materializer) Root(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}
	return m.fs.Abs(name)
}

// plan is a resolved type ready to be written.
type plan struct {
	folders  []string
	files    map[string][]string
	order    []string
	settings Settings
}

func (m *Materializer) newPlan(root string, def *config.TypeDefinition, extra []string) (*plan, error) {
	p := &plan{
		folders: append(slices.Clone(def.Folders), RequirementsDir),
		files:   make(map[string][]string, len(def.Files)+1),
		order:   def.FilePaths(),
	}

	for _, folder := range def.Folders {
		if !filepath.IsLocal(folder) {
			return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, folder)
		}
	}
	for _, file := range p.order {
		if !filepath.IsLocal(file) {
			return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, file)
		}
		p.files[file] = def.Files[file]
	}

	requirements := m.fs.Join(RequirementsDir, RequirementsFile)
	p.files[requirements] = append(slices.Clone(def.Lib), extra...)
	p.order = append(p.order, requirements)

	p.settings = Settings{
		Python: PythonPath(m.fs.Join(root, VenvDir)),
		Module: def.Module,
		Args:   def.Args,
	}
	return p, nil
}

// Create scaffolds a playground and provisions its environment.
//
// The type is resolved first; failures there leave the file system
// untouched and the returned directory is empty. Any later failure or
// cancellation of ctx removes the playground directory before the error
// is returned along with the absolute directory.
func (m *Materializer) Create(ctx context.Context, reg config.Registry, req Request) (string, error) {
	def, err := reg.Resolve(req.Type, req.Name, req.Vars)
	if err != nil {
		return "", err
	}
	root, err := m.Root(req.Name)
	if err != nil {
		return "", err
	}
	p, err := m.newPlan(root, def, req.Lib)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.logger.Debug("creating playground %s of type %s", root, def.Name)
	if err := m.build(ctx, root, p); err != nil {
		m.rollback(root)
		return root, err
	}

	m.reporter.Success("Playground creation successful.")
	return root, nil
}

func (m *Materializer) build(ctx context.Context, root string, p *plan) error {
	steps := []struct {
		status string
		run    func() error
	}{
		{"Creating the playground folder...", func() error { return m.createRoot(root) }},
		{"Creating necessary folders...", func() error { return m.createFolders(root, p.folders) }},
		{"Creating necessary files...", func() error { return m.createFiles(root, p) }},
		{"Creating the settings file...", func() error { return m.writeSettings(root, p.settings) }},
		{"Creating the virtual environment...", func() error {
			return m.env.Create(ctx, m.fs.Join(root, VenvDir))
		}},
		{"Installing requirements...", func() error {
			requirements := m.fs.Join(root, RequirementsDir, RequirementsFile)
			return m.env.Install(ctx, p.settings.Python, requirements, m.verbose > 0)
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if m.verbose > 0 {
			m.reporter.Status(step.status)
		}
		if err := step.run(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Materializer) createRoot(root string) error {
	if err := m.fs.RemoveAll(root); err != nil {
		return fmt.Errorf("removing existing playground: %w", err)
	}
	// The parent must already exist; missing parents are never created.
	if err := m.fs.Mkdir(root, 0o755); err != nil {
		return fmt.Errorf("creating playground folder: %w", err)
	}
	return nil
}

func (m *Materializer) createFolders(root string, folders []string) error {
	for _, folder := range folders {
		path := m.fs.Join(root, folder)
		if m.verbose > 1 {
			m.reporter.Detail("Creating " + path)
		}
		err := m.fs.Mkdir(path, 0o755)
		if err != nil && !(errors.Is(err, fs.ErrExist) && m.fs.IsDir(path)) {
			return fmt.Errorf("creating folder %s: %w", folder, err)
		}
	}
	return nil
}

func (m *Materializer) createFiles(root string, p *plan) error {
	for _, name := range p.order {
		path := m.fs.Join(root, name)
		if m.verbose > 1 {
			m.reporter.Detail("Creating " + path)
		}
		if err := m.fs.WriteFile(path, fileContent(p.files[name]), 0o644); err != nil {
			return fmt.Errorf("creating file %s: %w", name, err)
		}
	}
	return nil
}

func (m *Materializer) writeSettings(root string, s Settings) error {
	data, err := EncodeSettings(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := m.fs.WriteFile(m.fs.Join(root, SettingsFile), data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// rollback removes a partially created playground.
func (m *Materializer) rollback(root string) {
	m.logger.Debug("rolling back playground %s", root)
	if err := m.fs.RemoveAll(root); err != nil {
		m.logger.Warn("could not remove %s: %v", root, err)
	}
}

// Cleanup removes the playground directory for name if it exists.
// It is used after a failed or interrupted create.
func (m *Materializer) Cleanup(name string) {
	root, err := m.Root(name)
	if err != nil {
		return
	}
	if m.fs.Exists(root) {
		m.rollback(root)
	}
}

// Delete removes the playground directory for name.
func (m *Materializer) Delete(name string) (string, error) {
	root, err := m.Root(name)
	if err != nil {
		return "", err
	}
	if !m.fs.Exists(root) {
		return root, &NotFoundError{Path: root}
	}
	if err := m.fs.RemoveAll(root); err != nil {
		return root, fmt.Errorf("deleting playground: %w", err)
	}
	m.reporter.Success("Playground deletion successful.")
	return root, nil
}

// Settings reads the settings of the playground called name.
func (m *Materializer) Settings(name string) (string, Settings, error) {
	root, err := m.Root(name)
	if err != nil {
		return "", Settings{}, err
	}
	if !m.fs.Exists(root) {
		return root, Settings{}, &NotFoundError{Path: root}
	}
	s, err := ReadSettings(m.fs, root)
	return root, s, err
}

// Run runs the playground called name from its own directory and waits
// for it to exit. A non-zero exit is returned as an *ExitError.
func (m *Materializer) Run(ctx context.Context, name string) error {
	root, s, err := m.Settings(name)
	if err != nil {
		return err
	}
	if m.runner == nil {
		return fmt.Errorf("run playground: no runner configured")
	}

	m.logger.Debug("running %s in %s", CommandLine(s), root)
	return m.runner.Run(ctx, root, Command(s))
}

// Preview lists the paths Create would produce for req, relative to the
// playground directory and sorted. Directories end with "/".
func (m *Materializer) Preview(reg config.Registry, req Request) ([]string, error) {
	def, err := reg.Resolve(req.Type, req.Name, req.Vars)
	if err != nil {
		return nil, err
	}
	root, err := m.Root(req.Name)
	if err != nil {
		return nil, err
	}
	p, err := m.newPlan(root, def, req.Lib)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(p.folders)+len(p.order)+2)
	for _, folder := range p.folders {
		paths = append(paths, filepath.ToSlash(folder)+"/")
	}
	for _, file := range p.order {
		paths = append(paths, filepath.ToSlash(file))
	}
	paths = append(paths, SettingsFile, VenvDir+"/")

	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// fileContent terminates every line with a newline.
func fileContent(lines []string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
