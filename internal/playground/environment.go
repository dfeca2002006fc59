package playground

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/dshills/playground/internal/integration/process"
)

// Environment provisions the isolated runtime of a playground.
type Environment interface {
	// Create creates a new environment in dir.
	Create(ctx context.Context, dir string) error
	// Install installs the requirements file into the environment whose
	// interpreter is python.
	Install(ctx context.Context, python, requirements string, verbose bool) error
}

// Runner runs a playground's command.
type Runner interface {
	// Run executes argv in dir with the terminal attached.
	Run(ctx context.Context, dir string, argv []string) error
}

// DefaultInterpreter returns the base interpreter used to create
// environments on the running platform.
func DefaultInterpreter() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// VenvEnvironment creates environments with "python -m venv" and installs
// packages with pip. All child processes go through a process.Supervisor.
type VenvEnvironment struct {
	python     string
	supervisor *process.Supervisor
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

var (
	_ Environment = (*VenvEnvironment)(nil)
	_ Runner      = (*VenvEnvironment)(nil)
)

// VenvOption configures a VenvEnvironment.
type VenvOption func(*VenvEnvironment)

// WithInterpreter sets the base interpreter used to create environments.
func WithInterpreter(python string) VenvOption {
	return func(e *VenvEnvironment) {
		if python != "" {
			e.python = python
		}
	}
}

// WithSupervisor sets the supervisor that runs child processes.
func WithSupervisor(s *process.Supervisor) VenvOption {
	return func(e *VenvEnvironment) {
		e.supervisor = s
	}
}

// WithStdio sets the streams attached to child processes.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) VenvOption {
	return func(e *VenvEnvironment) {
		e.stdin = stdin
		e.stdout = stdout
		e.stderr = stderr
	}
}

// NewVenvEnvironment creates a venv-based environment provider.
func NewVenvEnvironment(opts ...VenvOption) *VenvEnvironment {
	e := &VenvEnvironment{
		python: DefaultInterpreter(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.supervisor == nil {
		e.supervisor = process.NewSupervisor()
	}
	return e
}

// Create runs "<python> -m venv <dir>".
func (e *VenvEnvironment) Create(ctx context.Context, dir string) error {
	cmd := exec.Command(e.python, "-m", "venv", dir)
	cmd.Stdout, cmd.Stderr = e.stdout, e.stderr
	if err := e.supervisor.Run(ctx, "venv", cmd); err != nil {
		return fmt.Errorf("creating environment %s: %w", dir, err)
	}
	return nil
}

// Install runs "<python> -m pip install --no-cache-dir -r <requirements>",
// adding -v when verbose.
func (e *VenvEnvironment) Install(ctx context.Context, python, requirements string, verbose bool) error {
	cmd := exec.Command(python, InstallArgs(requirements, verbose)...)
	cmd.Stdout, cmd.Stderr = e.stdout, e.stderr
	if err := e.supervisor.Run(ctx, "pip", cmd); err != nil {
		return fmt.Errorf("installing requirements: %w", err)
	}
	return nil
}

// Run executes argv in dir with stdin, stdout and stderr attached.
func (e *VenvEnvironment) Run(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("run playground: empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin, cmd.Stdout, cmd.Stderr = e.stdin, e.stdout, e.stderr
	return e.supervisor.Run(ctx, "playground", cmd)
}

// InstallArgs returns the interpreter arguments of the installer command.
func InstallArgs(requirements string, verbose bool) []string {
	args := []string{"-m", "pip", "install", "--no-cache-dir", "-r", requirements}
	if verbose {
		args = append(args, "-v")
	}
	return args
}
