package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"syscall"
)

// Process is a child process started by a Supervisor.
type Process struct {
	// ID is the unique identifier given by the supervisor.
	ID string
	// Name describes the process in errors, e.g. "pip".
	Name string
	// Cmd is the underlying command.
	Cmd *exec.Cmd

	done chan struct{}

	mu     sync.Mutex
	exited bool
	err    error
}

func newProcess(id, name string, cmd *exec.Cmd) *Process {
	return &Process{ID: id, Name: name, Cmd: cmd, done: make(chan struct{})}
}

// Done returns a channel that is closed once the process has exited and
// is no longer tracked.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Running reports whether the process has not exited yet.
func (p *Process) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.exited
}

// Err returns nil for a successful exit and an *ExitError for a non-zero
// exit status or a signal. It is meaningful once Done is closed.
func (p *Process) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var exitErr *exec.ExitError
	if errors.As(p.err, &exitErr) {
		// ExitCode is -1 when the process was ended by a signal.
		return &ExitError{Name: p.Name, Code: exitErr.ExitCode(), Err: p.err}
	}
	return p.err
}

// Kill stops the process immediately.
func (p *Process) Kill() error {
	return p.signal(os.Kill)
}

// Interrupt asks the process to stop. Windows cannot deliver an interrupt
// to a child process, so the process is killed there instead.
func (p *Process) Interrupt() error {
	if runtime.GOOS == "windows" {
		return p.Kill()
	}
	return p.signal(os.Interrupt)
}

// Terminate sends SIGTERM, or kills the process on Windows.
func (p *Process) Terminate() error {
	if runtime.GOOS == "windows" {
		return p.Kill()
	}
	return p.signal(syscall.SIGTERM)
}

func (p *Process) signal(sig os.Signal) error {
	if !p.Running() {
		return ErrProcessExited
	}
	return p.Cmd.Process.Signal(sig)
}

func (p *Process) finish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exited = true
	p.err = err
}

// ExitError reports a process that exited with a non-zero status.
type ExitError struct {
	// Name is the process name given to the supervisor.
	Name string
	// Code is the exit status, or -1 when the process was killed by a signal.
	Code int
	// Err is the underlying *exec.ExitError.
	Err error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("%s was terminated by a signal", e.Name)
	}
	return fmt.Sprintf("%s exited with status %d", e.Name, e.Code)
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}
