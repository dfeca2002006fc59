package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultInterruptGrace is how long Run waits after interrupting a process
// before killing it.
const DefaultInterruptGrace = 5 * time.Second

// Errors returned by the supervisor.
var (
	// ErrSupervisorShutdown is returned when starting a process after Shutdown.
	ErrSupervisorShutdown = errors.New("supervisor is shutting down")

	// ErrProcessExited is returned when signalling a process that has exited.
	ErrProcessExited = errors.New("process has exited")
)

// Supervisor starts child processes and tracks them until they exit.
//
// Supervisor is safe for concurrent use.
type Supervisor struct {
	mu        sync.Mutex
	processes map[string]*Process
	closed    bool

	// grace is the delay between interrupt and kill in Run
	grace time.Duration
}

// SupervisorOption configures a Supervisor instance.
type SupervisorOption func(*Supervisor)

// WithInterruptGrace sets how long Run waits for an interrupted process
// before killing it.
func WithInterruptGrace(d time.Duration) SupervisorOption {
	return func(s *Supervisor) {
		s.grace = d
	}
}

// NewSupervisor creates a new process supervisor.
func NewSupervisor(opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		processes: make(map[string]*Process),
		grace:     DefaultInterruptGrace,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// start launches cmd and tracks it until it exits. Standard streams left
// nil are connected to the null device by exec.
func (s *Supervisor) start(name string, cmd *exec.Cmd) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSupervisorShutdown
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}

	proc := newProcess(uuid.NewString(), name, cmd)
	s.processes[proc.ID] = proc

	go func() {
		proc.finish(cmd.Wait())

		s.mu.Lock()
		delete(s.processes, proc.ID)
		s.mu.Unlock()

		close(proc.done)
	}()
	return proc, nil
}

// Run starts cmd and waits for it to exit.
//
// Output streams left nil are discarded; a nil stdin reads as empty.
// If ctx is cancelled before the process exits, the process is
// interrupted, killed after the grace period if still running, and Run
// returns ctx.Err().
func (s *Supervisor) Run(ctx context.Context, name string, cmd *exec.Cmd) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cmd.Stdout == nil {
		cmd.Stdout = io.Discard
	}
	if cmd.Stderr == nil {
		cmd.Stderr = io.Discard
	}

	proc, err := s.start(name, cmd)
	if err != nil {
		return err
	}

	select {
	case <-proc.Done():
		return proc.Err()
	case <-ctx.Done():
	}

	_ = proc.Interrupt()
	select {
	case <-proc.Done():
	case <-time.After(s.grace):
		_ = proc.Kill()
		<-proc.Done()
	}
	return ctx.Err()
}

// Count returns the number of running processes.
func (s *Supervisor) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.processes)
}

// Shutdown stops every tracked process and refuses new ones.
//
// Processes are sent SIGTERM and given up to timeout to exit; any still
// running afterwards are killed. Shutdown returns once all of them have
// exited.
func (s *Supervisor) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	procs := make([]*Process, 0, len(s.processes))
	for _, p := range s.processes {
		procs = append(procs, p)
	}
	s.mu.Unlock()

	for _, p := range procs {
		_ = p.Terminate()
	}

	deadline := time.After(timeout)
	for _, p := range procs {
		select {
		case <-p.Done():
		case <-deadline:
			_ = p.Kill()
			<-p.Done()
		}
	}
}
