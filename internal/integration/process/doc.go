// Package process runs the child processes a playground command needs:
// the environment creator, the package installer and the playground's own
// program.
//
// # Supervisor
//
// The Supervisor starts and tracks child processes:
//
//	supervisor := process.NewSupervisor()
//	defer supervisor.Shutdown(5 * time.Second)
//
//	cmd := exec.Command("python3", "-m", "venv", ".venv")
//	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
//	if err := supervisor.Run(ctx, "venv", cmd); err != nil {
//	    return err
//	}
//
// Run blocks until the process exits. A non-zero exit is reported as an
// *ExitError. When ctx is cancelled first the process is interrupted, then
// killed after the supervisor's grace period, and Run returns ctx.Err().
//
// # Process
//
// Each Process wraps a started exec.Cmd with a unique ID and a Done
// channel that is closed once it has exited.
//
// Both Supervisor and Process are safe for concurrent use.
package process
