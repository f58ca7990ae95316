package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/monopole/errortracker"
	"go.uber.org/zap"
)

// defaultPollInterval is how often the watchdog is checked unless
// told otherwise.
const defaultPollInterval = time.Second

// ErrTimedOut is wrapped by the error Run returns when the watchdog
// fired as an error and the subprocess was killed.
var ErrTimedOut = errors.New("watchdog fired")

// Runner runs a subprocess under the watchdog of a Tracker.
//
// The Tracker is owned by Run's goroutine for the duration of the call;
// the only other goroutine waits on the subprocess and never touches it.
type Runner struct {
	// Tracker supplies the watchdog threshold and escalation policy,
	// and receives the reports.
	Tracker *errortracker.Tracker[any]

	// Poll is the time between watchdog checks.
	Poll time.Duration

	// Function is the name the watchdog reports under.
	// If empty, the base name of the executable is used.
	Function string

	// Env is added to the environment of the subprocess.
	Env []string

	// Stdout and Stderr receive the subprocess' output streams.
	Stdout io.Writer
	Stderr io.Writer

	Logger *zap.Logger
}

// Run starts the executable at path and blocks until it exits or the
// watchdog fires as an error.
//
// Run resets the Tracker's error and warning status and arms its watchdog
// before starting, and disarms the watchdog on return.
//
// If the watchdog fires as an error, the subprocess is killed and Run
// returns either the Tracker's *errortracker.ExitError, or, if the Tracker
// doesn't request exits, an error wrapping ErrTimedOut.  If it fires as a
// warning, the warning is reported once and the subprocess is left alone.
// Otherwise Run returns the subprocess' own failure, if any.
func (r *Runner) Run(ctx context.Context, path string, args ...string) error {
	if r.Tracker == nil {
		return fmt.Errorf("provide a Tracker")
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	poll := r.Poll
	if poll <= 0 {
		poll = defaultPollInterval
	}
	function := r.Function
	if function == "" {
		function = filepath.Base(path)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	r.Tracker.ResetErrorStatus()
	r.Tracker.ResetWarningStatus()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("trying to start %s - %w", path, err)
	}
	logger.Debug("subprocess started",
		zap.String("path", path), zap.Int("pid", cmd.Process.Pid))

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	r.Tracker.StartTiming()
	defer r.Tracker.ResetTimeout()
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			if err != nil {
				return fmt.Errorf("subprocess returns %w", err)
			}
			logger.Debug("subprocess finished",
				zap.Duration("elapsed", r.Tracker.Elapsed()))
			return nil
		case <-ticker.C:
			if r.Tracker.HasWarningOccurred() {
				// Already warned; just wait for the subprocess.
				continue
			}
			outcome := r.Tracker.CheckTimeout(function)
			if !r.Tracker.HasErrorOccurred() {
				continue
			}
			elapsed := r.Tracker.Elapsed()
			logger.Info("killing subprocess",
				zap.String("path", path), zap.Duration("elapsed", elapsed))
			if err := cmd.Process.Kill(); err != nil {
				logger.Warn("kill failed", zap.Error(err))
			}
			<-done
			if outcome != nil {
				return outcome
			}
			return fmt.Errorf(
				"%w: time %s expired running %s", ErrTimedOut, elapsed, path)
		}
	}
}
