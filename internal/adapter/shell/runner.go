// Package shell implements the shell runner port using os/exec.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Strob0t/QAForge/internal/domain/execution"
)

// Runner executes shell commands one-shot through an interpreter.
type Runner struct {
	shell     string
	timeout   time.Duration
	maxOutput int64
}

// NewRunner creates a Runner. shellPath is the interpreter (e.g. /bin/bash),
// timeout the default wall-clock limit, maxOutput the combined stdout+stderr
// byte budget per execution.
func NewRunner(shellPath string, timeout time.Duration, maxOutput int64) *Runner {
	return &Runner{shell: shellPath, timeout: timeout, maxOutput: maxOutput}
}

// Run executes req.Command via the configured shell and waits for it to
// finish or hit the timeout. The returned error is nil for all command
// outcomes; non-zero exits, timeouts and spawn failures are encoded in
// the Result with execution.ExitCodeUnknown standing in where no real
// exit code exists.
func (r *Runner) Run(ctx context.Context, req execution.Request) (*execution.Result, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	budget := &outputBudget{remaining: r.maxOutput}
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, r.shell, "-c", req.Command)
	cmd.Stdout = budget.writer(&stdout)
	cmd.Stderr = budget.writer(&stderr)

	res := &execution.Result{
		ExecutionID: uuid.New().String(),
		ExitCode:    execution.ExitCodeUnknown,
	}

	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	res.Truncated = budget.exceeded()

	switch {
	case err == nil:
		res.ExitCode = 0
		res.Success = true
	case ctx.Err() != nil:
		// Killed by the deadline. No process exit code exists.
		res.TimedOut = true
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else if res.Stderr == "" {
			// The process never started (bad shell path, resource
			// limits). Surface the reason as if it were stderr.
			res.Stderr = err.Error()
		}
	}

	return res, nil
}

// outputBudget enforces a shared byte limit across several writers.
type outputBudget struct {
	mu        sync.Mutex
	remaining int64
	truncated bool
}

func (b *outputBudget) writer(dst *bytes.Buffer) *cappedWriter {
	return &cappedWriter{budget: b, dst: dst}
}

func (b *outputBudget) exceeded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.truncated
}

// cappedWriter writes to dst until the shared budget is spent, then
// silently discards. It never errors so the child process is not killed
// by a write failure; the deadline still bounds the run.
type cappedWriter struct {
	budget *outputBudget
	dst    *bytes.Buffer
}

func (w *cappedWriter) Write(p []byte) (int, error) {
	w.budget.mu.Lock()
	defer w.budget.mu.Unlock()

	n := len(p)
	if w.budget.remaining <= 0 {
		w.budget.truncated = true
		return n, nil
	}
	if int64(n) > w.budget.remaining {
		w.budget.truncated = true
		p = p[:w.budget.remaining]
	}
	w.budget.remaining -= int64(len(p))
	w.dst.Write(p)
	return n, nil
}
