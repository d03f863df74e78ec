// Package execution defines the types exchanged with the shell runner.
package execution

import "time"

// ExitCodeUnknown is reported when no process exit code exists: the
// command timed out or the process could not be spawned at all. It is
// deliberately outside the 0-255 range a real process can produce.
const ExitCodeUnknown = -1

// Request describes one shell command to run.
type Request struct {
	Command string
	// Timeout of zero means the runner's configured default.
	Timeout time.Duration
}

// Result is the outcome of a single execution. Run failures (non-zero
// exit, timeout, spawn error) are data here, not Go errors.
type Result struct {
	ExecutionID string        `json:"execution_id"`
	Stdout      string        `json:"output"`
	Stderr      string        `json:"stderr"`
	ExitCode    int           `json:"exit_code"`
	Success     bool          `json:"success"`
	TimedOut    bool          `json:"timed_out"`
	Truncated   bool          `json:"truncated"`
	Duration    time.Duration `json:"-"`
}
