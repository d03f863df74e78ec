// Package shell defines the port interface for shell command execution.
package shell

import (
	"context"

	"github.com/Strob0t/QAForge/internal/domain/execution"
)

// Runner executes one shell command to completion. The returned error is
// reserved for infrastructure problems; command failures (non-zero exit,
// timeout, spawn error) are reported inside the Result.
type Runner interface {
	Run(ctx context.Context, req execution.Request) (*execution.Result, error)
}
