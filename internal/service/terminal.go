package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	qaotel "github.com/Strob0t/QAForge/internal/adapter/otel"
	"github.com/Strob0t/QAForge/internal/adapter/ws"
	"github.com/Strob0t/QAForge/internal/domain"
	"github.com/Strob0t/QAForge/internal/domain/execution"
	"github.com/Strob0t/QAForge/internal/domain/history"
	"github.com/Strob0t/QAForge/internal/port/database"
	"github.com/Strob0t/QAForge/internal/port/shell"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// ExecuteRequest describes one command execution. CommandID optionally
// links the run to a saved command for the audit trail.
type ExecuteRequest struct {
	Command   string  `json:"command"`
	CommandID *string `json:"command_id,omitempty"`
	TimeoutMS int     `json:"timeout_ms,omitempty"`
}

// ExecuteResult is the execution outcome plus whether the audit entry
// was written.
type ExecuteResult struct {
	execution.Result
	Recorded bool `json:"recorded"`
}

// TerminalService runs shell commands and records every execution in
// the append-only history.
type TerminalService struct {
	store   database.Store
	runner  shell.Runner
	metrics *qaotel.Metrics
	hub     Broadcaster
}

// NewTerminalService creates a new TerminalService. metrics and hub may
// be nil.
func NewTerminalService(store database.Store, runner shell.Runner, metrics *qaotel.Metrics, hub Broadcaster) *TerminalService {
	return &TerminalService{store: store, runner: runner, metrics: metrics, hub: hub}
}

// Execute runs the command and appends one history entry regardless of
// how the run ended. A failed history insert is logged and reported via
// Recorded=false but never masks the execution result.
func (s *TerminalService) Execute(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error) {
	cmdText := strings.TrimSpace(req.Command)
	if cmdText == "" {
		return nil, fmt.Errorf("command is required: %w", domain.ErrValidation)
	}

	ctx, span := qaotel.StartExecutionSpan(ctx, cmdText)
	defer span.End()

	if s.metrics != nil {
		s.metrics.ExecutionsStarted.Add(ctx, 1)
	}

	res, err := s.runner.Run(ctx, execution.Request{
		Command: cmdText,
		Timeout: time.Duration(req.TimeoutMS) * time.Millisecond,
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.ExecutionsFailed.Add(ctx, 1)
		}
		return nil, fmt.Errorf("run command: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ExecutionsCompleted.Add(ctx, 1)
		s.metrics.ExecutionDuration.Record(ctx, res.Duration.Seconds())
		if !res.Success {
			s.metrics.ExecutionsFailed.Add(ctx, 1)
		}
	}

	out := &ExecuteResult{Result: *res}

	// History records stdout and stderr combined into one transcript.
	entry, recErr := s.store.RecordExecution(ctx, history.Record{
		CommandID:   req.CommandID,
		CommandText: cmdText,
		Output:      combineOutput(res.Stdout, res.Stderr),
		ExitCode:    res.ExitCode,
	})
	if recErr != nil {
		slog.Error("failed to record execution history",
			"execution_id", res.ExecutionID,
			"exit_code", res.ExitCode,
			"error", recErr,
		)
	} else {
		out.Recorded = true
	}

	if s.hub != nil {
		var entryID string
		if entry != nil {
			entryID = entry.ID
		}
		s.hub.BroadcastEvent(ctx, ws.EventCommandExecuted, ws.CommandExecutedEvent{
			ExecutionID: res.ExecutionID,
			HistoryID:   entryID,
			ExitCode:    res.ExitCode,
			Success:     res.Success,
			TimedOut:    res.TimedOut,
		})
	}

	return out, nil
}

// History returns recorded executions, newest first, optionally
// filtered by saved command.
func (s *TerminalService) History(ctx context.Context, commandID string, limit int) ([]history.Entry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.store.ListHistory(ctx, commandID, limit)
}

// combineOutput merges stdout and stderr into the single transcript
// stored in history, marking the stderr section when present.
func combineOutput(stdout, stderr string) string {
	out := stdout
	if stderr != "" {
		out += "\n[STDERR]: " + stderr
	}
	return strings.TrimSpace(out)
}
