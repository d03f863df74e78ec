// Package history defines the append-only command execution audit log.
package history

import "time"

// Entry is one recorded command execution. CommandID is nil for ad-hoc
// executions and becomes nil when the saved command is later deleted;
// the entry itself is never removed.
type Entry struct {
	ID          string    `json:"id"`
	CommandID   *string   `json:"command_id"`
	CommandText string    `json:"command_text"`
	Output      string    `json:"output"`
	ExitCode    int       `json:"exit_code"`
	ExecutedAt  time.Time `json:"executed_at"`
}

// Record holds the fields written when appending a new entry.
type Record struct {
	CommandID   *string
	CommandText string
	Output      string
	ExitCode    int
}
