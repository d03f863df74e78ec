package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event type constants for WebSocket messages.
const (
	EventTaskMoved       = "task.moved"
	EventCommandExecuted = "command.executed"
)

// TaskMovedEvent is broadcast when a task changes status or position.
type TaskMovedEvent struct {
	TaskID    string `json:"task_id"`
	ScopeID   string `json:"scope_id"`
	Status    string `json:"status"`
	SortOrder int    `json:"sort_order"`
}

// CommandExecutedEvent is broadcast when a shell execution finishes.
type CommandExecutedEvent struct {
	ExecutionID string `json:"execution_id"`
	HistoryID   string `json:"history_id,omitempty"`
	ExitCode    int    `json:"exit_code"`
	Success     bool   `json:"success"`
	TimedOut    bool   `json:"timed_out"`
}

// BroadcastEvent is a convenience method that marshals a typed event and broadcasts it.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
