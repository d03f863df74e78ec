// Package task defines the Task domain entity and its workflow states.
package task

import "time"

// Status represents the Kanban column a task sits in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusTesting    Status = "testing"
	StatusDone       Status = "done"
)

// Valid reports whether s is a known task status.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusTesting, StatusDone:
		return true
	}
	return false
}

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether p is a known task priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Task is a unit of QA work within a scope. SortOrder positions the task
// inside its scope's board column listing.
type Task struct {
	ID          string    `json:"id"`
	ScopeID     string    `json:"scope_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRequest holds the fields needed to create a new task.
// Status defaults to todo and Priority to medium when empty.
type CreateRequest struct {
	ScopeID     string   `json:"scope_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
}

// UpdateRequest holds optional fields for a partial task update.
// Nil fields are left unchanged.
type UpdateRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	SortOrder   *int      `json:"sort_order,omitempty"`
}

// MoveRequest repositions a task on the board: a status change, a new
// sort position, or both.
type MoveRequest struct {
	Status    *Status `json:"status,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
}
