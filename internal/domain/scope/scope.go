// Package scope defines the QA Scope domain entity.
package scope

import "time"

// Status represents the lifecycle state of a scope.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusTesting    Status = "testing"
	StatusDone       Status = "done"
)

// Valid reports whether s is a known scope status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusTesting, StatusDone:
		return true
	}
	return false
}

// Scope is a QA work area within a project. It owns tasks and may have
// saved commands linked to it. ProjectName and the count fields are
// derived on read and never persisted.
type Scope struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"project_id"`
	ProjectName  string    `json:"project_name,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Status       Status    `json:"status"`
	TaskCount    int       `json:"task_count"`
	DoneCount    int       `json:"done_count"`
	CommandCount int       `json:"command_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest holds the fields needed to create a new scope.
type CreateRequest struct {
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateRequest holds optional fields for a partial scope update.
// Nil fields are left unchanged.
type UpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
}
