// Package dashboard defines the read-only dashboard aggregates.
package dashboard

import (
	"github.com/Strob0t/QAForge/internal/domain/history"
	"github.com/Strob0t/QAForge/internal/domain/scope"
)

// Stats holds entity and task-status counts across the whole store.
type Stats struct {
	Projects   int `json:"projects"`
	Scopes     int `json:"scopes"`
	Tasks      int `json:"tasks"`
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Testing    int `json:"testing"`
	Done       int `json:"done"`
	Commands   int `json:"commands"`
}

// Summary is the full dashboard payload: counts, the most recently
// touched scopes with their progress, and the latest history entries.
type Summary struct {
	Stats         Stats           `json:"stats"`
	RecentScopes  []scope.Scope   `json:"recent_scopes"`
	RecentHistory []history.Entry `json:"recent_history"`
}
