// Package command defines the saved shell Command domain entity.
package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/Strob0t/QAForge/internal/domain"
)

// Command is a saved shell command, optionally linked to a scope.
// ScopeID is nil for commands not attached to any scope; ScopeTitle is
// derived on read.
type Command struct {
	ID          string    `json:"id"`
	ScopeID     *string   `json:"scope_id"`
	ScopeTitle  string    `json:"scope_title,omitempty"`
	Label       string    `json:"label"`
	Command     string    `json:"command"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateRequest holds the fields needed to save a new command.
type CreateRequest struct {
	ScopeID     *string `json:"scope_id,omitempty"`
	Label       string  `json:"label"`
	Command     string  `json:"command"`
	Description string  `json:"description"`
}

// UpdateRequest holds optional fields for a partial command update.
// Nil fields are left unchanged. A non-nil ScopeID pointing at an empty
// string detaches the command from its scope.
type UpdateRequest struct {
	ScopeID     *string `json:"scope_id,omitempty"`
	Label       *string `json:"label,omitempty"`
	Command     *string `json:"command,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ValidateCreateRequest validates a command creation request. Free-text
// fields are trimmed in place before they reach the store.
func ValidateCreateRequest(req *CreateRequest) error {
	req.Label = strings.TrimSpace(req.Label)
	req.Command = strings.TrimSpace(req.Command)
	req.Description = strings.TrimSpace(req.Description)
	if req.Label == "" {
		return fmt.Errorf("label is required: %w", domain.ErrValidation)
	}
	if req.Command == "" {
		return fmt.Errorf("command is required: %w", domain.ErrValidation)
	}
	return nil
}

// ValidateUpdateRequest validates a partial command update, trimming the
// fields it will apply.
func ValidateUpdateRequest(req UpdateRequest) error {
	if req.ScopeID == nil && req.Label == nil && req.Command == nil && req.Description == nil {
		return fmt.Errorf("no fields to update: %w", domain.ErrValidation)
	}
	if req.Label != nil {
		*req.Label = strings.TrimSpace(*req.Label)
		if *req.Label == "" {
			return fmt.Errorf("label must not be empty: %w", domain.ErrValidation)
		}
	}
	if req.Command != nil {
		*req.Command = strings.TrimSpace(*req.Command)
		if *req.Command == "" {
			return fmt.Errorf("command must not be empty: %w", domain.ErrValidation)
		}
	}
	if req.Description != nil {
		*req.Description = strings.TrimSpace(*req.Description)
	}
	return nil
}
