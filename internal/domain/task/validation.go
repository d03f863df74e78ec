package task

import (
	"fmt"
	"strings"

	"github.com/Strob0t/QAForge/internal/domain"
)

// ValidateCreateRequest validates a task creation request, trims
// free-text fields in place and fills in default status and priority.
func ValidateCreateRequest(req *CreateRequest) error {
	if req.ScopeID == "" {
		return fmt.Errorf("scope_id is required: %w", domain.ErrValidation)
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" {
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	if req.Status == "" {
		req.Status = StatusTodo
	}
	if !req.Status.Valid() {
		return fmt.Errorf("unknown status %q: %w", req.Status, domain.ErrValidation)
	}
	if req.Priority == "" {
		req.Priority = PriorityMedium
	}
	if !req.Priority.Valid() {
		return fmt.Errorf("unknown priority %q: %w", req.Priority, domain.ErrValidation)
	}
	return nil
}

// ValidateUpdateRequest validates a partial task update, trimming the
// fields it will apply.
func ValidateUpdateRequest(req UpdateRequest) error {
	if req.Title == nil && req.Description == nil && req.Status == nil &&
		req.Priority == nil && req.SortOrder == nil {
		return fmt.Errorf("no fields to update: %w", domain.ErrValidation)
	}
	if req.Title != nil {
		*req.Title = strings.TrimSpace(*req.Title)
		if *req.Title == "" {
			return fmt.Errorf("title must not be empty: %w", domain.ErrValidation)
		}
	}
	if req.Description != nil {
		*req.Description = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("unknown status %q: %w", *req.Status, domain.ErrValidation)
	}
	if req.Priority != nil && !req.Priority.Valid() {
		return fmt.Errorf("unknown priority %q: %w", *req.Priority, domain.ErrValidation)
	}
	return nil
}

// ValidateMoveRequest validates a board move request.
func ValidateMoveRequest(req MoveRequest) error {
	if req.Status == nil && req.SortOrder == nil {
		return fmt.Errorf("status or sort_order is required: %w", domain.ErrValidation)
	}
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("unknown status %q: %w", *req.Status, domain.ErrValidation)
	}
	return nil
}
