package scope

import (
	"fmt"
	"strings"

	"github.com/Strob0t/QAForge/internal/domain"
)

// ValidateCreateRequest validates a scope creation request. Free-text
// fields are trimmed in place before they reach the store.
func ValidateCreateRequest(req *CreateRequest) error {
	if req.ProjectID == "" {
		return fmt.Errorf("project_id is required: %w", domain.ErrValidation)
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if req.Title == "" {
		return fmt.Errorf("title is required: %w", domain.ErrValidation)
	}
	return nil
}

// ValidateUpdateRequest validates a partial scope update, trimming the
// fields it will apply.
func ValidateUpdateRequest(req UpdateRequest) error {
	if req.Title == nil && req.Description == nil && req.Status == nil && req.ProjectID == nil {
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
	if req.ProjectID != nil && *req.ProjectID == "" {
		return fmt.Errorf("project_id must not be empty: %w", domain.ErrValidation)
	}
	return nil
}
