package project

import (
	"fmt"
	"strings"

	"github.com/Strob0t/QAForge/internal/domain"
)

const maxNameLen = 255

// ValidateCreateRequest validates a project creation request. Free-text
// fields are trimmed in place before they reach the store.
func ValidateCreateRequest(req *CreateRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	return validateName(req.Name)
}

// ValidateUpdateRequest validates a partial project update, trimming the
// fields it will apply.
func ValidateUpdateRequest(req UpdateRequest) error {
	if req.Name == nil && req.Description == nil {
		return fmt.Errorf("no fields to update: %w", domain.ErrValidation)
	}
	if req.Name != nil {
		*req.Name = strings.TrimSpace(*req.Name)
		if err := validateName(*req.Name); err != nil {
			return err
		}
	}
	if req.Description != nil {
		*req.Description = strings.TrimSpace(*req.Description)
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required: %w", domain.ErrValidation)
	}
	if len(name) > maxNameLen {
		return fmt.Errorf("name exceeds %d characters: %w", maxNameLen, domain.ErrValidation)
	}
	return nil
}
