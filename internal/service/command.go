package service

import (
	"context"

	"github.com/Strob0t/QAForge/internal/domain/command"
	"github.com/Strob0t/QAForge/internal/port/database"
)

// CommandService handles saved command business logic.
type CommandService struct {
	store database.Store
}

// NewCommandService creates a new CommandService.
func NewCommandService(store database.Store) *CommandService {
	return &CommandService{store: store}
}

// List returns saved commands, optionally filtered by scope.
func (s *CommandService) List(ctx context.Context, scopeID string) ([]command.Command, error) {
	return s.store.ListCommands(ctx, scopeID)
}

// Get returns a saved command by ID.
func (s *CommandService) Get(ctx context.Context, id string) (*command.Command, error) {
	return s.store.GetCommand(ctx, id)
}

// Create saves a new command after validating the request.
func (s *CommandService) Create(ctx context.Context, req *command.CreateRequest) (*command.Command, error) {
	if err := command.ValidateCreateRequest(req); err != nil {
		return nil, err
	}
	return s.store.CreateCommand(ctx, *req)
}

// Update applies partial updates to a saved command.
func (s *CommandService) Update(ctx context.Context, id string, req command.UpdateRequest) (*command.Command, error) {
	if err := command.ValidateUpdateRequest(req); err != nil {
		return nil, err
	}
	return s.store.UpdateCommand(ctx, id, req)
}

// Delete removes a saved command. History entries that reference it are
// detached, never deleted.
func (s *CommandService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteCommand(ctx, id)
}
