package service

import (
	"context"

	"github.com/Strob0t/QAForge/internal/domain/scope"
	"github.com/Strob0t/QAForge/internal/port/database"
)

// ScopeService handles QA scope business logic.
type ScopeService struct {
	store database.Store
}

// NewScopeService creates a new ScopeService.
func NewScopeService(store database.Store) *ScopeService {
	return &ScopeService{store: store}
}

// List returns scopes, optionally filtered by project.
func (s *ScopeService) List(ctx context.Context, projectID string) ([]scope.Scope, error) {
	return s.store.ListScopes(ctx, projectID)
}

// Get returns a scope by ID with its progress counts.
func (s *ScopeService) Get(ctx context.Context, id string) (*scope.Scope, error) {
	return s.store.GetScope(ctx, id)
}

// Create creates a new scope after validating the request.
func (s *ScopeService) Create(ctx context.Context, req *scope.CreateRequest) (*scope.Scope, error) {
	if err := scope.ValidateCreateRequest(req); err != nil {
		return nil, err
	}
	return s.store.CreateScope(ctx, *req)
}

// Update applies partial updates to a scope.
func (s *ScopeService) Update(ctx context.Context, id string, req scope.UpdateRequest) (*scope.Scope, error) {
	if err := scope.ValidateUpdateRequest(req); err != nil {
		return nil, err
	}
	return s.store.UpdateScope(ctx, id, req)
}

// Delete removes a scope together with its tasks and commands. History
// entries for cascaded commands survive with the reference cleared.
func (s *ScopeService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteScope(ctx, id)
}
