package service

import (
	"context"

	"github.com/Strob0t/QAForge/internal/adapter/ws"
	"github.com/Strob0t/QAForge/internal/domain/task"
	"github.com/Strob0t/QAForge/internal/port/database"
)

// Broadcaster pushes events to connected clients. *ws.Hub implements it;
// tests substitute a recorder.
type Broadcaster interface {
	BroadcastEvent(ctx context.Context, eventType string, payload any)
}

// WorkflowService drives tasks through the board: create, partial
// update, board moves, done toggling and deletion.
type WorkflowService struct {
	store database.Store
	hub   Broadcaster
}

// NewWorkflowService creates a new WorkflowService. hub may be nil.
func NewWorkflowService(store database.Store, hub Broadcaster) *WorkflowService {
	return &WorkflowService{store: store, hub: hub}
}

// List returns tasks ordered for board rendering, optionally filtered
// by scope.
func (s *WorkflowService) List(ctx context.Context, scopeID string) ([]task.Task, error) {
	return s.store.ListTasks(ctx, scopeID)
}

// Get returns a task by ID.
func (s *WorkflowService) Get(ctx context.Context, id string) (*task.Task, error) {
	return s.store.GetTask(ctx, id)
}

// Create validates the request and inserts the task at the end of its
// scope's ordering.
func (s *WorkflowService) Create(ctx context.Context, req *task.CreateRequest) (*task.Task, error) {
	if err := task.ValidateCreateRequest(req); err != nil {
		return nil, err
	}
	return s.store.CreateTask(ctx, *req)
}

// Update applies partial updates to a task.
func (s *WorkflowService) Update(ctx context.Context, id string, req task.UpdateRequest) (*task.Task, error) {
	if err := task.ValidateUpdateRequest(req); err != nil {
		return nil, err
	}
	return s.store.UpdateTask(ctx, id, req)
}

// Move repositions a task on the board. Any status can move to any
// other status; the board, not the engine, decides what is sensible.
func (s *WorkflowService) Move(ctx context.Context, id string, req task.MoveRequest) (*task.Task, error) {
	if err := task.ValidateMoveRequest(req); err != nil {
		return nil, err
	}

	t, err := s.store.UpdateTask(ctx, id, task.UpdateRequest{
		Status:    req.Status,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return nil, err
	}

	s.broadcastMoved(ctx, t)
	return t, nil
}

// Toggle flips a task between done and todo: done goes back to todo,
// everything else jumps straight to done.
func (s *WorkflowService) Toggle(ctx context.Context, id string) (*task.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	next := task.StatusDone
	if t.Status == task.StatusDone {
		next = task.StatusTodo
	}

	updated, err := s.store.UpdateTask(ctx, id, task.UpdateRequest{Status: &next})
	if err != nil {
		return nil, err
	}

	s.broadcastMoved(ctx, updated)
	return updated, nil
}

// Delete removes a task.
func (s *WorkflowService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteTask(ctx, id)
}

func (s *WorkflowService) broadcastMoved(ctx context.Context, t *task.Task) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastEvent(ctx, ws.EventTaskMoved, ws.TaskMovedEvent{
		TaskID:    t.ID,
		ScopeID:   t.ScopeID,
		Status:    string(t.Status),
		SortOrder: t.SortOrder,
	})
}
