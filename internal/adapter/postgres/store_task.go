package postgres

import (
	"context"
	"fmt"

	"github.com/Strob0t/QAForge/internal/domain/task"
)

// --- Tasks ---

const taskColumns = `id, scope_id, title, description, status, priority, sort_order, created_at, updated_at`

func scanTask(row scannable) (task.Task, error) {
	var t task.Task
	err := row.Scan(&t.ID, &t.ScopeID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.SortOrder, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, scopeID string) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	args := []any{}
	if scopeID != "" {
		query += ` WHERE scope_id = $1`
		args = append(args, scopeID)
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) GetTask(ctx context.Context, id string) (*task.Task, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)

	t, err := scanTask(row)
	if err != nil {
		return nil, notFoundWrap(err, "get task %s", id)
	}
	return &t, nil
}

// CreateTask inserts a task at the end of its scope's ordering. The
// per-scope advisory lock serializes concurrent creates so two tasks
// never receive the same sort_order.
func (s *Store) CreateTask(ctx context.Context, req task.CreateRequest) (*task.Task, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`, req.ScopeID); err != nil {
		return nil, fmt.Errorf("lock scope %s: %w", req.ScopeID, err)
	}

	row := tx.QueryRow(ctx,
		`INSERT INTO tasks (scope_id, title, description, status, priority, sort_order)
		 VALUES ($1, $2, $3, $4, $5,
		         (SELECT COALESCE(MAX(sort_order), -1) + 1 FROM tasks WHERE scope_id = $1))
		 RETURNING `+taskColumns,
		req.ScopeID, req.Title, req.Description, req.Status, req.Priority)

	t, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return &t, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, req task.UpdateRequest) (*task.Task, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Apply partial updates.
	if req.Title != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE tasks SET title = $1, updated_at = now() WHERE id = $2`, *req.Title, id)
		if err := execExpectOne(tag, err, "update task %s", id); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE tasks SET description = $1, updated_at = now() WHERE id = $2`, *req.Description, id)
		if err := execExpectOne(tag, err, "update task %s", id); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE tasks SET status = $1, updated_at = now() WHERE id = $2`, *req.Status, id)
		if err := execExpectOne(tag, err, "update task %s", id); err != nil {
			return nil, err
		}
	}
	if req.Priority != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE tasks SET priority = $1, updated_at = now() WHERE id = $2`, *req.Priority, id)
		if err := execExpectOne(tag, err, "update task %s", id); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE tasks SET sort_order = $1, updated_at = now() WHERE id = $2`, *req.SortOrder, id)
		if err := execExpectOne(tag, err, "update task %s", id); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return s.GetTask(ctx, id)
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete task %s", id)
}
