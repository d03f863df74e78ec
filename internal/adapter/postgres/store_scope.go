package postgres

import (
	"context"
	"fmt"

	"github.com/Strob0t/QAForge/internal/domain/scope"
)

// --- Scopes ---

const scopeColumns = `s.id, s.project_id, p.name AS project_name, s.title, s.description, s.status,
	(SELECT COUNT(*) FROM tasks t WHERE t.scope_id = s.id) AS task_count,
	(SELECT COUNT(*) FROM tasks t WHERE t.scope_id = s.id AND t.status = 'done') AS done_count,
	(SELECT COUNT(*) FROM commands c WHERE c.scope_id = s.id) AS command_count,
	s.created_at, s.updated_at`

func scanScope(row scannable) (scope.Scope, error) {
	var sc scope.Scope
	err := row.Scan(&sc.ID, &sc.ProjectID, &sc.ProjectName, &sc.Title, &sc.Description, &sc.Status,
		&sc.TaskCount, &sc.DoneCount, &sc.CommandCount, &sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return scope.Scope{}, err
	}
	return sc, nil
}

func (s *Store) ListScopes(ctx context.Context, projectID string) ([]scope.Scope, error) {
	query := `SELECT ` + scopeColumns + `
		 FROM scopes s JOIN projects p ON s.project_id = p.id`
	args := []any{}
	if projectID != "" {
		query += ` WHERE s.project_id = $1`
		args = append(args, projectID)
	}
	query += ` ORDER BY s.updated_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scopes: %w", err)
	}
	defer rows.Close()

	var scopes []scope.Scope
	for rows.Next() {
		sc, err := scanScope(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scope: %w", err)
		}
		scopes = append(scopes, sc)
	}
	return scopes, rows.Err()
}

func (s *Store) GetScope(ctx context.Context, id string) (*scope.Scope, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+scopeColumns+`
		 FROM scopes s JOIN projects p ON s.project_id = p.id
		 WHERE s.id = $1`, id)

	sc, err := scanScope(row)
	if err != nil {
		return nil, notFoundWrap(err, "get scope %s", id)
	}
	return &sc, nil
}

func (s *Store) CreateScope(ctx context.Context, req scope.CreateRequest) (*scope.Scope, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO scopes (project_id, title, description)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		req.ProjectID, req.Title, req.Description,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create scope: %w", err)
	}
	return s.GetScope(ctx, id)
}

func (s *Store) UpdateScope(ctx context.Context, id string, req scope.UpdateRequest) (*scope.Scope, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Apply partial updates.
	if req.Title != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE scopes SET title = $1, updated_at = now() WHERE id = $2`, *req.Title, id)
		if err := execExpectOne(tag, err, "update scope %s", id); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE scopes SET description = $1, updated_at = now() WHERE id = $2`, *req.Description, id)
		if err := execExpectOne(tag, err, "update scope %s", id); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE scopes SET status = $1, updated_at = now() WHERE id = $2`, *req.Status, id)
		if err := execExpectOne(tag, err, "update scope %s", id); err != nil {
			return nil, err
		}
	}
	if req.ProjectID != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE scopes SET project_id = $1, updated_at = now() WHERE id = $2`, *req.ProjectID, id)
		if err := execExpectOne(tag, err, "update scope %s", id); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return s.GetScope(ctx, id)
}

func (s *Store) DeleteScope(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM scopes WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete scope %s", id)
}
