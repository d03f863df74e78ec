package postgres

import (
	"context"
	"fmt"

	"github.com/Strob0t/QAForge/internal/domain/dashboard"
	"github.com/Strob0t/QAForge/internal/domain/scope"
)

// --- Dashboard ---

// DashboardStats counts entities and task statuses in a single round trip.
func (s *Store) DashboardStats(ctx context.Context) (*dashboard.Stats, error) {
	var st dashboard.Stats
	err := s.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM projects),
			(SELECT COUNT(*) FROM scopes),
			(SELECT COUNT(*) FROM tasks),
			(SELECT COUNT(*) FROM tasks WHERE status = 'todo'),
			(SELECT COUNT(*) FROM tasks WHERE status = 'in_progress'),
			(SELECT COUNT(*) FROM tasks WHERE status = 'testing'),
			(SELECT COUNT(*) FROM tasks WHERE status = 'done'),
			(SELECT COUNT(*) FROM commands)`,
	).Scan(&st.Projects, &st.Scopes, &st.Tasks, &st.Todo, &st.InProgress, &st.Testing, &st.Done, &st.Commands)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &st, nil
}

// RecentScopes returns the most recently touched scopes with progress counts.
func (s *Store) RecentScopes(ctx context.Context, limit int) ([]scope.Scope, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+scopeColumns+`
		 FROM scopes s JOIN projects p ON s.project_id = p.id
		 ORDER BY s.updated_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent scopes: %w", err)
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
