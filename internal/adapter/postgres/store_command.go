package postgres

import (
	"context"
	"fmt"

	"github.com/Strob0t/QAForge/internal/domain/command"
	"github.com/Strob0t/QAForge/internal/domain/history"
)

// --- Commands ---

const commandColumns = `c.id, c.scope_id, COALESCE(s.title, '') AS scope_title,
	c.label, c.command, c.description, c.created_at`

func scanCommand(row scannable) (command.Command, error) {
	var c command.Command
	err := row.Scan(&c.ID, &c.ScopeID, &c.ScopeTitle, &c.Label, &c.Command, &c.Description, &c.CreatedAt)
	if err != nil {
		return command.Command{}, err
	}
	return c, nil
}

func (s *Store) ListCommands(ctx context.Context, scopeID string) ([]command.Command, error) {
	query := `SELECT ` + commandColumns + `
		 FROM commands c LEFT JOIN scopes s ON c.scope_id = s.id`
	args := []any{}
	if scopeID != "" {
		query += ` WHERE c.scope_id = $1`
		args = append(args, scopeID)
	}
	query += ` ORDER BY c.created_at DESC`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	defer rows.Close()

	var commands []command.Command
	for rows.Next() {
		c, err := scanCommand(rows)
		if err != nil {
			return nil, fmt.Errorf("scan command: %w", err)
		}
		commands = append(commands, c)
	}
	return commands, rows.Err()
}

func (s *Store) GetCommand(ctx context.Context, id string) (*command.Command, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+commandColumns+`
		 FROM commands c LEFT JOIN scopes s ON c.scope_id = s.id
		 WHERE c.id = $1`, id)

	c, err := scanCommand(row)
	if err != nil {
		return nil, notFoundWrap(err, "get command %s", id)
	}
	return &c, nil
}

func (s *Store) CreateCommand(ctx context.Context, req command.CreateRequest) (*command.Command, error) {
	var scopeID *string
	if req.ScopeID != nil {
		scopeID = nullIfEmpty(*req.ScopeID)
	}

	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO commands (scope_id, label, command, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		scopeID, req.Label, req.Command, req.Description,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create command: %w", err)
	}
	return s.GetCommand(ctx, id)
}

func (s *Store) UpdateCommand(ctx context.Context, id string, req command.UpdateRequest) (*command.Command, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Apply partial updates. An empty scope_id detaches the command.
	if req.ScopeID != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE commands SET scope_id = $1 WHERE id = $2`, nullIfEmpty(*req.ScopeID), id)
		if err := execExpectOne(tag, err, "update command %s", id); err != nil {
			return nil, err
		}
	}
	if req.Label != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE commands SET label = $1 WHERE id = $2`, *req.Label, id)
		if err := execExpectOne(tag, err, "update command %s", id); err != nil {
			return nil, err
		}
	}
	if req.Command != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE commands SET command = $1 WHERE id = $2`, *req.Command, id)
		if err := execExpectOne(tag, err, "update command %s", id); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		tag, err := tx.Exec(ctx,
			`UPDATE commands SET description = $1 WHERE id = $2`, *req.Description, id)
		if err := execExpectOne(tag, err, "update command %s", id); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return s.GetCommand(ctx, id)
}

func (s *Store) DeleteCommand(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM commands WHERE id = $1`, id)
	return execExpectOne(tag, err, "delete command %s", id)
}

// --- History ---

// RecordExecution appends one immutable audit entry. Entries are never
// updated or deleted; deleting the referenced command only nulls the link.
func (s *Store) RecordExecution(ctx context.Context, rec history.Record) (*history.Entry, error) {
	var e history.Entry
	err := s.pool.QueryRow(ctx,
		`INSERT INTO command_history (command_id, command_text, output, exit_code)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, command_id, command_text, output, exit_code, executed_at`,
		rec.CommandID, rec.CommandText, rec.Output, rec.ExitCode,
	).Scan(&e.ID, &e.CommandID, &e.CommandText, &e.Output, &e.ExitCode, &e.ExecutedAt)
	if err != nil {
		return nil, fmt.Errorf("record execution: %w", err)
	}
	return &e, nil
}

func (s *Store) ListHistory(ctx context.Context, commandID string, limit int) ([]history.Entry, error) {
	query := `SELECT id, command_id, command_text, output, exit_code, executed_at
		 FROM command_history`
	args := []any{}
	if commandID != "" {
		query += ` WHERE command_id = $1`
		args = append(args, commandID)
	}
	query += fmt.Sprintf(` ORDER BY executed_at DESC, id DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		var e history.Entry
		if err := rows.Scan(&e.ID, &e.CommandID, &e.CommandText, &e.Output, &e.ExitCode, &e.ExecutedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
