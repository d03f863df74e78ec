// Package database defines the database store port (interface).
package database

import (
	"context"

	"github.com/Strob0t/QAForge/internal/domain/command"
	"github.com/Strob0t/QAForge/internal/domain/dashboard"
	"github.com/Strob0t/QAForge/internal/domain/history"
	"github.com/Strob0t/QAForge/internal/domain/project"
	"github.com/Strob0t/QAForge/internal/domain/scope"
	"github.com/Strob0t/QAForge/internal/domain/task"
)

// Store is the port interface for database operations.
type Store interface {
	// Projects
	ListProjects(ctx context.Context) ([]project.Project, error)
	GetProject(ctx context.Context, id string) (*project.Project, error)
	CreateProject(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	UpdateProject(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error)
	DeleteProject(ctx context.Context, id string) error

	// Scopes. ListScopes with an empty projectID returns all scopes.
	ListScopes(ctx context.Context, projectID string) ([]scope.Scope, error)
	GetScope(ctx context.Context, id string) (*scope.Scope, error)
	CreateScope(ctx context.Context, req scope.CreateRequest) (*scope.Scope, error)
	UpdateScope(ctx context.Context, id string, req scope.UpdateRequest) (*scope.Scope, error)
	DeleteScope(ctx context.Context, id string) error

	// Tasks. ListTasks with an empty scopeID returns all tasks.
	// CreateTask assigns the next sort_order within the scope.
	ListTasks(ctx context.Context, scopeID string) ([]task.Task, error)
	GetTask(ctx context.Context, id string) (*task.Task, error)
	CreateTask(ctx context.Context, req task.CreateRequest) (*task.Task, error)
	UpdateTask(ctx context.Context, id string, req task.UpdateRequest) (*task.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Commands. ListCommands with an empty scopeID returns all commands.
	ListCommands(ctx context.Context, scopeID string) ([]command.Command, error)
	GetCommand(ctx context.Context, id string) (*command.Command, error)
	CreateCommand(ctx context.Context, req command.CreateRequest) (*command.Command, error)
	UpdateCommand(ctx context.Context, id string, req command.UpdateRequest) (*command.Command, error)
	DeleteCommand(ctx context.Context, id string) error

	// History is append-only. ListHistory with an empty commandID
	// returns entries for all commands, newest first.
	RecordExecution(ctx context.Context, rec history.Record) (*history.Entry, error)
	ListHistory(ctx context.Context, commandID string, limit int) ([]history.Entry, error)

	// Dashboard aggregates, derived on read.
	DashboardStats(ctx context.Context) (*dashboard.Stats, error)
	RecentScopes(ctx context.Context, limit int) ([]scope.Scope, error)
}
