package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Strob0t/QAForge/internal/domain"
	"github.com/Strob0t/QAForge/internal/domain/command"
	"github.com/Strob0t/QAForge/internal/domain/dashboard"
	"github.com/Strob0t/QAForge/internal/domain/history"
	"github.com/Strob0t/QAForge/internal/domain/project"
	"github.com/Strob0t/QAForge/internal/domain/scope"
	"github.com/Strob0t/QAForge/internal/domain/task"
	"github.com/Strob0t/QAForge/internal/port/database"
)

// Ensure mockStore implements database.Store at compile time.
var _ database.Store = (*mockStore)(nil)

// mockStore is a minimal in-memory implementation of database.Store for testing.
type mockStore struct {
	projects []project.Project
	scopes   []scope.Scope
	tasks    []task.Task
	commands []command.Command
	history  []history.Entry
	seq      int

	// Error hooks — set these to inject failures.
	recordExecutionErr error
	statsErr           error
}

func (m *mockStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *mockStore) ListProjects(_ context.Context) ([]project.Project, error) {
	return m.projects, nil
}

func (m *mockStore) GetProject(_ context.Context, id string) (*project.Project, error) {
	for i := range m.projects {
		if m.projects[i].ID == id {
			return &m.projects[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateProject(_ context.Context, req project.CreateRequest) (*project.Project, error) {
	p := project.Project{ID: m.nextID("proj"), Name: req.Name, Description: req.Description}
	m.projects = append(m.projects, p)
	return &p, nil
}

func (m *mockStore) UpdateProject(_ context.Context, id string, req project.UpdateRequest) (*project.Project, error) {
	for i := range m.projects {
		if m.projects[i].ID == id {
			if req.Name != nil {
				m.projects[i].Name = *req.Name
			}
			if req.Description != nil {
				m.projects[i].Description = *req.Description
			}
			return &m.projects[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) DeleteProject(_ context.Context, id string) error {
	for i := range m.projects {
		if m.projects[i].ID == id {
			m.projects = append(m.projects[:i], m.projects[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) ListScopes(_ context.Context, projectID string) ([]scope.Scope, error) {
	if projectID == "" {
		return m.scopes, nil
	}
	var out []scope.Scope
	for i := range m.scopes {
		if m.scopes[i].ProjectID == projectID {
			out = append(out, m.scopes[i])
		}
	}
	return out, nil
}

func (m *mockStore) GetScope(_ context.Context, id string) (*scope.Scope, error) {
	for i := range m.scopes {
		if m.scopes[i].ID == id {
			return &m.scopes[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateScope(_ context.Context, req scope.CreateRequest) (*scope.Scope, error) {
	sc := scope.Scope{
		ID: m.nextID("scope"), ProjectID: req.ProjectID,
		Title: req.Title, Description: req.Description, Status: scope.StatusPending,
	}
	m.scopes = append(m.scopes, sc)
	return &sc, nil
}

func (m *mockStore) UpdateScope(_ context.Context, id string, req scope.UpdateRequest) (*scope.Scope, error) {
	for i := range m.scopes {
		if m.scopes[i].ID == id {
			if req.Title != nil {
				m.scopes[i].Title = *req.Title
			}
			if req.Description != nil {
				m.scopes[i].Description = *req.Description
			}
			if req.Status != nil {
				m.scopes[i].Status = *req.Status
			}
			if req.ProjectID != nil {
				m.scopes[i].ProjectID = *req.ProjectID
			}
			return &m.scopes[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) DeleteScope(_ context.Context, id string) error {
	for i := range m.scopes {
		if m.scopes[i].ID == id {
			m.scopes = append(m.scopes[:i], m.scopes[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) ListTasks(_ context.Context, scopeID string) ([]task.Task, error) {
	if scopeID == "" {
		return m.tasks, nil
	}
	var out []task.Task
	for i := range m.tasks {
		if m.tasks[i].ScopeID == scopeID {
			out = append(out, m.tasks[i])
		}
	}
	return out, nil
}

func (m *mockStore) GetTask(_ context.Context, id string) (*task.Task, error) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return &m.tasks[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateTask(_ context.Context, req task.CreateRequest) (*task.Task, error) {
	next := 0
	for i := range m.tasks {
		if m.tasks[i].ScopeID == req.ScopeID && m.tasks[i].SortOrder >= next {
			next = m.tasks[i].SortOrder + 1
		}
	}
	t := task.Task{
		ID: m.nextID("task"), ScopeID: req.ScopeID, Title: req.Title,
		Description: req.Description, Status: req.Status, Priority: req.Priority,
		SortOrder: next,
	}
	m.tasks = append(m.tasks, t)
	return &t, nil
}

func (m *mockStore) UpdateTask(_ context.Context, id string, req task.UpdateRequest) (*task.Task, error) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			if req.Title != nil {
				m.tasks[i].Title = *req.Title
			}
			if req.Description != nil {
				m.tasks[i].Description = *req.Description
			}
			if req.Status != nil {
				m.tasks[i].Status = *req.Status
			}
			if req.Priority != nil {
				m.tasks[i].Priority = *req.Priority
			}
			if req.SortOrder != nil {
				m.tasks[i].SortOrder = *req.SortOrder
			}
			return &m.tasks[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) DeleteTask(_ context.Context, id string) error {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) ListCommands(_ context.Context, scopeID string) ([]command.Command, error) {
	if scopeID == "" {
		return m.commands, nil
	}
	var out []command.Command
	for i := range m.commands {
		if m.commands[i].ScopeID != nil && *m.commands[i].ScopeID == scopeID {
			out = append(out, m.commands[i])
		}
	}
	return out, nil
}

func (m *mockStore) GetCommand(_ context.Context, id string) (*command.Command, error) {
	for i := range m.commands {
		if m.commands[i].ID == id {
			return &m.commands[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) CreateCommand(_ context.Context, req command.CreateRequest) (*command.Command, error) {
	c := command.Command{
		ID: m.nextID("cmd"), ScopeID: req.ScopeID,
		Label: req.Label, Command: req.Command, Description: req.Description,
	}
	m.commands = append(m.commands, c)
	return &c, nil
}

func (m *mockStore) UpdateCommand(_ context.Context, id string, req command.UpdateRequest) (*command.Command, error) {
	for i := range m.commands {
		if m.commands[i].ID == id {
			if req.ScopeID != nil {
				if *req.ScopeID == "" {
					m.commands[i].ScopeID = nil
				} else {
					m.commands[i].ScopeID = req.ScopeID
				}
			}
			if req.Label != nil {
				m.commands[i].Label = *req.Label
			}
			if req.Command != nil {
				m.commands[i].Command = *req.Command
			}
			if req.Description != nil {
				m.commands[i].Description = *req.Description
			}
			return &m.commands[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockStore) DeleteCommand(_ context.Context, id string) error {
	for i := range m.commands {
		if m.commands[i].ID == id {
			m.commands = append(m.commands[:i], m.commands[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockStore) RecordExecution(_ context.Context, rec history.Record) (*history.Entry, error) {
	if m.recordExecutionErr != nil {
		return nil, m.recordExecutionErr
	}
	e := history.Entry{
		ID: m.nextID("hist"), CommandID: rec.CommandID,
		CommandText: rec.CommandText, Output: rec.Output, ExitCode: rec.ExitCode,
	}
	m.history = append(m.history, e)
	return &e, nil
}

func (m *mockStore) ListHistory(_ context.Context, commandID string, limit int) ([]history.Entry, error) {
	var out []history.Entry
	for i := len(m.history) - 1; i >= 0; i-- {
		e := m.history[i]
		if commandID != "" && (e.CommandID == nil || *e.CommandID != commandID) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockStore) DashboardStats(_ context.Context) (*dashboard.Stats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	st := dashboard.Stats{
		Projects: len(m.projects),
		Scopes:   len(m.scopes),
		Tasks:    len(m.tasks),
		Commands: len(m.commands),
	}
	for i := range m.tasks {
		switch m.tasks[i].Status {
		case task.StatusTodo:
			st.Todo++
		case task.StatusInProgress:
			st.InProgress++
		case task.StatusTesting:
			st.Testing++
		case task.StatusDone:
			st.Done++
		}
	}
	return &st, nil
}

func (m *mockStore) RecentScopes(_ context.Context, limit int) ([]scope.Scope, error) {
	if limit > len(m.scopes) {
		limit = len(m.scopes)
	}
	return m.scopes[:limit], nil
}

// --- ProjectService ---

func TestProjectCreateValidates(t *testing.T) {
	svc := NewProjectService(&mockStore{})

	_, err := svc.Create(context.Background(), &project.CreateRequest{Name: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}

	p, err := svc.Create(context.Background(), &project.CreateRequest{Name: "Mobile App"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Mobile App" {
		t.Errorf("name = %q, want %q", p.Name, "Mobile App")
	}
}

func TestProjectCreateTrimsFields(t *testing.T) {
	svc := NewProjectService(&mockStore{})

	p, err := svc.Create(context.Background(), &project.CreateRequest{
		Name:        "  Mobile App  ",
		Description: "\tregression suite\n",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Mobile App" {
		t.Errorf("name persisted as %q, want trimmed", p.Name)
	}
	if p.Description != "regression suite" {
		t.Errorf("description persisted as %q, want trimmed", p.Description)
	}
}

func TestProjectUpdateTrimsFields(t *testing.T) {
	store := &mockStore{}
	svc := NewProjectService(store)
	p, _ := svc.Create(context.Background(), &project.CreateRequest{Name: "API"})

	name := "  Renamed  "
	got, err := svc.Update(context.Background(), p.ID, project.UpdateRequest{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("name persisted as %q, want trimmed", got.Name)
	}
}

func TestProjectUpdateRequiresFields(t *testing.T) {
	store := &mockStore{}
	svc := NewProjectService(store)
	p, _ := svc.Create(context.Background(), &project.CreateRequest{Name: "API"})

	_, err := svc.Update(context.Background(), p.ID, project.UpdateRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty update err = %v, want ErrValidation", err)
	}

	desc := "backend regression"
	got, err := svc.Update(context.Background(), p.ID, project.UpdateRequest{Description: &desc})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "API" || got.Description != desc {
		t.Errorf("partial update changed the wrong fields: %+v", got)
	}
}

func TestProjectDeleteNotFound(t *testing.T) {
	svc := NewProjectService(&mockStore{})
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
