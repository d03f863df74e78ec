package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Strob0t/QAForge/internal/adapter/postgres"
	"github.com/Strob0t/QAForge/internal/domain"
	"github.com/Strob0t/QAForge/internal/domain/command"
	"github.com/Strob0t/QAForge/internal/domain/history"
	"github.com/Strob0t/QAForge/internal/domain/project"
	"github.com/Strob0t/QAForge/internal/domain/scope"
	"github.com/Strob0t/QAForge/internal/domain/task"
)

// setupStore creates a pgxpool connection, runs all migrations, and returns a
// ready-to-use Store. The pool is closed via t.Cleanup.
func setupStore(t *testing.T) *postgres.Store {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("requires DATABASE_URL")
	}

	ctx := context.Background()

	if err := postgres.RunMigrations(ctx, dsn); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return postgres.NewStore(pool)
}

// createFixtures creates a project with one scope and returns both.
func createFixtures(t *testing.T, store *postgres.Store) (*project.Project, *scope.Scope) {
	t.Helper()
	ctx := context.Background()

	p, err := store.CreateProject(ctx, project.CreateRequest{Name: "Checkout Regression"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	t.Cleanup(func() { _ = store.DeleteProject(ctx, p.ID) })

	sc, err := store.CreateScope(ctx, scope.CreateRequest{ProjectID: p.ID, Title: "Payment flow"})
	if err != nil {
		t.Fatalf("create scope: %v", err)
	}
	return p, sc
}

func TestCreateTaskAssignsSequentialSortOrder(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	_, sc := createFixtures(t, store)

	for i, title := range []string{"first", "second", "third"} {
		tk, err := store.CreateTask(ctx, task.CreateRequest{
			ScopeID: sc.ID, Title: title, Status: task.StatusTodo, Priority: task.PriorityMedium,
		})
		if err != nil {
			t.Fatalf("create task %q: %v", title, err)
		}
		if tk.SortOrder != i {
			t.Errorf("task %q sort_order = %d, want %d", title, tk.SortOrder, i)
		}
	}

	tasks, err := store.ListTasks(ctx, sc.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	for i := 1; i < len(tasks); i++ {
		if tasks[i].SortOrder < tasks[i-1].SortOrder {
			t.Errorf("tasks not ordered by sort_order: %d before %d", tasks[i-1].SortOrder, tasks[i].SortOrder)
		}
	}
}

func TestCreateTaskConcurrentSortOrder(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	_, sc := createFixtures(t, store)

	const n = 16
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.CreateTask(ctx, task.CreateRequest{
				ScopeID: sc.ID, Title: fmt.Sprintf("concurrent %d", i),
				Status: task.StatusTodo, Priority: task.PriorityMedium,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent create: %v", err)
		}
	}

	tasks, err := store.ListTasks(ctx, sc.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != n {
		t.Fatalf("tasks = %d, want %d", len(tasks), n)
	}
	// The advisory lock serializes allocation: exactly 0..n-1, no gaps,
	// no duplicates.
	seen := make(map[int]bool, n)
	for i := range tasks {
		if seen[tasks[i].SortOrder] {
			t.Errorf("duplicate sort_order %d", tasks[i].SortOrder)
		}
		seen[tasks[i].SortOrder] = true
	}
	for i := 0; i < n; i++ {
		if !seen[i] {
			t.Errorf("missing sort_order %d", i)
		}
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	p, sc := createFixtures(t, store)

	tk, err := store.CreateTask(ctx, task.CreateRequest{
		ScopeID: sc.ID, Title: "verify totals", Status: task.StatusTodo, Priority: task.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	cmd, err := store.CreateCommand(ctx, command.CreateRequest{
		ScopeID: &sc.ID, Label: "smoke", Command: "echo ok",
	})
	if err != nil {
		t.Fatalf("create command: %v", err)
	}

	if err := store.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	if _, err := store.GetScope(ctx, sc.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("scope survived project delete: %v", err)
	}
	if _, err := store.GetTask(ctx, tk.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("task survived project delete: %v", err)
	}
	if _, err := store.GetCommand(ctx, cmd.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("command survived project delete: %v", err)
	}
}

func TestDeleteScopeCascadesCommands(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	_, sc := createFixtures(t, store)

	cmd, err := store.CreateCommand(ctx, command.CreateRequest{
		ScopeID: &sc.ID, Label: "smoke", Command: "echo ok",
	})
	if err != nil {
		t.Fatalf("create command: %v", err)
	}

	entry, err := store.RecordExecution(ctx, history.Record{
		CommandID: &cmd.ID, CommandText: "echo ok", Output: "ok", ExitCode: 0,
	})
	if err != nil {
		t.Fatalf("record execution: %v", err)
	}

	if err := store.DeleteScope(ctx, sc.ID); err != nil {
		t.Fatalf("delete scope: %v", err)
	}

	if _, err := store.GetCommand(ctx, cmd.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("command survived scope delete: %v", err)
	}

	// The audit trail outlives the cascaded command.
	entries, err := store.ListHistory(ctx, "", 100)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	found := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			found = true
			if entries[i].CommandID != nil {
				t.Errorf("history command_id = %v, want nil after cascade", *entries[i].CommandID)
			}
		}
	}
	if !found {
		t.Error("history entry missing after scope delete")
	}
}

func TestDeleteCommandKeepsHistory(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	cmd, err := store.CreateCommand(ctx, command.CreateRequest{Label: "lint", Command: "true"})
	if err != nil {
		t.Fatalf("create command: %v", err)
	}

	entry, err := store.RecordExecution(ctx, history.Record{
		CommandID: &cmd.ID, CommandText: "true", Output: "", ExitCode: 0,
	})
	if err != nil {
		t.Fatalf("record execution: %v", err)
	}

	if err := store.DeleteCommand(ctx, cmd.ID); err != nil {
		t.Fatalf("delete command: %v", err)
	}

	entries, err := store.ListHistory(ctx, "", 100)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	found := false
	for i := range entries {
		if entries[i].ID == entry.ID {
			found = true
			if entries[i].CommandID != nil {
				t.Errorf("history command_id = %v, want nil after command delete", *entries[i].CommandID)
			}
		}
	}
	if !found {
		t.Error("history entry missing after command delete")
	}
}

func TestDeleteIsIdempotentNotFound(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	p, _ := createFixtures(t, store)

	if err := store.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.DeleteProject(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestUpdateProjectPartial(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	p, _ := createFixtures(t, store)

	desc := "regression pass for 2.4 release"
	got, err := store.UpdateProject(ctx, p.ID, project.UpdateRequest{Description: &desc})
	if err != nil {
		t.Fatalf("update project: %v", err)
	}
	if got.Name != p.Name {
		t.Errorf("name changed on partial update: %q -> %q", p.Name, got.Name)
	}
	if got.Description != desc {
		t.Errorf("description = %q, want %q", got.Description, desc)
	}
}
