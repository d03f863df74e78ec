package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Strob0t/QAForge/internal/domain/history"
	"github.com/Strob0t/QAForge/internal/domain/project"
	"github.com/Strob0t/QAForge/internal/domain/scope"
	"github.com/Strob0t/QAForge/internal/domain/task"
)

// fakeCache is an in-memory cache.Cache that ignores TTLs.
type fakeCache struct {
	data map[string][]byte
	sets int
	hits int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := f.data[key]
	if ok {
		f.hits++
	}
	return v, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.data[key] = value
	f.sets++
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func seedDashboardStore(t *testing.T) *mockStore {
	t.Helper()
	store := &mockStore{}
	ctx := context.Background()

	p, _ := store.CreateProject(ctx, project.CreateRequest{Name: "Checkout"})
	for i := 0; i < 7; i++ {
		_, _ = store.CreateScope(ctx, scope.CreateRequest{ProjectID: p.ID, Title: "release"})
	}
	for _, st := range []task.Status{task.StatusTodo, task.StatusTodo, task.StatusInProgress, task.StatusDone} {
		_, _ = store.CreateTask(ctx, task.CreateRequest{ScopeID: "scope-2", Title: "t", Status: st, Priority: task.PriorityMedium})
	}
	for i := 0; i < 12; i++ {
		_, _ = store.RecordExecution(ctx, history.Record{CommandText: "make check"})
	}
	return store
}

func TestDashboardSummary(t *testing.T) {
	store := seedDashboardStore(t)
	svc := NewDashboardService(store, nil, 0)

	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Stats.Projects != 1 || sum.Stats.Scopes != 7 || sum.Stats.Tasks != 4 {
		t.Errorf("stats = %+v", sum.Stats)
	}
	if sum.Stats.Todo != 2 || sum.Stats.InProgress != 1 || sum.Stats.Done != 1 {
		t.Errorf("status breakdown = %+v", sum.Stats)
	}
	if len(sum.RecentScopes) != recentScopeLimit {
		t.Errorf("recent scopes = %d, want %d", len(sum.RecentScopes), recentScopeLimit)
	}
	if len(sum.RecentHistory) != recentHistoryLimit {
		t.Errorf("recent history = %d, want %d", len(sum.RecentHistory), recentHistoryLimit)
	}
}

func TestDashboardSummaryUsesCache(t *testing.T) {
	store := seedDashboardStore(t)
	c := newFakeCache()
	svc := NewDashboardService(store, c, 5*time.Second)

	first, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("first summary: %v", err)
	}
	if c.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", c.sets)
	}

	// Mutate the store; the cached payload should win.
	_, _ = store.CreateProject(context.Background(), project.CreateRequest{Name: "Another"})

	second, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("second summary: %v", err)
	}
	if c.hits == 0 {
		t.Error("expected a cache hit")
	}
	if second.Stats.Projects != first.Stats.Projects {
		t.Errorf("cached projects = %d, want %d", second.Stats.Projects, first.Stats.Projects)
	}
}

func TestDashboardSummaryStoreError(t *testing.T) {
	store := seedDashboardStore(t)
	store.statsErr = errors.New("db down")
	svc := NewDashboardService(store, nil, 0)

	if _, err := svc.Summary(context.Background()); err == nil {
		t.Fatal("expected error when stats query fails")
	}
}
