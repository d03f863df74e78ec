package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Strob0t/QAForge/internal/domain/dashboard"
	"github.com/Strob0t/QAForge/internal/port/cache"
	"github.com/Strob0t/QAForge/internal/port/database"
)

const (
	dashboardCacheKey  = "dashboard:summary"
	recentScopeLimit   = 5
	recentHistoryLimit = 10
)

// DashboardService aggregates counts and recent activity for the
// overview screen. Results are cached briefly; the dashboard tolerates
// slightly stale numbers.
type DashboardService struct {
	store database.Store
	cache cache.Cache
	ttl   time.Duration
}

// NewDashboardService creates a new DashboardService. c may be nil to
// disable caching.
func NewDashboardService(store database.Store, c cache.Cache, ttl time.Duration) *DashboardService {
	return &DashboardService{store: store, cache: c, ttl: ttl}
}

// Summary returns the dashboard payload, from cache when fresh.
func (s *DashboardService) Summary(ctx context.Context) (*dashboard.Summary, error) {
	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, dashboardCacheKey); err == nil && ok {
			var cached dashboard.Summary
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var sum dashboard.Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.store.DashboardStats(gctx)
		if err != nil {
			return err
		}
		sum.Stats = *stats
		return nil
	})
	g.Go(func() error {
		scopes, err := s.store.RecentScopes(gctx, recentScopeLimit)
		if err != nil {
			return err
		}
		sum.RecentScopes = scopes
		return nil
	})
	g.Go(func() error {
		entries, err := s.store.ListHistory(gctx, "", recentHistoryLimit)
		if err != nil {
			return err
		}
		sum.RecentHistory = entries
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(&sum); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, data, s.ttl); err != nil {
				slog.Debug("dashboard cache set failed", "error", err)
			}
		}
	}

	return &sum, nil
}
