package remote

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/vitals/internal/constants"
	"github.com/julianstephens/vitals/internal/logger"
	"github.com/julianstephens/vitals/internal/models"
)

// Service wraps a Backend with the best-effort sync policy: pushes are
// fire-and-forget, every call is bounded by a timeout, and failures are
// logged and swallowed. A Service constructed without a backend (no stored
// credentials) silently no-ops.
//
// Callers needing durability must not rely on this path.
type Service struct {
	backend Backend
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewService creates a sync service. backend may be nil when no credentials
// are available; every operation then short-circuits.
func NewService(backend Backend) *Service {
	return &Service{
		backend: backend,
		timeout: constants.SyncCallTimeout,
	}
}

// Enabled reports whether a sync backend is configured
func (s *Service) Enabled() bool {
	return s.backend != nil
}

// Wait blocks until all in-flight pushes have finished. Used on shutdown
// and in tests.
func (s *Service) Wait() {
	s.wg.Wait()
}

// Close waits for in-flight pushes and releases the backend connection
func (s *Service) Close() error {
	s.wg.Wait()
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

func (s *Service) push(what string, fn func(ctx context.Context) error) {
	if s.backend == nil {
		logger.Debug("Sync skipped, no credentials configured", "what", what)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			logger.Warn("Best-effort sync failed", "what", what, "error", err)
		}
	}()
}

// PushGoals uploads the goal set without blocking the caller
func (s *Service) PushGoals(goals models.GoalSet) {
	s.push("goals", func(ctx context.Context) error {
		return s.backend.SaveUserGoals(ctx, goals)
	})
}

// PushStreaks uploads the streak set without blocking the caller
func (s *Service) PushStreaks(streaks models.StreakSet) {
	s.push("streaks", func(ctx context.Context) error {
		return s.backend.SaveStreaks(ctx, streaks)
	})
}

// PushDailyLog uploads a daily log entry without blocking the caller
func (s *Service) PushDailyLog(log models.DailyLog) {
	s.push("daily log", func(ctx context.Context) error {
		return s.backend.SaveDailyLog(ctx, log)
	})
}

// PullGoals fetches the remote goal set synchronously. Absence of a backend
// or any failure reports "not found" rather than an error to the caller.
func (s *Service) PullGoals(ctx context.Context) (models.GoalSet, bool) {
	if s.backend == nil {
		return models.GoalSet{}, false
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	goals, ok, err := s.backend.GetUserGoals(ctx)
	if err != nil {
		logger.Warn("Failed to pull goals from sync backend", "error", err)
		return models.GoalSet{}, false
	}
	return goals, ok
}

// PullStreaks fetches the remote streak set synchronously
func (s *Service) PullStreaks(ctx context.Context) (models.StreakSet, bool) {
	if s.backend == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	streaks, ok, err := s.backend.GetStreaks(ctx)
	if err != nil {
		logger.Warn("Failed to pull streaks from sync backend", "error", err)
		return nil, false
	}
	return streaks, ok
}

// PullDailyLogs fetches recent remote daily logs synchronously
func (s *Service) PullDailyLogs(ctx context.Context, days int) []models.DailyLog {
	if s.backend == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	logs, err := s.backend.GetDailyLogs(ctx, days)
	if err != nil {
		logger.Warn("Failed to pull daily logs from sync backend", "error", err)
		return nil
	}
	return logs
}
