package metrics

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/julianstephens/vitals/internal/constants"
	"github.com/julianstephens/vitals/internal/goals"
	"github.com/julianstephens/vitals/internal/health"
	"github.com/julianstephens/vitals/internal/logger"
	"github.com/julianstephens/vitals/internal/models"
	"github.com/julianstephens/vitals/internal/remote"
	"github.com/julianstephens/vitals/internal/score"
	"github.com/julianstephens/vitals/internal/storage"
	"github.com/julianstephens/vitals/internal/streaks"
	"github.com/julianstephens/vitals/internal/utils"
)

// Subscriber observes the snapshot and its derived score. Subscribers are
// called synchronously, in registration order, on every material update.
type Subscriber func(models.DailyMetrics, models.ScoreResult)

type subscription struct {
	id int
	fn Subscriber
}

// Store owns the current-day metrics snapshot and coordinates refreshes
// from the health provider, goal counting, streak updates, and the daily
// log. All snapshot mutations happen under one mutex.
type Store struct {
	mu       sync.Mutex
	store    storage.Provider
	sync     *remote.Service
	health   health.Provider
	goals    *goals.Tracker
	streaks  *streaks.Tracker
	timezone string

	snapshot models.DailyMetrics
	lastHash uint64

	subs    []subscription
	nextSub int

	persistWG sync.WaitGroup
}

// NewStore loads the persisted snapshot, discarding it when it belongs to
// an earlier calendar day. The app shell is expected to call RefreshAsync
// right after construction.
func NewStore(store storage.Provider, syncSvc *remote.Service, healthProvider health.Provider, goalTracker *goals.Tracker, streakTracker *streaks.Tracker, timezone string) (*Store, error) {
	today, err := utils.GetTodayInTimezone(timezone)
	if err != nil {
		return nil, err
	}

	snapshot, ok, err := store.GetMetrics()
	if err != nil {
		return nil, err
	}
	if !ok || snapshot.Date != today {
		snapshot = models.DailyMetrics{Date: today}
	}

	s := &Store{
		store:    store,
		sync:     syncSvc,
		health:   healthProvider,
		goals:    goalTracker,
		streaks:  streakTracker,
		timezone: timezone,
		snapshot: snapshot,
	}
	s.lastHash = hashSnapshot(snapshot)
	return s, nil
}

// Snapshot returns a copy of the current metrics and their derived score
func (s *Store) Snapshot() (models.DailyMetrics, models.ScoreResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, score.Compute(s.snapshot)
}

// Subscribe registers an observer. It is invoked immediately with the
// current state and again after every later update. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	snapshot := s.snapshot
	s.mu.Unlock()

	fn(snapshot, score.Compute(snapshot))

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Update merges the patch into the snapshot, stamps LastUpdated, persists
// fire-and-forget, and notifies subscribers synchronously. Patches that
// change nothing are dropped without notification.
func (s *Store) Update(patch models.MetricsPatch) {
	s.mu.Lock()
	merged := s.snapshot
	applyPatch(&merged, patch)

	hash := hashSnapshot(merged)
	if hash == s.lastHash {
		s.mu.Unlock()
		logger.Debug("Metrics update changed nothing, skipping notify")
		return
	}

	merged.LastUpdated = time.Now()
	s.snapshot = merged
	s.lastHash = hash
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	s.persistAsync(merged)

	result := score.Compute(merged)
	for _, sub := range subs {
		sub.fn(merged, result)
	}
}

// Refresh pulls steps, sleep, and calories from the health provider and
// then runs the daily bookkeeping pipeline: goal counting, streak updates,
// the daily log upsert, and history pruning. Denied permission or provider
// errors leave the snapshot unchanged; bookkeeping still runs so manually
// logged metrics count toward streaks.
func (s *Store) Refresh(ctx context.Context) error {
	if err := s.rollover(); err != nil {
		return err
	}

	patch, ok := s.pullHealthData(ctx)
	if ok {
		s.Update(patch)
	}
	return s.finalizeDay()
}

// RefreshAsync runs Refresh on its own goroutine; errors are logged, not
// returned. Wait blocks until it and any pending persists are done.
func (s *Store) RefreshAsync(ctx context.Context) {
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		if err := s.Refresh(ctx); err != nil {
			logger.Warn("Background refresh failed", "error", err)
		}
	}()
}

// Wait blocks until pending background persists and refreshes finish
func (s *Store) Wait() {
	s.persistWG.Wait()
}

// pullHealthData queries the provider under per-call timeouts. Any
// denial or failure reports ok=false and the caller keeps prior state.
func (s *Store) pullHealthData(ctx context.Context) (models.MetricsPatch, bool) {
	if s.health == nil || !s.health.Available() {
		logger.Debug("Health provider unavailable, keeping existing metrics")
		return models.MetricsPatch{}, false
	}

	callCtx, cancel := context.WithTimeout(ctx, constants.HealthCallTimeout)
	defer cancel()

	status, err := s.health.RequestPermission(callCtx)
	if err != nil || status != health.PermissionGranted {
		logger.Warn("Health permission not granted, keeping existing metrics", "status", status, "error", err)
		return models.MetricsPatch{}, false
	}

	var patch models.MetricsPatch
	if steps, err := s.health.TodaySteps(callCtx); err != nil {
		logger.Warn("Failed to read steps", "error", err)
	} else {
		patch.Steps = &steps
	}
	if sleep, ok, err := s.health.SleepHours(callCtx); err != nil {
		logger.Warn("Failed to read sleep", "error", err)
	} else if ok {
		patch.SleepHours = &sleep
	}
	if calories, err := s.health.ActiveCalories(callCtx); err != nil {
		logger.Warn("Failed to read calories", "error", err)
	} else {
		patch.ActiveCalories = &calories
	}
	return patch, true
}

// finalizeDay counts goal completions, feeds them to the streak tracker,
// upserts today's log, and prunes history past the retention window.
func (s *Store) finalizeDay() error {
	snapshot, result := s.Snapshot()
	today := snapshot.Date

	progress := s.goals.Progress(snapshot)
	goalsMet := 0
	for _, goal := range progress {
		if goal.Completed {
			goalsMet++
		}
		streakType, ok := streakTypeFor(goal.Type)
		if !ok {
			continue
		}
		if err := s.streaks.RecordCompletion(streakType, goal.Completed, today); err != nil {
			return err
		}
	}
	if err := s.streaks.UpdateOverall(goalsMet, s.goals.TotalGoals(), today); err != nil {
		return err
	}

	if err := s.writeDailyLog(snapshot, result, goalsMet); err != nil {
		return err
	}
	return s.pruneHistory(today)
}

func (s *Store) writeDailyLog(snapshot models.DailyMetrics, result models.ScoreResult, goalsMet int) error {
	entry := models.DailyLog{
		ID:             uuid.NewString(),
		Date:           snapshot.Date,
		Steps:          snapshot.Steps,
		SleepHours:     snapshot.SleepHoursOrZero(),
		FocusMinutes:   snapshot.FocusMinutes,
		Score:          int(math.Round(result.Score)),
		ActiveCalories: snapshot.ActiveCalories,
		GoalsMet:       goalsMet,
		UpdatedAt:      time.Now(),
	}
	if existing, ok, err := s.store.GetDailyLog(snapshot.Date); err != nil {
		return err
	} else if ok {
		entry.ID = existing.ID
	}

	if err := s.store.SaveDailyLog(entry); err != nil {
		return err
	}
	if s.sync != nil {
		s.sync.PushDailyLog(entry)
	}
	return nil
}

func (s *Store) pruneHistory(today string) error {
	cutoff, err := utils.DaysAgo(today, constants.LogRetentionDays)
	if err != nil {
		return err
	}
	pruned, err := s.store.PruneDailyLogs(cutoff)
	if err != nil {
		return err
	}
	if pruned > 0 {
		logger.Debug("Pruned expired daily logs", "count", pruned)
	}
	return nil
}

// rollover resets the snapshot when the calendar day has changed since
// the store was constructed, and re-runs streak validation.
func (s *Store) rollover() error {
	today, err := utils.GetTodayInTimezone(s.timezone)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.snapshot.Date != today {
		s.snapshot = models.DailyMetrics{Date: today}
		s.lastHash = hashSnapshot(s.snapshot)
	}
	s.mu.Unlock()

	return s.streaks.Validate(today)
}

func (s *Store) persistAsync(snapshot models.DailyMetrics) {
	s.persistWG.Add(1)
	go func() {
		defer s.persistWG.Done()
		if err := s.store.SaveMetrics(snapshot); err != nil {
			logger.Warn("Failed to persist metrics snapshot", "error", err)
		}
	}()
}

func applyPatch(m *models.DailyMetrics, patch models.MetricsPatch) {
	if patch.Steps != nil {
		m.Steps = *patch.Steps
	}
	if patch.SleepHours != nil {
		sleep := *patch.SleepHours
		m.SleepHours = &sleep
	}
	if patch.ActiveCalories != nil {
		m.ActiveCalories = *patch.ActiveCalories
	}
	if patch.FocusMinutes != nil {
		m.FocusMinutes = *patch.FocusMinutes
	}
	if patch.SocialMediaMinutes != nil {
		m.SocialMediaMinutes = *patch.SocialMediaMinutes
	}
	if patch.TotalScreenTimeMinutes != nil {
		m.TotalScreenTimeMinutes = *patch.TotalScreenTimeMinutes
	}
	if patch.Pickups != nil {
		m.Pickups = *patch.Pickups
	}
}

// hashSnapshot fingerprints the observable fields of the snapshot.
// LastUpdated is excluded so a merge that changes no metric is a no-op.
func hashSnapshot(m models.DailyMetrics) uint64 {
	m.LastUpdated = time.Time{}
	hash, err := hashstructure.Hash(m, hashstructure.FormatV2, nil)
	if err != nil {
		// hashstructure only fails on unsupported types; DailyMetrics
		// has none, so force a notify rather than dropping the update
		return 0
	}
	return hash
}

func streakTypeFor(goalType models.GoalType) (models.StreakType, bool) {
	switch goalType {
	case models.GoalSteps:
		return models.StreakSteps, true
	case models.GoalSleep:
		return models.StreakSleep, true
	case models.GoalFocus:
		return models.StreakFocus, true
	case models.GoalScore:
		return models.StreakScore, true
	default:
		return "", false
	}
}
