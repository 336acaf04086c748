package streaks

import (
	"fmt"
	"sync"

	"github.com/julianstephens/vitals/internal/logger"
	"github.com/julianstephens/vitals/internal/models"
	"github.com/julianstephens/vitals/internal/remote"
	"github.com/julianstephens/vitals/internal/storage"
	"github.com/julianstephens/vitals/internal/utils"
)

// Tracker maintains consecutive-day completion counters per streak type
// plus the aggregate overall counter. State is keyed by calendar day
// strings so a process restart mid-day picks up where it left off.
type Tracker struct {
	mu      sync.Mutex
	store   storage.Provider
	sync    *remote.Service
	streaks models.StreakSet
}

// NewTracker loads persisted streaks and runs the day-boundary validation
// pass against the given day before anything reads them.
func NewTracker(store storage.Provider, syncSvc *remote.Service, today string) (*Tracker, error) {
	streaks, ok, err := store.GetStreaks()
	if err != nil {
		return nil, err
	}
	if !ok {
		streaks = models.NewStreakSet()
	}

	t := &Tracker{
		store:   store,
		sync:    syncSvc,
		streaks: streaks,
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.validateLocked(today) {
		if err := t.persistLocked(); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Get returns a copy of the streak for the given type, creating a zero
// streak if none is tracked yet.
func (t *Tracker) Get(streakType models.StreakType) models.Streak {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *t.streaks.Ensure(streakType)
}

// All returns a copy of every tracked streak in display order
func (t *Tracker) All() []models.Streak {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.Streak, 0, len(models.AllStreakTypes()))
	for _, streakType := range models.AllStreakTypes() {
		out = append(out, *t.streaks.Ensure(streakType))
	}
	return out
}

// Set returns a deep copy of the whole streak set
func (t *Tracker) Set() models.StreakSet {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(models.StreakSet, len(t.streaks))
	for streakType, streak := range t.streaks {
		if streak == nil {
			continue
		}
		copied := *streak
		out[streakType] = &copied
	}
	return out
}

// RecordCompletion feeds one goal-completion signal for the given day
// through the streak transition. Incomplete days and already-recorded
// days are no-ops. Streaks only grow here; breaking happens in the
// validation pass when a day is missed.
func (t *Tracker) RecordCompletion(streakType models.StreakType, completed bool, today string) error {
	// A malformed day would make the never-active sentinel match its
	// empty "yesterday" and increment instead of starting fresh
	if !utils.ValidateDateFormat(today) {
		return fmt.Errorf("invalid date %q", today)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	changed := t.validateLocked(today)
	if completed && t.recordLocked(streakType, today) {
		changed = true
	}
	if !changed {
		return nil
	}
	return t.persistLocked()
}

// UpdateOverall derives the overall day-completion signal from the goal
// tally: a day counts when at least half the goals (rounded up) are met.
func (t *Tracker) UpdateOverall(goalsMet, totalGoals int, today string) error {
	threshold := (totalGoals + 1) / 2
	completed := totalGoals > 0 && goalsMet >= threshold
	return t.RecordCompletion(models.StreakOverall, completed, today)
}

// Validate runs the day-boundary pass: streaks whose last active day is
// neither today nor yesterday are broken, and isActiveToday is cleared
// whenever the last active day is not today. Persists only on change.
func (t *Tracker) Validate(today string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.validateLocked(today) {
		return nil
	}
	return t.persistLocked()
}

// Adopt replaces the whole set, typically with one pulled from the sync
// backend, then re-validates against the given day.
func (t *Tracker) Adopt(streaks models.StreakSet, today string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if streaks == nil {
		streaks = models.NewStreakSet()
	}
	t.streaks = streaks
	t.validateLocked(today)
	return t.persistLocked()
}

func (t *Tracker) recordLocked(streakType models.StreakType, today string) bool {
	streak := t.streaks.Ensure(streakType)
	if streak.ActiveToday && streak.LastActiveDate == today {
		return false
	}

	yesterday, _ := utils.PreviousDay(today)
	switch streak.LastActiveDate {
	case yesterday:
		streak.Current++
	case today:
		// validation already cleared ActiveToday for a stale flag; a
		// same-day record after that still counts once
	default:
		streak.Current = 1
	}
	streak.LastActiveDate = today
	streak.ActiveToday = true
	if streak.Current > streak.Longest {
		streak.Longest = streak.Current
	}
	return true
}

func (t *Tracker) validateLocked(today string) bool {
	yesterday, _ := utils.PreviousDay(today)
	changed := false
	for streakType, streak := range t.streaks {
		if streak == nil {
			t.streaks[streakType] = &models.Streak{Type: streakType}
			changed = true
			continue
		}
		if streak.LastActiveDate != "" && !utils.ValidateDateFormat(streak.LastActiveDate) {
			logger.Warn("Malformed streak date, treating streak as broken", "date", streak.LastActiveDate, "type", streakType)
			streak.LastActiveDate = ""
			streak.Current = 0
			streak.ActiveToday = false
			changed = true
			continue
		}
		if streak.LastActiveDate != today && streak.LastActiveDate != yesterday {
			if streak.Current != 0 || streak.ActiveToday {
				streak.Current = 0
				streak.ActiveToday = false
				changed = true
			}
			continue
		}
		if streak.LastActiveDate != today && streak.ActiveToday {
			streak.ActiveToday = false
			changed = true
		}
	}
	return changed
}

// persistLocked writes the full set locally and pushes it best-effort
func (t *Tracker) persistLocked() error {
	if err := t.store.SaveStreaks(t.streaks); err != nil {
		return err
	}
	if t.sync != nil {
		t.sync.PushStreaks(t.streaks)
	} else {
		logger.Debug("No sync service configured, streaks kept local only")
	}
	return nil
}
