package goals

import (
	"sync"

	"github.com/julianstephens/vitals/internal/logger"
	"github.com/julianstephens/vitals/internal/models"
	"github.com/julianstephens/vitals/internal/remote"
	"github.com/julianstephens/vitals/internal/score"
	"github.com/julianstephens/vitals/internal/storage"
	"github.com/julianstephens/vitals/internal/validation"
)

// Tracker maintains the per-metric goal targets and derives completion
// progress against the current snapshot. Targets persist across runs;
// every mutation is pushed best-effort to the sync backend.
type Tracker struct {
	mu      sync.Mutex
	store   storage.Provider
	sync    *remote.Service
	targets models.GoalSet
}

// NewTracker loads persisted targets, falling back to the defaults when
// none are stored.
func NewTracker(store storage.Provider, syncSvc *remote.Service) (*Tracker, error) {
	targets, ok, err := store.GetGoals()
	if err != nil {
		return nil, err
	}
	if !ok {
		targets = models.DefaultGoalSet()
	}

	return &Tracker{
		store:   store,
		sync:    syncSvc,
		targets: targets,
	}, nil
}

// Targets returns a copy of the current goal targets
func (t *Tracker) Targets() models.GoalSet {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.targets
}

// SetTarget updates one goal target. Non-positive targets are rejected at
// this boundary; the full set is persisted and pushed on success.
func (t *Tracker) SetTarget(goalType models.GoalType, target float64) error {
	if _, err := validation.ValidateGoalType(string(goalType)); err != nil {
		return err
	}
	if err := validation.ValidateGoalTarget(target); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.targets.SetTarget(goalType, target)
	return t.persistLocked()
}

// Reset restores all five defaults atomically. Calling it twice is the
// same as calling it once.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.targets = models.DefaultGoalSet()
	return t.persistLocked()
}

// Adopt replaces the whole target set, typically with one pulled from the
// sync backend. Invalid sets are rejected wholesale.
func (t *Tracker) Adopt(targets models.GoalSet) error {
	models.ApplyDefaultGoals(&targets)
	for _, goalType := range models.AllGoalTypes() {
		target, _ := targets.TargetFor(goalType)
		if err := validation.ValidateGoalTarget(target); err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.targets = targets
	return t.persistLocked()
}

// persistLocked writes the full set locally and pushes it best-effort.
// Local persistence failures surface; sync failures never do.
func (t *Tracker) persistLocked() error {
	if err := t.store.SaveGoals(t.targets); err != nil {
		return err
	}
	if t.sync != nil {
		t.sync.PushGoals(t.targets)
	} else {
		logger.Debug("No sync service configured, goals kept local only")
	}
	return nil
}

// Progress derives one Goal per fixed type from the snapshot. Percentage
// is clamped at 100 even when the current value exceeds the target.
func (t *Tracker) Progress(metrics models.DailyMetrics) []models.Goal {
	targets := t.Targets()
	result := score.Compute(metrics)

	progress := make([]models.Goal, 0, len(models.AllGoalTypes()))
	for _, goalType := range models.AllGoalTypes() {
		target, _ := targets.TargetFor(goalType)
		current := currentValue(goalType, metrics, result)

		percentage := 0.0
		if target > 0 {
			percentage = current / target * 100
			if percentage > 100 {
				percentage = 100
			}
		}

		progress = append(progress, models.Goal{
			Type:       goalType,
			Target:     target,
			Current:    current,
			Percentage: percentage,
			Completed:  percentage >= 100,
		})
	}
	return progress
}

// CompletedCount returns how many goals are met by the snapshot
func (t *Tracker) CompletedCount(metrics models.DailyMetrics) int {
	count := 0
	for _, goal := range t.Progress(metrics) {
		if goal.Completed {
			count++
		}
	}
	return count
}

// TotalGoals returns the size of the fixed goal set
func (t *Tracker) TotalGoals() int {
	return len(models.AllGoalTypes())
}

func currentValue(goalType models.GoalType, metrics models.DailyMetrics, result models.ScoreResult) float64 {
	switch goalType {
	case models.GoalSteps:
		return float64(metrics.Steps)
	case models.GoalSleep:
		return metrics.SleepHoursOrZero()
	case models.GoalFocus:
		return float64(metrics.FocusMinutes)
	case models.GoalScore:
		return result.Score
	case models.GoalCalories:
		return float64(metrics.ActiveCalories)
	default:
		return 0
	}
}
