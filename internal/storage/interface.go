package storage

import "github.com/julianstephens/vitals/internal/models"

// Provider is the local persistence boundary. Implementations must treat
// malformed persisted state as absent rather than surfacing parse errors.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Daily metrics snapshot. The bool reports whether a snapshot was
	// present for that key.
	GetMetrics() (models.DailyMetrics, bool, error)
	SaveMetrics(models.DailyMetrics) error

	// Goal targets
	GetGoals() (models.GoalSet, bool, error)
	SaveGoals(models.GoalSet) error

	// Streak counters
	GetStreaks() (models.StreakSet, bool, error)
	SaveStreaks(models.StreakSet) error

	// Daily logs, keyed by date (YYYY-MM-DD)
	GetDailyLog(date string) (models.DailyLog, bool, error)
	GetDailyLogs(startDay, endDay string) ([]models.DailyLog, error)
	SaveDailyLog(models.DailyLog) error
	// PruneDailyLogs deletes logs dated strictly before the given day and
	// returns how many were removed.
	PruneDailyLogs(before string) (int, error)

	// Focus session (at most one persisted at a time)
	GetFocusSession() (models.FocusSession, bool, error)
	SaveFocusSession(models.FocusSession) error
	ClearFocusSession() error

	// Wipe removes all app-local state. Used on logout.
	Wipe() error

	// Utils
	GetConfigPath() string
}
