package constants

import "time"

const (
	AppName            = "vitals"
	DefaultKeyringUser = "sync-connection"
	DefaultConfigPath  = "~/.config/vitals/vitals.db"
	Version            = "v0.3.1"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Default goal targets
	DefaultStepsTarget    = 10000.0
	DefaultSleepTarget    = 8.0
	DefaultFocusTarget    = 120.0
	DefaultScoreTarget    = 70.0
	DefaultCaloriesTarget = 500.0

	// LogRetentionDays bounds how much daily-log history is kept locally
	LogRetentionDays = 90

	// Focus timer constants
	DefaultPomodoroMin  = 25
	MinFocusDurationSec = 60

	// Sync constants
	SyncCallTimeout = 5 * time.Second

	// Refresh constants
	HealthCallTimeout = 10 * time.Second
)

const (
	// Setting keys
	SettingTimezone    = "timezone"
	SettingHistoryDays = "history_days"

	// Default settings values
	DefaultTimezone    = "Local" // Use system local timezone by default
	DefaultHistoryDays = 7
)
