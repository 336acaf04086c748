package models

import "time"

// DailyLog is the immutable-once-written historical record for one calendar
// date. Only the entry for "today" may be overwritten; older entries are
// read-only history used for charts and trend summaries.
type DailyLog struct {
	ID             string    `json:"id"`
	Date           string    `json:"date"` // YYYY-MM-DD format
	Steps          int       `json:"steps"`
	SleepHours     float64   `json:"sleep_hours"`
	FocusMinutes   int       `json:"focus_minutes"`
	Score          int       `json:"pvc_score"` // integer-rounded composite score
	ActiveCalories int       `json:"active_calories"`
	GoalsMet       int       `json:"goals_met_count"`
	UpdatedAt      time.Time `json:"updated_at"`
}
