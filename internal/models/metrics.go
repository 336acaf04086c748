package models

import "time"

// DailyMetrics is the current-day snapshot of health and screen-time metrics.
// It is owned by the metrics store and only mutated through its update and
// refresh operations.
type DailyMetrics struct {
	Date                   string    `json:"date"` // YYYY-MM-DD format
	Steps                  int       `json:"steps"`
	SleepHours             *float64  `json:"sleep_hours,omitempty"` // nil when the device reported nothing
	ActiveCalories         int       `json:"active_calories"`
	FocusMinutes           int       `json:"focus_minutes"`
	SocialMediaMinutes     int       `json:"social_media_minutes"`
	TotalScreenTimeMinutes int       `json:"total_screen_time_minutes"`
	Pickups                int       `json:"pickups"`
	LastUpdated            time.Time `json:"last_updated"`
}

// SleepHoursOrZero returns the recorded sleep duration, treating an absent
// reading as zero.
func (m DailyMetrics) SleepHoursOrZero() float64 {
	if m.SleepHours == nil {
		return 0
	}
	return *m.SleepHours
}

// MetricsPatch is a partial update to the daily snapshot. Nil fields are
// left untouched by a merge.
type MetricsPatch struct {
	Steps                  *int     `json:"steps,omitempty"`
	SleepHours             *float64 `json:"sleep_hours,omitempty"`
	ActiveCalories         *int     `json:"active_calories,omitempty"`
	FocusMinutes           *int     `json:"focus_minutes,omitempty"`
	SocialMediaMinutes     *int     `json:"social_media_minutes,omitempty"`
	TotalScreenTimeMinutes *int     `json:"total_screen_time_minutes,omitempty"`
	Pickups                *int     `json:"pickups,omitempty"`
}
