package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/vitals/internal/logger"
	"github.com/julianstephens/vitals/internal/models"
)

func (s *Store) GetMetrics() (models.DailyMetrics, bool, error) {
	row := s.db.QueryRow(`
		SELECT date, steps, sleep_hours, active_calories, focus_minutes,
		       social_media_minutes, total_screen_time_minutes, pickups, last_updated
		FROM daily_metrics WHERE id = 1`)

	var m models.DailyMetrics
	var sleepHours sql.NullFloat64
	var lastUpdated string

	err := row.Scan(&m.Date, &m.Steps, &sleepHours, &m.ActiveCalories, &m.FocusMinutes,
		&m.SocialMediaMinutes, &m.TotalScreenTimeMinutes, &m.Pickups, &lastUpdated)
	if err == sql.ErrNoRows {
		return models.DailyMetrics{}, false, nil
	}
	if err != nil {
		return models.DailyMetrics{}, false, err
	}

	if sleepHours.Valid {
		m.SleepHours = &sleepHours.Float64
	}
	m.LastUpdated, err = time.Parse(time.RFC3339, lastUpdated)
	if err != nil {
		// Malformed persisted state degrades to absent
		logger.Warn("Malformed last_updated in daily_metrics, treating snapshot as absent", "value", lastUpdated)
		return models.DailyMetrics{}, false, nil
	}

	return m, true, nil
}

func (s *Store) SaveMetrics(metrics models.DailyMetrics) error {
	var sleepHours sql.NullFloat64
	if metrics.SleepHours != nil {
		sleepHours = sql.NullFloat64{Float64: *metrics.SleepHours, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO daily_metrics (id, date, steps, sleep_hours, active_calories, focus_minutes,
			social_media_minutes, total_screen_time_minutes, pickups, last_updated)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			steps = excluded.steps,
			sleep_hours = excluded.sleep_hours,
			active_calories = excluded.active_calories,
			focus_minutes = excluded.focus_minutes,
			social_media_minutes = excluded.social_media_minutes,
			total_screen_time_minutes = excluded.total_screen_time_minutes,
			pickups = excluded.pickups,
			last_updated = excluded.last_updated`,
		metrics.Date, metrics.Steps, sleepHours, metrics.ActiveCalories, metrics.FocusMinutes,
		metrics.SocialMediaMinutes, metrics.TotalScreenTimeMinutes, metrics.Pickups,
		metrics.LastUpdated.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save metrics: %w", err)
	}
	return nil
}
