package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/vitals/internal/models"
)

func scanDailyLog(row interface{ Scan(...any) error }) (models.DailyLog, error) {
	var l models.DailyLog
	var updatedAt string
	err := row.Scan(&l.Date, &l.ID, &l.Steps, &l.SleepHours, &l.FocusMinutes,
		&l.Score, &l.ActiveCalories, &l.GoalsMet, &updatedAt)
	if err != nil {
		return models.DailyLog{}, err
	}
	l.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return l, nil
}

func (s *Store) GetDailyLog(date string) (models.DailyLog, bool, error) {
	row := s.db.QueryRow(`
		SELECT date, id, steps, sleep_hours, focus_minutes, pvc_score, active_calories, goals_met, updated_at
		FROM daily_logs WHERE date = ?`, date)

	l, err := scanDailyLog(row)
	if err == sql.ErrNoRows {
		return models.DailyLog{}, false, nil
	}
	if err != nil {
		return models.DailyLog{}, false, err
	}
	return l, true, nil
}

func (s *Store) GetDailyLogs(startDay, endDay string) ([]models.DailyLog, error) {
	rows, err := s.db.Query(`
		SELECT date, id, steps, sleep_hours, focus_minutes, pvc_score, active_calories, goals_met, updated_at
		FROM daily_logs WHERE date >= ? AND date <= ?
		ORDER BY date ASC`, startDay, endDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		l, err := scanDailyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *Store) SaveDailyLog(log models.DailyLog) error {
	_, err := s.db.Exec(`
		INSERT INTO daily_logs (date, id, steps, sleep_hours, focus_minutes, pvc_score, active_calories, goals_met, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			steps = excluded.steps,
			sleep_hours = excluded.sleep_hours,
			focus_minutes = excluded.focus_minutes,
			pvc_score = excluded.pvc_score,
			active_calories = excluded.active_calories,
			goals_met = excluded.goals_met,
			updated_at = excluded.updated_at`,
		log.Date, log.ID, log.Steps, log.SleepHours, log.FocusMinutes,
		log.Score, log.ActiveCalories, log.GoalsMet, log.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save daily log: %w", err)
	}
	return nil
}

func (s *Store) PruneDailyLogs(before string) (int, error) {
	res, err := s.db.Exec("DELETE FROM daily_logs WHERE date < ?", before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune daily logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(n), nil
}
