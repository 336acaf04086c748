package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/vitals/internal/models"
)

func (s *Store) GetGoals() (models.GoalSet, bool, error) {
	row := s.db.QueryRow(`
		SELECT steps, sleep_hours, focus_minutes, score, active_calories
		FROM goal_targets WHERE id = 1`)

	var g models.GoalSet
	err := row.Scan(&g.Steps, &g.SleepHours, &g.FocusMinutes, &g.Score, &g.ActiveCalories)
	if err == sql.ErrNoRows {
		return models.GoalSet{}, false, nil
	}
	if err != nil {
		return models.GoalSet{}, false, err
	}

	models.ApplyDefaultGoals(&g)
	return g, true, nil
}

func (s *Store) SaveGoals(goals models.GoalSet) error {
	_, err := s.db.Exec(`
		INSERT INTO goal_targets (id, steps, sleep_hours, focus_minutes, score, active_calories)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			steps = excluded.steps,
			sleep_hours = excluded.sleep_hours,
			focus_minutes = excluded.focus_minutes,
			score = excluded.score,
			active_calories = excluded.active_calories`,
		goals.Steps, goals.SleepHours, goals.FocusMinutes, goals.Score, goals.ActiveCalories)
	if err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	return nil
}
