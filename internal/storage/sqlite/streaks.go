package sqlite

import (
	"fmt"

	"github.com/julianstephens/vitals/internal/models"
)

func (s *Store) GetStreaks() (models.StreakSet, bool, error) {
	rows, err := s.db.Query(`
		SELECT type, current, longest, last_active_date, active_today
		FROM streaks`)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	set := make(models.StreakSet)
	for rows.Next() {
		var st models.Streak
		var activeToday int
		if err := rows.Scan(&st.Type, &st.Current, &st.Longest, &st.LastActiveDate, &activeToday); err != nil {
			return nil, false, err
		}
		st.ActiveToday = activeToday != 0
		streak := st
		set[st.Type] = &streak
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	if len(set) == 0 {
		return nil, false, nil
	}
	return set, true, nil
}

func (s *Store) SaveStreaks(streaks models.StreakSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, st := range streaks {
		if st == nil {
			continue
		}
		activeToday := 0
		if st.ActiveToday {
			activeToday = 1
		}
		if _, err := tx.Exec(`
			INSERT INTO streaks (type, current, longest, last_active_date, active_today)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(type) DO UPDATE SET
				current = excluded.current,
				longest = excluded.longest,
				last_active_date = excluded.last_active_date,
				active_today = excluded.active_today`,
			st.Type, st.Current, st.Longest, st.LastActiveDate, activeToday); err != nil {
			return fmt.Errorf("failed to save streak %s: %w", st.Type, err)
		}
	}

	return tx.Commit()
}
