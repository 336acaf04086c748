package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/julianstephens/vitals/internal/constants"
	"github.com/julianstephens/vitals/internal/logger"
	"github.com/julianstephens/vitals/internal/models"
)

// Backend syncs state to a PostgreSQL database. The connection string is
// retrieved from the OS keyring by the caller; embedded passwords are
// rejected so credentials never land in shell history or config files.
type Backend struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Backend {
	b := &Backend{
		connStr: connStr,
	}
	b.ensureSearchPath()
	return b
}

func (b *Backend) ensureSearchPath() {
	// Ensure search_path is set to vitals in the connection string
	if strings.HasPrefix(b.connStr, "postgres://") || strings.HasPrefix(b.connStr, "postgresql://") {
		u, err := url.Parse(b.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		// Only set search_path if it's not already present
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			b.connStr = u.String()
		}
	} else {
		// Assume DSN format - only append if search_path is not already present
		if !hasDSNParam(b.connStr, "search_path") {
			b.connStr = strings.TrimSpace(b.connStr) + " search_path=" + constants.AppName
		}
	}
}

// hasDSNParam returns true if the given DSN-style connection string contains
// the parameter key (case-insensitive).
func hasDSNParam(connStr, param string) bool {
	// DSN format is typically space-separated key=value pairs.
	parts := strings.Fields(connStr)
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], param) {
			return true
		}
	}
	return false
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, has := u.User.Password(); has {
				return true
			}
		}
		return false
	}
	return hasDSNParam(connStr, "password")
}

// Open connects and prepares the sync schema. It must be called before any
// other operation.
func (b *Backend) Open(ctx context.Context) error {
	if HasEmbeddedCredentials(b.connStr) {
		return ErrEmbeddedCredentials
	}

	db, err := sql.Open("postgres", b.connStr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to reach sync backend: %w", err)
	}
	b.db = db

	return b.createSchema(ctx)
}

func (b *Backend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

func (b *Backend) createSchema(ctx context.Context) error {
	statements := []string{
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", constants.AppName),
		`CREATE TABLE IF NOT EXISTS user_goals (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			steps DOUBLE PRECISION NOT NULL,
			sleep_hours DOUBLE PRECISION NOT NULL,
			focus_minutes DOUBLE PRECISION NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			active_calories DOUBLE PRECISION NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS streaks (
			type TEXT PRIMARY KEY,
			current INTEGER NOT NULL DEFAULT 0,
			longest INTEGER NOT NULL DEFAULT 0,
			last_active_date TEXT NOT NULL DEFAULT '',
			active_today BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS daily_logs (
			date TEXT PRIMARY KEY,
			id TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			sleep_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			focus_minutes INTEGER NOT NULL DEFAULT 0,
			pvc_score INTEGER NOT NULL DEFAULT 0,
			active_calories INTEGER NOT NULL DEFAULT 0,
			goals_met INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range statements {
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to prepare sync schema: %w", err)
		}
	}
	return nil
}

func (b *Backend) GetUserGoals(ctx context.Context) (models.GoalSet, bool, error) {
	row := b.db.QueryRowContext(ctx, `
		SELECT steps, sleep_hours, focus_minutes, score, active_calories
		FROM user_goals WHERE id = 1`)

	var g models.GoalSet
	err := row.Scan(&g.Steps, &g.SleepHours, &g.FocusMinutes, &g.Score, &g.ActiveCalories)
	if err == sql.ErrNoRows {
		return models.GoalSet{}, false, nil
	}
	if err != nil {
		return models.GoalSet{}, false, err
	}
	return g, true, nil
}

func (b *Backend) SaveUserGoals(ctx context.Context, goals models.GoalSet) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO user_goals (id, steps, sleep_hours, focus_minutes, score, active_calories, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, now())
		ON CONFLICT (id) DO UPDATE SET
			steps = EXCLUDED.steps,
			sleep_hours = EXCLUDED.sleep_hours,
			focus_minutes = EXCLUDED.focus_minutes,
			score = EXCLUDED.score,
			active_calories = EXCLUDED.active_calories,
			updated_at = now()`,
		goals.Steps, goals.SleepHours, goals.FocusMinutes, goals.Score, goals.ActiveCalories)
	return err
}

func (b *Backend) GetStreaks(ctx context.Context) (models.StreakSet, bool, error) {
	rows, err := b.db.QueryContext(ctx, `
		SELECT type, current, longest, last_active_date, active_today
		FROM streaks`)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	set := make(models.StreakSet)
	for rows.Next() {
		var st models.Streak
		if err := rows.Scan(&st.Type, &st.Current, &st.Longest, &st.LastActiveDate, &st.ActiveToday); err != nil {
			return nil, false, err
		}
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

func (b *Backend) SaveStreaks(ctx context.Context, streaks models.StreakSet) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, st := range streaks {
		if st == nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO streaks (type, current, longest, last_active_date, active_today, updated_at)
			VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (type) DO UPDATE SET
				current = EXCLUDED.current,
				longest = EXCLUDED.longest,
				last_active_date = EXCLUDED.last_active_date,
				active_today = EXCLUDED.active_today,
				updated_at = now()`,
			st.Type, st.Current, st.Longest, st.LastActiveDate, st.ActiveToday); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (b *Backend) GetDailyLogs(ctx context.Context, days int) ([]models.DailyLog, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format(constants.DateFormat)

	rows, err := b.db.QueryContext(ctx, `
		SELECT date, id, steps, sleep_hours, focus_minutes, pvc_score, active_calories, goals_met, updated_at
		FROM daily_logs WHERE date >= $1
		ORDER BY date ASC`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		var l models.DailyLog
		if err := rows.Scan(&l.Date, &l.ID, &l.Steps, &l.SleepHours, &l.FocusMinutes,
			&l.Score, &l.ActiveCalories, &l.GoalsMet, &l.UpdatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (b *Backend) SaveDailyLog(ctx context.Context, log models.DailyLog) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO daily_logs (date, id, steps, sleep_hours, focus_minutes, pvc_score, active_calories, goals_met, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (date) DO UPDATE SET
			steps = EXCLUDED.steps,
			sleep_hours = EXCLUDED.sleep_hours,
			focus_minutes = EXCLUDED.focus_minutes,
			pvc_score = EXCLUDED.pvc_score,
			active_calories = EXCLUDED.active_calories,
			goals_met = EXCLUDED.goals_met,
			updated_at = now()`,
		log.Date, log.ID, log.Steps, log.SleepHours, log.FocusMinutes,
		log.Score, log.ActiveCalories, log.GoalsMet)
	return err
}
