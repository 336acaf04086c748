package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/julianstephens/vitals/internal/logger"
	"github.com/julianstephens/vitals/internal/models"
)

func (s *Store) GetFocusSession() (models.FocusSession, bool, error) {
	row := s.db.QueryRow("SELECT payload FROM focus_session WHERE id = 1")

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return models.FocusSession{}, false, nil
	}
	if err != nil {
		return models.FocusSession{}, false, err
	}

	var session models.FocusSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		// Corrupted session state is treated as absent
		logger.Warn("Malformed persisted focus session, discarding", "error", err)
		return models.FocusSession{}, false, nil
	}
	return session, true, nil
}

func (s *Store) SaveFocusSession(session models.FocusSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize focus session: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO focus_session (id, payload) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save focus session: %w", err)
	}
	return nil
}

func (s *Store) ClearFocusSession() error {
	_, err := s.db.Exec("DELETE FROM focus_session WHERE id = 1")
	return err
}
