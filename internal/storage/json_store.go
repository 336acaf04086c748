package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/julianstephens/vitals/internal/logger"
	"github.com/julianstephens/vitals/internal/models"
)

type Store struct {
	Version  int                        `json:"version"`
	Settings models.Settings            `json:"settings"`
	Metrics  *models.DailyMetrics       `json:"daily_metrics,omitempty"`
	Goals    *models.GoalSet            `json:"goal_targets,omitempty"`
	Streaks  models.StreakSet           `json:"streaks,omitempty"`
	Logs     map[string]models.DailyLog `json:"daily_logs"` // date -> log
	Session  *models.FocusSession       `json:"focus_session,omitempty"`
}

// JSONStore persists the whole Store as one JSON file. A single mutex
// guards the in-memory state and the file write; the metrics store persists
// from a goroutine while other callers write synchronously, so every method
// must hold it.
type JSONStore struct {
	mu    sync.Mutex
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = emptyStore()
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'vitals init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// Corrupted state is treated as absent, never propagated
		logger.Warn("Persisted state is malformed, reinitializing with defaults", "path", s.path, "error", err)
		s.store = emptyStore()
		return nil
	}

	// Ensure maps are initialized
	if s.store.Logs == nil {
		s.store.Logs = make(map[string]models.DailyLog)
	}
	models.ApplyDefaultSettings(&s.store.Settings)

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func emptyStore() *Store {
	return &Store{
		Version: 1,
		Settings: models.Settings{
			Timezone:    "Local",
			HistoryDays: 7,
		},
		Logs: make(map[string]models.DailyLog),
	}
}

// save writes the current state to disk. Callers must hold s.mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) GetMetrics() (models.DailyMetrics, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return models.DailyMetrics{}, false, fmt.Errorf("storage not loaded")
	}
	if s.store.Metrics == nil {
		return models.DailyMetrics{}, false, nil
	}
	return *s.store.Metrics, true, nil
}

func (s *JSONStore) SaveMetrics(metrics models.DailyMetrics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Metrics = &metrics
	return s.save()
}

func (s *JSONStore) GetGoals() (models.GoalSet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return models.GoalSet{}, false, fmt.Errorf("storage not loaded")
	}
	if s.store.Goals == nil {
		return models.GoalSet{}, false, nil
	}
	goals := *s.store.Goals
	models.ApplyDefaultGoals(&goals)
	return goals, true, nil
}

func (s *JSONStore) SaveGoals(goals models.GoalSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Goals = &goals
	return s.save()
}

func (s *JSONStore) GetStreaks() (models.StreakSet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, false, fmt.Errorf("storage not loaded")
	}
	if s.store.Streaks == nil {
		return nil, false, nil
	}
	return s.store.Streaks, true, nil
}

func (s *JSONStore) SaveStreaks(streaks models.StreakSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Streaks = streaks
	return s.save()
}

func (s *JSONStore) GetDailyLog(date string) (models.DailyLog, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return models.DailyLog{}, false, fmt.Errorf("storage not loaded")
	}
	log, ok := s.store.Logs[date]
	return log, ok, nil
}

func (s *JSONStore) GetDailyLogs(startDay, endDay string) ([]models.DailyLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var logs []models.DailyLog
	for date, log := range s.store.Logs {
		if date >= startDay && date <= endDay {
			logs = append(logs, log)
		}
	}
	// Date strings sort chronologically
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date < logs[j].Date })
	return logs, nil
}

func (s *JSONStore) SaveDailyLog(log models.DailyLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Logs[log.Date] = log
	return s.save()
}

func (s *JSONStore) PruneDailyLogs(before string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return 0, fmt.Errorf("storage not loaded")
	}

	removed := 0
	for date := range s.store.Logs {
		if date < before {
			delete(s.store.Logs, date)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save()
}

func (s *JSONStore) GetFocusSession() (models.FocusSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return models.FocusSession{}, false, fmt.Errorf("storage not loaded")
	}
	if s.store.Session == nil {
		return models.FocusSession{}, false, nil
	}
	return *s.store.Session, true, nil
}

func (s *JSONStore) SaveFocusSession(session models.FocusSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Session = &session
	return s.save()
}

func (s *JSONStore) ClearFocusSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Session = nil
	return s.save()
}

func (s *JSONStore) Wipe() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store = emptyStore()
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
