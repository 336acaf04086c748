package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/vitals/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vitals.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return s
}

func TestInitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vitals.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := s.Init(); err == nil {
		t.Error("second Init() should fail")
	}
}

func TestLoadWithoutInit(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := s.Load(); err == nil {
		t.Error("Load() should fail when storage is not initialized")
	}
}

func TestMetricsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, ok, err := s.GetMetrics(); err != nil || ok {
		t.Fatalf("GetMetrics() on empty store = ok=%v err=%v, want absent", ok, err)
	}

	sleep := 7.25
	metrics := models.DailyMetrics{
		Date:                   "2025-06-01",
		Steps:                  8421,
		SleepHours:             &sleep,
		ActiveCalories:         430,
		FocusMinutes:           95,
		SocialMediaMinutes:     38,
		TotalScreenTimeMinutes: 210,
		Pickups:                41,
		LastUpdated:            time.Now().Truncate(time.Second),
	}
	if err := s.SaveMetrics(metrics); err != nil {
		t.Fatalf("SaveMetrics() failed: %v", err)
	}

	// Reload from disk to verify persistence
	reloaded := NewJSONStore(s.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	got, ok, err := reloaded.GetMetrics()
	if err != nil || !ok {
		t.Fatalf("GetMetrics() = ok=%v err=%v, want present", ok, err)
	}
	if got.Steps != metrics.Steps || got.Date != metrics.Date || got.Pickups != metrics.Pickups {
		t.Errorf("reloaded metrics = %+v, want %+v", got, metrics)
	}
	if got.SleepHours == nil || *got.SleepHours != sleep {
		t.Errorf("reloaded sleep = %v, want %v", got.SleepHours, sleep)
	}
}

func TestGoalsRoundTripAndDefaults(t *testing.T) {
	s := newTestStore(t)

	if _, ok, _ := s.GetGoals(); ok {
		t.Fatal("GetGoals() on empty store should report absent")
	}

	goals := models.DefaultGoalSet()
	goals.Steps = 12000
	if err := s.SaveGoals(goals); err != nil {
		t.Fatalf("SaveGoals() failed: %v", err)
	}

	got, ok, err := s.GetGoals()
	if err != nil || !ok {
		t.Fatalf("GetGoals() = ok=%v err=%v", ok, err)
	}
	if got.Steps != 12000 || got.SleepHours != 8 {
		t.Errorf("goals = %+v", got)
	}

	// A partial persisted set gains defaults for missing fields
	if err := s.SaveGoals(models.GoalSet{Steps: 9000}); err != nil {
		t.Fatalf("SaveGoals() failed: %v", err)
	}
	got, _, _ = s.GetGoals()
	if got.Steps != 9000 || got.FocusMinutes != 120 || got.Score != 70 {
		t.Errorf("default merging failed: %+v", got)
	}
}

func TestStreaksRoundTrip(t *testing.T) {
	s := newTestStore(t)

	set := models.NewStreakSet()
	set[models.StreakSteps].Current = 4
	set[models.StreakSteps].Longest = 9
	set[models.StreakSteps].LastActiveDate = "2025-06-01"
	set[models.StreakSteps].ActiveToday = true

	if err := s.SaveStreaks(set); err != nil {
		t.Fatalf("SaveStreaks() failed: %v", err)
	}

	reloaded := NewJSONStore(s.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	got, ok, err := reloaded.GetStreaks()
	if err != nil || !ok {
		t.Fatalf("GetStreaks() = ok=%v err=%v", ok, err)
	}
	steps := got.Ensure(models.StreakSteps)
	if steps.Current != 4 || steps.Longest != 9 || !steps.ActiveToday || steps.LastActiveDate != "2025-06-01" {
		t.Errorf("reloaded streak = %+v", steps)
	}
}

func TestDailyLogsRangeAndPrune(t *testing.T) {
	s := newTestStore(t)

	dates := []string{"2025-05-28", "2025-05-30", "2025-06-01", "2025-06-02"}
	for i, d := range dates {
		if err := s.SaveDailyLog(models.DailyLog{ID: d, Date: d, Steps: 1000 * (i + 1), UpdatedAt: time.Now()}); err != nil {
			t.Fatalf("SaveDailyLog(%s) failed: %v", d, err)
		}
	}

	logs, err := s.GetDailyLogs("2025-05-29", "2025-06-01")
	if err != nil {
		t.Fatalf("GetDailyLogs() failed: %v", err)
	}
	if len(logs) != 2 || logs[0].Date != "2025-05-30" || logs[1].Date != "2025-06-01" {
		t.Errorf("GetDailyLogs() = %+v", logs)
	}

	removed, err := s.PruneDailyLogs("2025-06-01")
	if err != nil {
		t.Fatalf("PruneDailyLogs() failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("PruneDailyLogs() removed %d, want 2", removed)
	}
	if _, ok, _ := s.GetDailyLog("2025-05-28"); ok {
		t.Error("pruned log still present")
	}
	if _, ok, _ := s.GetDailyLog("2025-06-01"); !ok {
		t.Error("log on the boundary date should survive pruning")
	}
}

func TestDailyLogOverwriteToday(t *testing.T) {
	s := newTestStore(t)

	first := models.DailyLog{ID: "a", Date: "2025-06-01", Steps: 100, UpdatedAt: time.Now()}
	second := models.DailyLog{ID: "a", Date: "2025-06-01", Steps: 4500, GoalsMet: 3, UpdatedAt: time.Now()}
	if err := s.SaveDailyLog(first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDailyLog(second); err != nil {
		t.Fatal(err)
	}

	got, ok, _ := s.GetDailyLog("2025-06-01")
	if !ok || got.Steps != 4500 || got.GoalsMet != 3 {
		t.Errorf("overwritten log = %+v", got)
	}
}

func TestFocusSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if _, ok, _ := s.GetFocusSession(); ok {
		t.Fatal("empty store should have no focus session")
	}

	session := models.FocusSession{
		ID:             "sess-1",
		State:          models.FocusRunning,
		PlannedMinutes: 25,
		StartedAt:      time.Now().Truncate(time.Second),
		Segments:       []models.FocusSegment{{Start: time.Now().Truncate(time.Second)}},
	}
	if err := s.SaveFocusSession(session); err != nil {
		t.Fatalf("SaveFocusSession() failed: %v", err)
	}

	got, ok, err := s.GetFocusSession()
	if err != nil || !ok {
		t.Fatalf("GetFocusSession() = ok=%v err=%v", ok, err)
	}
	if got.ID != session.ID || got.State != models.FocusRunning || len(got.Segments) != 1 {
		t.Errorf("reloaded session = %+v", got)
	}

	if err := s.ClearFocusSession(); err != nil {
		t.Fatalf("ClearFocusSession() failed: %v", err)
	}
	if _, ok, _ := s.GetFocusSession(); ok {
		t.Error("session should be cleared")
	}
}

func TestCorruptedFileTreatedAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vitals.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s := NewJSONStore(path)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() should not propagate parse errors, got %v", err)
	}

	settings, err := s.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() failed: %v", err)
	}
	if settings.Timezone != "Local" {
		t.Errorf("corrupted store should fall back to defaults, got %+v", settings)
	}
	if _, ok, _ := s.GetMetrics(); ok {
		t.Error("corrupted store should have no metrics")
	}
}

func TestWipe(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveGoals(models.DefaultGoalSet()); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveDailyLog(models.DailyLog{ID: "x", Date: "2025-06-01", UpdatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	if err := s.Wipe(); err != nil {
		t.Fatalf("Wipe() failed: %v", err)
	}

	if _, ok, _ := s.GetGoals(); ok {
		t.Error("goals should be gone after wipe")
	}
	logs, _ := s.GetDailyLogs("0000-01-01", "9999-12-31")
	if len(logs) != 0 {
		t.Errorf("logs should be gone after wipe, got %d", len(logs))
	}
}

func TestConcurrentWriters(t *testing.T) {
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				date := fmt.Sprintf("2026-03-%02d", j%28+1)
				switch n % 4 {
				case 0:
					_ = s.SaveMetrics(models.DailyMetrics{Date: date, Steps: j})
				case 1:
					_ = s.SaveDailyLog(models.DailyLog{ID: date, Date: date, Steps: j})
				case 2:
					_, _ = s.GetDailyLogs("2026-03-01", "2026-03-28")
				case 3:
					_ = s.SaveStreaks(models.StreakSet{
						models.StreakSteps: {Type: models.StreakSteps, Current: j},
					})
				}
			}
		}(i)
	}
	wg.Wait()

	if _, _, err := s.GetMetrics(); err != nil {
		t.Fatalf("GetMetrics() after concurrent writes: %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("file unreadable after concurrent writes: %v", err)
	}
}
