package trends

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/julianstephens/vitals/internal/models"
	"github.com/julianstephens/vitals/internal/storage"
	"github.com/julianstephens/vitals/internal/utils"
)

const testToday = "2026-03-20"

func seedLogs(t *testing.T, store storage.Provider, daysAgoStart, daysAgoEnd, steps, focus, score int) {
	t.Helper()
	for i := daysAgoStart; i >= daysAgoEnd; i-- {
		date, err := utils.DaysAgo(testToday, i)
		if err != nil {
			t.Fatal(err)
		}
		err = store.SaveDailyLog(models.DailyLog{
			ID:           fmt.Sprintf("log-%d", i),
			Date:         date,
			Steps:        steps,
			FocusMinutes: focus,
			Score:        score,
			SleepHours:   7,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
}

func newTestStore(t *testing.T) storage.Provider {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "vitals.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestSummarizeAverages(t *testing.T) {
	store := newTestStore(t)
	seedLogs(t, store, 6, 0, 8000, 90, 75) // current week, all 7 days

	summary, err := Summarize(store, testToday, 7)
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	if summary.DaysFound != 7 {
		t.Errorf("DaysFound = %d, want 7", summary.DaysFound)
	}
	if summary.Steps.Average != 8000 {
		t.Errorf("steps average = %v, want 8000", summary.Steps.Average)
	}
	if summary.Focus.Average != 90 {
		t.Errorf("focus average = %v, want 90", summary.Focus.Average)
	}
	if summary.Score.Average != 75 {
		t.Errorf("score average = %v, want 75", summary.Score.Average)
	}
}

func TestSummarizeDirectionUp(t *testing.T) {
	store := newTestStore(t)
	seedLogs(t, store, 13, 7, 5000, 60, 50) // previous week
	seedLogs(t, store, 6, 0, 10000, 60, 80) // current week

	summary, err := Summarize(store, testToday, 7)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Steps.Direction != DirectionUp {
		t.Errorf("steps direction = %s, want up", summary.Steps.Direction)
	}
	if summary.Steps.ChangePct != 100 {
		t.Errorf("steps change = %v%%, want 100", summary.Steps.ChangePct)
	}
	if summary.Focus.Direction != DirectionFlat {
		t.Errorf("focus direction = %s, want flat (unchanged)", summary.Focus.Direction)
	}
	if summary.Score.Direction != DirectionUp {
		t.Errorf("score direction = %s, want up", summary.Score.Direction)
	}
}

func TestSummarizeDirectionDown(t *testing.T) {
	store := newTestStore(t)
	seedLogs(t, store, 13, 7, 12000, 120, 85)
	seedLogs(t, store, 6, 0, 4000, 30, 40)

	summary, err := Summarize(store, testToday, 7)
	if err != nil {
		t.Fatal(err)
	}
	for name, metric := range map[string]Metric{
		"steps": summary.Steps,
		"focus": summary.Focus,
		"score": summary.Score,
	} {
		if metric.Direction != DirectionDown {
			t.Errorf("%s direction = %s, want down", name, metric.Direction)
		}
	}
}

func TestSummarizeSmallChangeIsFlat(t *testing.T) {
	store := newTestStore(t)
	seedLogs(t, store, 13, 7, 10000, 0, 0)
	seedLogs(t, store, 6, 0, 10300, 0, 0) // +3%, inside the tolerance

	summary, err := Summarize(store, testToday, 7)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Steps.Direction != DirectionFlat {
		t.Errorf("steps direction = %s, want flat at +3%%", summary.Steps.Direction)
	}
}

func TestSummarizeEmptyHistory(t *testing.T) {
	store := newTestStore(t)

	summary, err := Summarize(store, testToday, 7)
	if err != nil {
		t.Fatal(err)
	}
	if summary.DaysFound != 0 {
		t.Errorf("DaysFound = %d, want 0", summary.DaysFound)
	}
	if summary.Steps.Average != 0 || summary.Steps.Direction != DirectionFlat {
		t.Errorf("empty history steps = %+v", summary.Steps)
	}
}

func TestSummarizeMissingDaysShrinkSample(t *testing.T) {
	store := newTestStore(t)
	// only 3 of the last 7 days have logs
	seedLogs(t, store, 2, 0, 6000, 45, 60)

	summary, err := Summarize(store, testToday, 7)
	if err != nil {
		t.Fatal(err)
	}
	if summary.DaysFound != 3 {
		t.Errorf("DaysFound = %d, want 3", summary.DaysFound)
	}
	if summary.Steps.Average != 6000 {
		t.Errorf("steps average = %v, want 6000 over present days only", summary.Steps.Average)
	}
	// no previous window at all: movement reads as up from nothing
	if summary.Steps.Direction != DirectionUp {
		t.Errorf("steps direction = %s, want up from empty previous window", summary.Steps.Direction)
	}
}
