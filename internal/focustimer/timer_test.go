package focustimer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/vitals/internal/constants"
	"github.com/julianstephens/vitals/internal/goals"
	"github.com/julianstephens/vitals/internal/health"
	"github.com/julianstephens/vitals/internal/metrics"
	"github.com/julianstephens/vitals/internal/models"
	"github.com/julianstephens/vitals/internal/remote"
	"github.com/julianstephens/vitals/internal/storage"
	"github.com/julianstephens/vitals/internal/streaks"
	"github.com/julianstephens/vitals/internal/utils"
)

// fakeClock lets tests advance session time without sleeping
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTimer(t *testing.T) (*Timer, *metrics.Store, *fakeClock) {
	t.Helper()
	local := storage.NewJSONStore(filepath.Join(t.TempDir(), "vitals.json"))
	if err := local.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	syncSvc := remote.NewService(nil)
	goalTracker, err := goals.NewTracker(local, syncSvc)
	if err != nil {
		t.Fatal(err)
	}
	today, err := utils.GetTodayInTimezone(constants.DefaultTimezone)
	if err != nil {
		t.Fatal(err)
	}
	streakTracker, err := streaks.NewTracker(local, syncSvc, today)
	if err != nil {
		t.Fatal(err)
	}
	metricsStore, err := metrics.NewStore(local, syncSvc, health.Unavailable{}, goalTracker, streakTracker, constants.DefaultTimezone)
	if err != nil {
		t.Fatal(err)
	}
	// Drain outstanding persists before the temp dir is removed
	t.Cleanup(metricsStore.Wait)

	clock := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	timer := NewTimer(local, metricsStore)
	timer.now = func() time.Time { return clock.now }
	return timer, metricsStore, clock
}

func TestStartAndStatus(t *testing.T) {
	timer, _, _ := newTestTimer(t)

	session, err := timer.Start("deep work", 50)
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if session.State != models.FocusRunning || session.PlannedMinutes != 50 {
		t.Errorf("session = %+v", session)
	}
	if len(session.Segments) != 1 || session.Segments[0].End != nil {
		t.Errorf("expected one open segment, got %+v", session.Segments)
	}

	status, ok, err := timer.Status()
	if err != nil || !ok {
		t.Fatalf("Status() = ok=%v err=%v", ok, err)
	}
	if status.ID != session.ID {
		t.Errorf("Status() returned a different session")
	}
}

func TestStartDefaultsPlannedMinutes(t *testing.T) {
	timer, _, _ := newTestTimer(t)

	session, err := timer.Start("", 0)
	if err != nil {
		t.Fatal(err)
	}
	if session.PlannedMinutes != constants.DefaultPomodoroMin {
		t.Errorf("PlannedMinutes = %d, want %d", session.PlannedMinutes, constants.DefaultPomodoroMin)
	}
}

func TestStartWhileActiveFails(t *testing.T) {
	timer, _, _ := newTestTimer(t)

	if _, err := timer.Start("one", 25); err != nil {
		t.Fatal(err)
	}
	if _, err := timer.Start("two", 25); err == nil {
		t.Error("second Start() should fail while a session is active")
	}
}

func TestPauseResumeSegments(t *testing.T) {
	timer, _, clock := newTestTimer(t)

	if _, err := timer.Start("work", 25); err != nil {
		t.Fatal(err)
	}

	clock.advance(10 * time.Minute)
	session, err := timer.Pause()
	if err != nil {
		t.Fatalf("Pause() failed: %v", err)
	}
	if session.State != models.FocusPaused {
		t.Errorf("State = %s, want paused", session.State)
	}
	if session.Segments[0].End == nil {
		t.Error("pause did not close the open segment")
	}

	clock.advance(5 * time.Minute) // break time, not counted
	session, err = timer.Resume()
	if err != nil {
		t.Fatalf("Resume() failed: %v", err)
	}
	if session.State != models.FocusRunning || len(session.Segments) != 2 {
		t.Errorf("session after resume = %+v", session)
	}

	clock.advance(10 * time.Minute)
	if got := session.Elapsed(clock.now); got != 20*time.Minute {
		t.Errorf("Elapsed = %v, want 20m (break excluded)", got)
	}
}

func TestPauseWhilePausedIsNoop(t *testing.T) {
	timer, _, clock := newTestTimer(t)

	if _, err := timer.Start("work", 25); err != nil {
		t.Fatal(err)
	}
	clock.advance(2 * time.Minute)
	first, err := timer.Pause()
	if err != nil {
		t.Fatal(err)
	}
	second, err := timer.Pause()
	if err != nil {
		t.Fatal(err)
	}
	if len(second.Segments) != len(first.Segments) {
		t.Errorf("double pause grew segments: %+v", second.Segments)
	}
}

func TestStopCreditsFocusMinutes(t *testing.T) {
	timer, metricsStore, clock := newTestTimer(t)

	if _, err := timer.Start("work", 25); err != nil {
		t.Fatal(err)
	}
	clock.advance(25 * time.Minute)

	session, credited, err := timer.Stop()
	if err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if credited != 25 {
		t.Errorf("credited = %d, want 25", credited)
	}
	if session.State != models.FocusFinished || session.EndedAt == nil {
		t.Errorf("session = %+v", session)
	}

	snapshot, _ := metricsStore.Snapshot()
	if snapshot.FocusMinutes != 25 {
		t.Errorf("FocusMinutes = %d, want 25", snapshot.FocusMinutes)
	}

	if _, ok, _ := timer.Status(); ok {
		t.Error("session still active after Stop()")
	}
}

func TestStopAccumulatesAcrossSessions(t *testing.T) {
	timer, metricsStore, clock := newTestTimer(t)

	for i := 0; i < 2; i++ {
		if _, err := timer.Start("work", 25); err != nil {
			t.Fatal(err)
		}
		clock.advance(30 * time.Minute)
		if _, _, err := timer.Stop(); err != nil {
			t.Fatal(err)
		}
	}

	snapshot, _ := metricsStore.Snapshot()
	if snapshot.FocusMinutes != 60 {
		t.Errorf("FocusMinutes = %d, want 60", snapshot.FocusMinutes)
	}
}

func TestStopBelowMinimumDiscards(t *testing.T) {
	timer, metricsStore, clock := newTestTimer(t)

	if _, err := timer.Start("oops", 25); err != nil {
		t.Fatal(err)
	}
	clock.advance(30 * time.Second)

	_, credited, err := timer.Stop()
	if err != nil {
		t.Fatal(err)
	}
	if credited != 0 {
		t.Errorf("credited = %d, want 0 below the minimum duration", credited)
	}
	snapshot, _ := metricsStore.Snapshot()
	if snapshot.FocusMinutes != 0 {
		t.Errorf("FocusMinutes = %d, want 0", snapshot.FocusMinutes)
	}
}

func TestStopWithoutSessionFails(t *testing.T) {
	timer, _, _ := newTestTimer(t)
	if _, _, err := timer.Stop(); err == nil {
		t.Error("Stop() without a session should fail")
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	timer, _, clock := newTestTimer(t)

	started, err := timer.Start("persist", 25)
	if err != nil {
		t.Fatal(err)
	}
	clock.advance(5 * time.Minute)

	// A second timer over the same store sees the running session
	reloaded := NewTimer(timer.store, nil)
	reloaded.now = func() time.Time { return clock.now }
	session, ok, err := reloaded.Status()
	if err != nil || !ok {
		t.Fatalf("Status() after restart = ok=%v err=%v", ok, err)
	}
	if session.ID != started.ID {
		t.Errorf("restart lost the session: %+v", session)
	}
}
