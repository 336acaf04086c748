package focustimer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/vitals/internal/constants"
	"github.com/julianstephens/vitals/internal/logger"
	"github.com/julianstephens/vitals/internal/metrics"
	"github.com/julianstephens/vitals/internal/models"
	"github.com/julianstephens/vitals/internal/storage"
)

// Timer drives the single active focus session. The session survives
// process restarts through the storage provider; on stop, the elapsed
// minutes fold into the day's focus-minute tally.
type Timer struct {
	store   storage.Provider
	metrics *metrics.Store
	now     func() time.Time
}

// NewTimer returns a timer over the given store. Completed sessions are
// reported to the metrics store.
func NewTimer(store storage.Provider, metricsStore *metrics.Store) *Timer {
	return &Timer{
		store:   store,
		metrics: metricsStore,
		now:     time.Now,
	}
}

// Start begins a new session. Starting while one is running or paused is
// an error; the caller should stop or resume instead.
func (t *Timer) Start(label string, plannedMinutes int) (models.FocusSession, error) {
	if plannedMinutes <= 0 {
		plannedMinutes = constants.DefaultPomodoroMin
	}

	if existing, ok, err := t.store.GetFocusSession(); err != nil {
		return models.FocusSession{}, err
	} else if ok && existing.State != models.FocusFinished {
		return models.FocusSession{}, fmt.Errorf("a focus session is already active; stop it first")
	}

	session := models.FocusSession{
		ID:             uuid.NewString(),
		Label:          label,
		State:          models.FocusRunning,
		PlannedMinutes: plannedMinutes,
		StartedAt:      t.now(),
		Segments:       []models.FocusSegment{{Start: t.now()}},
	}
	if err := t.store.SaveFocusSession(session); err != nil {
		return models.FocusSession{}, err
	}
	logger.Debug("Focus session started", "id", session.ID, "planned", plannedMinutes)
	return session, nil
}

// Status returns the active session, if any
func (t *Timer) Status() (models.FocusSession, bool, error) {
	session, ok, err := t.store.GetFocusSession()
	if err != nil || !ok {
		return models.FocusSession{}, false, err
	}
	if session.State == models.FocusFinished {
		return models.FocusSession{}, false, nil
	}
	return session, true, nil
}

// Pause closes the open segment. Pausing a paused session is a no-op.
func (t *Timer) Pause() (models.FocusSession, error) {
	session, ok, err := t.Status()
	if err != nil {
		return models.FocusSession{}, err
	}
	if !ok {
		return models.FocusSession{}, fmt.Errorf("no active focus session")
	}
	if session.State == models.FocusPaused {
		return session, nil
	}

	closeOpenSegment(&session, t.now())
	session.State = models.FocusPaused
	if err := t.store.SaveFocusSession(session); err != nil {
		return models.FocusSession{}, err
	}
	return session, nil
}

// Resume opens a new segment on a paused session
func (t *Timer) Resume() (models.FocusSession, error) {
	session, ok, err := t.Status()
	if err != nil {
		return models.FocusSession{}, err
	}
	if !ok {
		return models.FocusSession{}, fmt.Errorf("no active focus session")
	}
	if session.State == models.FocusRunning {
		return session, nil
	}

	session.Segments = append(session.Segments, models.FocusSegment{Start: t.now()})
	session.State = models.FocusRunning
	if err := t.store.SaveFocusSession(session); err != nil {
		return models.FocusSession{}, err
	}
	return session, nil
}

// Stop ends the session and returns the minutes credited to the day.
// Sessions shorter than the minimum threshold are discarded rather than
// credited, so an accidental start does not pollute the tally.
func (t *Timer) Stop() (models.FocusSession, int, error) {
	session, ok, err := t.Status()
	if err != nil {
		return models.FocusSession{}, 0, err
	}
	if !ok {
		return models.FocusSession{}, 0, fmt.Errorf("no active focus session")
	}

	now := t.now()
	closeOpenSegment(&session, now)
	session.State = models.FocusFinished
	session.EndedAt = &now

	elapsed := session.Elapsed(now)
	credited := 0
	if elapsed >= constants.MinFocusDurationSec*time.Second {
		credited = int(elapsed / time.Minute)
	} else {
		logger.Debug("Focus session below minimum duration, discarding", "elapsed", elapsed)
	}

	if err := t.store.ClearFocusSession(); err != nil {
		return models.FocusSession{}, 0, err
	}

	if credited > 0 && t.metrics != nil {
		snapshot, _ := t.metrics.Snapshot()
		total := snapshot.FocusMinutes + credited
		t.metrics.Update(models.MetricsPatch{FocusMinutes: &total})
	}
	return session, credited, nil
}

func closeOpenSegment(session *models.FocusSession, at time.Time) {
	for i := range session.Segments {
		if session.Segments[i].End == nil {
			end := at
			session.Segments[i].End = &end
		}
	}
}
