package models

import "time"

// FocusState is the lifecycle state of a focus session
type FocusState string

const (
	FocusRunning  FocusState = "running"
	FocusPaused   FocusState = "paused"
	FocusFinished FocusState = "finished"
)

// FocusSegment is one uninterrupted stretch of a focus session
type FocusSegment struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"` // nil while the segment is open
}

// FocusSession is a single Pomodoro-style focus session. At most one
// session is active at a time; pausing closes the open segment and
// resuming opens a new one.
type FocusSession struct {
	ID             string         `json:"id"`
	Label          string         `json:"label,omitempty"`
	State          FocusState     `json:"state"`
	PlannedMinutes int            `json:"planned_minutes"`
	StartedAt      time.Time      `json:"started_at"`
	EndedAt        *time.Time     `json:"ended_at,omitempty"`
	Segments       []FocusSegment `json:"segments"`
}

// Elapsed returns the total focused duration across all segments, with the
// open segment measured against the given instant.
func (s FocusSession) Elapsed(now time.Time) time.Duration {
	var total time.Duration
	for _, seg := range s.Segments {
		end := now
		if seg.End != nil {
			end = *seg.End
		}
		if end.After(seg.Start) {
			total += end.Sub(seg.Start)
		}
	}
	return total
}
