package models

// StreakType identifies a consecutive-day completion counter
type StreakType string

const (
	StreakSteps   StreakType = "steps"
	StreakSleep   StreakType = "sleep"
	StreakFocus   StreakType = "focus"
	StreakScore   StreakType = "pvc"
	StreakOverall StreakType = "overall"
)

// AllStreakTypes returns the tracked streak types in display order
func AllStreakTypes() []StreakType {
	return []StreakType{StreakSteps, StreakSleep, StreakFocus, StreakScore, StreakOverall}
}

// Streak is a consecutive-day completion counter for one category.
// Invariant: Longest >= Current.
type Streak struct {
	Type           StreakType `json:"type"`
	Current        int        `json:"current_streak"`
	Longest        int        `json:"longest_streak"`
	LastActiveDate string     `json:"last_active_date"` // YYYY-MM-DD, empty when never active
	ActiveToday    bool       `json:"is_active_today"`
}

// StreakSet holds the streak state for every tracked type
type StreakSet map[StreakType]*Streak

// NewStreakSet returns a StreakSet with zeroed counters for every type
func NewStreakSet() StreakSet {
	set := make(StreakSet, len(AllStreakTypes()))
	for _, t := range AllStreakTypes() {
		set[t] = &Streak{Type: t}
	}
	return set
}

// Ensure returns the streak for the given type, creating a zeroed entry if
// the persisted set predates the type.
func (s StreakSet) Ensure(t StreakType) *Streak {
	if st, ok := s[t]; ok && st != nil {
		return st
	}
	st := &Streak{Type: t}
	s[t] = st
	return st
}
