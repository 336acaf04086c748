package models

import "github.com/julianstephens/vitals/internal/constants"

// GoalType identifies one of the five fixed goal categories
type GoalType string

const (
	GoalSteps    GoalType = "steps"
	GoalSleep    GoalType = "sleep"
	GoalFocus    GoalType = "focus"
	GoalScore    GoalType = "pvc"
	GoalCalories GoalType = "calories"
)

// AllGoalTypes returns the closed set of goal types in display order
func AllGoalTypes() []GoalType {
	return []GoalType{GoalSteps, GoalSleep, GoalFocus, GoalScore, GoalCalories}
}

// Goal is the derived progress of one goal type against its target
type Goal struct {
	Type       GoalType `json:"type"`
	Target     float64  `json:"target"`
	Current    float64  `json:"current"`
	Percentage float64  `json:"percentage"` // clamped at 100
	Completed  bool     `json:"completed"`
}

// GoalSet holds the user-settable target for each goal type. Zero values
// are treated as "unset" and filled from defaults on load.
type GoalSet struct {
	Steps          float64 `json:"steps"`
	SleepHours     float64 `json:"sleep_hours"`
	FocusMinutes   float64 `json:"focus_minutes"`
	Score          float64 `json:"score"`
	ActiveCalories float64 `json:"active_calories"`
}

// DefaultGoalSet returns the factory-default targets
func DefaultGoalSet() GoalSet {
	return GoalSet{
		Steps:          constants.DefaultStepsTarget,
		SleepHours:     constants.DefaultSleepTarget,
		FocusMinutes:   constants.DefaultFocusTarget,
		Score:          constants.DefaultScoreTarget,
		ActiveCalories: constants.DefaultCaloriesTarget,
	}
}

// TargetFor returns the target for the given goal type
func (g GoalSet) TargetFor(t GoalType) (float64, bool) {
	switch t {
	case GoalSteps:
		return g.Steps, true
	case GoalSleep:
		return g.SleepHours, true
	case GoalFocus:
		return g.FocusMinutes, true
	case GoalScore:
		return g.Score, true
	case GoalCalories:
		return g.ActiveCalories, true
	default:
		return 0, false
	}
}

// SetTarget assigns the target for the given goal type. Unknown types are
// ignored and reported via the return value.
func (g *GoalSet) SetTarget(t GoalType, target float64) bool {
	switch t {
	case GoalSteps:
		g.Steps = target
	case GoalSleep:
		g.SleepHours = target
	case GoalFocus:
		g.FocusMinutes = target
	case GoalScore:
		g.Score = target
	case GoalCalories:
		g.ActiveCalories = target
	default:
		return false
	}
	return true
}

// ApplyDefaultGoals fills missing (non-positive) targets from the defaults.
// Persisted sets written by older versions may lack fields.
func ApplyDefaultGoals(g *GoalSet) {
	defaults := DefaultGoalSet()
	if g.Steps <= 0 {
		g.Steps = defaults.Steps
	}
	if g.SleepHours <= 0 {
		g.SleepHours = defaults.SleepHours
	}
	if g.FocusMinutes <= 0 {
		g.FocusMinutes = defaults.FocusMinutes
	}
	if g.Score <= 0 {
		g.Score = defaults.Score
	}
	if g.ActiveCalories <= 0 {
		g.ActiveCalories = defaults.ActiveCalories
	}
}
