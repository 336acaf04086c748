package validation

import (
	"fmt"
	"math"

	"github.com/julianstephens/vitals/internal/models"
	"github.com/julianstephens/vitals/internal/utils"
)

// ValidateGoalType checks that the given string names one of the five fixed
// goal types.
func ValidateGoalType(s string) (models.GoalType, error) {
	t := models.GoalType(s)
	for _, known := range models.AllGoalTypes() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown goal type %q (valid: steps, sleep, focus, pvc, calories)", s)
}

// ValidateGoalTarget checks that a goal target is a positive finite number.
// The UI hints at this check but the boundary here is authoritative.
func ValidateGoalTarget(target float64) error {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return fmt.Errorf("goal target must be a finite number")
	}
	if target <= 0 {
		return fmt.Errorf("goal target must be greater than zero, got %v", target)
	}
	return nil
}

// ValidateMetricsPatch checks that every present field of a partial metrics
// update is non-negative.
func ValidateMetricsPatch(patch models.MetricsPatch) error {
	check := func(name string, v *int) error {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", name, *v)
		}
		return nil
	}

	if err := check("steps", patch.Steps); err != nil {
		return err
	}
	if patch.SleepHours != nil && (*patch.SleepHours < 0 || math.IsNaN(*patch.SleepHours)) {
		return fmt.Errorf("sleep hours must be non-negative, got %v", *patch.SleepHours)
	}
	if err := check("active calories", patch.ActiveCalories); err != nil {
		return err
	}
	if err := check("focus minutes", patch.FocusMinutes); err != nil {
		return err
	}
	if err := check("social media minutes", patch.SocialMediaMinutes); err != nil {
		return err
	}
	if err := check("screen time minutes", patch.TotalScreenTimeMinutes); err != nil {
		return err
	}
	return check("pickups", patch.Pickups)
}

// ValidateSettings checks settings values at the boundary.
func ValidateSettings(settings models.Settings) error {
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	if settings.HistoryDays < 0 {
		return fmt.Errorf("history days must be non-negative, got %d", settings.HistoryDays)
	}
	return nil
}
