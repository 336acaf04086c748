package cli

import (
	"fmt"

	"github.com/julianstephens/vitals/internal/models"
	"github.com/julianstephens/vitals/internal/validation"
)

// LogCmd records metrics by hand, for values no provider reports (screen
// time, pickups) or when no health provider is configured at all.
type LogCmd struct {
	Steps    *int     `help:"Step count for today."`
	Sleep    *float64 `help:"Hours slept last night."`
	Focus    *int     `help:"Focused minutes."`
	Social   *int     `help:"Social media minutes."`
	Screen   *int     `help:"Total screen time minutes."`
	Pickups  *int     `help:"Phone pickups."`
	Calories *int     `help:"Active calories burned."`
}

func (c *LogCmd) Run(ctx *Context) error {
	patch := models.MetricsPatch{
		Steps:                  c.Steps,
		SleepHours:             c.Sleep,
		FocusMinutes:           c.Focus,
		SocialMediaMinutes:     c.Social,
		TotalScreenTimeMinutes: c.Screen,
		Pickups:                c.Pickups,
		ActiveCalories:         c.Calories,
	}
	if patch == (models.MetricsPatch{}) {
		return fmt.Errorf("nothing to log, pass at least one metric flag")
	}
	if err := validation.ValidateMetricsPatch(patch); err != nil {
		return err
	}

	app, err := ctx.App()
	if err != nil {
		return err
	}

	app.Metrics.Update(patch)
	app.Metrics.Wait()

	_, result := app.Metrics.Snapshot()
	fmt.Printf("✓ Logged. Score is now %s (%s)\n",
		scoreStyle(result.Level).Render(fmt.Sprintf("%.0f", result.Score)),
		result.Level)
	return nil
}
