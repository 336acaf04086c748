package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/vitals/internal/advice"
	"github.com/julianstephens/vitals/internal/models"
)

// StatsCmd shows today's snapshot: metrics, score, goals, and advice
type StatsCmd struct {
	Refresh bool `help:"Pull fresh data from the health provider first." default:"false"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}

	if c.Refresh {
		if err := app.Metrics.Refresh(context.Background()); err != nil {
			return err
		}
	}

	snapshot, result := app.Metrics.Snapshot()

	fmt.Println(titleStyle.Render("Today · " + snapshot.Date))
	fmt.Println()
	fmt.Printf("%s %s (%s)\n",
		labelStyle.Render("Score:"),
		scoreStyle(result.Level).Render(fmt.Sprintf("%.0f", result.Score)),
		result.Level)
	fmt.Printf("%s steps %+.1f · focus %+.1f · social %-.1f\n",
		labelStyle.Render("Breakdown:"),
		result.Breakdown.StepsContribution,
		result.Breakdown.FocusContribution,
		result.Breakdown.SocialMediaPenalty)
	fmt.Println()

	fmt.Printf("%s %s steps · %s sleep · %s focus · %s kcal\n",
		labelStyle.Render("Metrics:"),
		valueStyle.Render(fmt.Sprintf("%d", snapshot.Steps)),
		valueStyle.Render(formatSleep(snapshot)),
		valueStyle.Render(fmt.Sprintf("%dm", snapshot.FocusMinutes)),
		valueStyle.Render(fmt.Sprintf("%d", snapshot.ActiveCalories)))
	if snapshot.SocialMediaMinutes > 0 || snapshot.Pickups > 0 {
		fmt.Printf("%s %dm social · %d pickups\n",
			labelStyle.Render("Screen:"),
			snapshot.SocialMediaMinutes, snapshot.Pickups)
	}
	fmt.Println()

	fmt.Println(titleStyle.Render("Goals"))
	for _, goal := range app.Goals.Progress(snapshot) {
		marker := "○"
		if goal.Completed {
			marker = goodStyle.Render("●")
		}
		fmt.Printf("  %s %-8s %s (%s / %s)\n",
			marker, goal.Type, FormatPercent(goal.Percentage),
			formatGoalValue(goal.Type, goal.Current),
			formatGoalValue(goal.Type, goal.Target))
	}
	fmt.Println()

	rec := advice.Select(snapshot, result)
	fmt.Println(titleStyle.Render("Advice"))
	fmt.Printf("  %s %s: %s\n", rec.Icon, valueStyle.Render(rec.Title), rec.Message)

	return nil
}

func formatSleep(m models.DailyMetrics) string {
	if m.SleepHours == nil {
		return "–h"
	}
	return fmt.Sprintf("%.1fh", *m.SleepHours)
}

func formatGoalValue(goalType models.GoalType, v float64) string {
	switch goalType {
	case models.GoalSleep:
		return fmt.Sprintf("%.1fh", v)
	case models.GoalFocus:
		return fmt.Sprintf("%.0fm", v)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
