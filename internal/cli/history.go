package cli

import (
	"fmt"

	"github.com/julianstephens/vitals/internal/trends"
	"github.com/julianstephens/vitals/internal/utils"
)

// HistoryCmd lists recent daily logs and the rolling trend summary
type HistoryCmd struct {
	Days int `help:"How many days to show (defaults to the history setting)." default:"0"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}

	days := c.Days
	if days <= 0 {
		days = ctx.HistoryDays()
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}
	start, err := utils.DaysAgo(today, days-1)
	if err != nil {
		return err
	}

	logs, err := ctx.Store.GetDailyLogs(start, today)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Last %d days", days)))
	if len(logs) == 0 {
		fmt.Println(labelStyle.Render("  No history yet. Run 'vitals refresh' or 'vitals log' to start."))
	}
	for _, entry := range logs {
		fmt.Printf("  %s  score %3d · %6d steps · %4dm focus · %d/%d goals\n",
			entry.Date, entry.Score, entry.Steps, entry.FocusMinutes,
			entry.GoalsMet, app.Goals.TotalGoals())
	}

	summary, err := trends.Summarize(ctx.Store, today, 7)
	if err != nil {
		return err
	}
	if summary.DaysFound == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("7-day trend"))
	fmt.Printf("  steps %s %.0f · focus %s %.0fm · score %s %.0f\n",
		arrow(summary.Steps.Direction), summary.Steps.Average,
		arrow(summary.Focus.Direction), summary.Focus.Average,
		arrow(summary.Score.Direction), summary.Score.Average)
	return nil
}

func arrow(d trends.Direction) string {
	switch d {
	case trends.DirectionUp:
		return goodStyle.Render("↑")
	case trends.DirectionDown:
		return badStyle.Render("↓")
	default:
		return labelStyle.Render("→")
	}
}
