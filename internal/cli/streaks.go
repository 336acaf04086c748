package cli

import (
	"fmt"

	"github.com/julianstephens/vitals/internal/models"
)

// StreaksCmd lists every streak counter with its record maximum
type StreaksCmd struct{}

func (c *StreaksCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Streaks"))
	for _, streak := range app.Streaks.All() {
		marker := "○"
		if streak.ActiveToday {
			marker = goodStyle.Render("●")
		}
		fmt.Printf("  %s %-8s %s %s\n",
			marker, streak.Type,
			valueStyle.Render(fmt.Sprintf("%d day%s", streak.Current, plural(streak.Current))),
			labelStyle.Render(fmt.Sprintf("(best %d)", streak.Longest)))
	}

	overall := app.Streaks.Get(models.StreakOverall)
	if overall.Current > 0 && !overall.ActiveToday {
		fmt.Println()
		fmt.Println(warnStyle.Render("  Complete your goals today to keep the overall streak alive."))
	}
	return nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
