package cli

import (
	"context"
	"fmt"
)

// RefreshCmd pulls fresh data from the health provider and runs the daily
// bookkeeping pipeline (goal counting, streaks, today's log entry).
type RefreshCmd struct{}

func (c *RefreshCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}

	if err := app.Metrics.Refresh(context.Background()); err != nil {
		return err
	}
	app.Metrics.Wait()

	snapshot, result := app.Metrics.Snapshot()
	completed := app.Goals.CompletedCount(snapshot)

	fmt.Printf("✓ Refreshed %s\n", snapshot.Date)
	fmt.Printf("  Score %s (%s) · %d/%d goals met\n",
		scoreStyle(result.Level).Render(fmt.Sprintf("%.0f", result.Score)),
		result.Level, completed, app.Goals.TotalGoals())

	if !ctx.Health.Available() {
		fmt.Println("  (no health provider configured; metrics kept as logged)")
	}
	return nil
}
