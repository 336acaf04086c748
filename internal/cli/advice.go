package cli

import (
	"fmt"

	"github.com/julianstephens/vitals/internal/advice"
)

// AdviceCmd prints the current recommendation and which strategy chose it
type AdviceCmd struct {
	Verbose bool `help:"Show the selected strategy and priority." short:"v"`
}

func (c *AdviceCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}

	snapshot, result := app.Metrics.Snapshot()
	rec := advice.Select(snapshot, result)

	fmt.Printf("%s %s\n", rec.Icon, titleStyle.Render(rec.Title))
	fmt.Printf("  %s\n", rec.Message)
	if rec.ActionLabel != "" {
		fmt.Printf("  → %s\n", rec.ActionLabel)
	}
	if c.Verbose {
		strategy := advice.StrategyFor(snapshot, result)
		fmt.Printf("\n%s strategy=%s priority=%s category=%s\n",
			labelStyle.Render("Selection:"), strategy, rec.Priority, rec.Category)
	}
	return nil
}
