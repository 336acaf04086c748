package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/vitals/internal/models"
)

type GoalsCmd struct {
	List  GoalsListCmd  `cmd:"" help:"Show goal targets and today's progress." default:"1"`
	Set   GoalsSetCmd   `cmd:"" help:"Change a goal target."`
	Reset GoalsResetCmd `cmd:"" help:"Restore all goal targets to their defaults."`
}

type GoalsListCmd struct{}

func (c *GoalsListCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}

	snapshot, _ := app.Metrics.Snapshot()
	fmt.Println(titleStyle.Render("Goals"))
	for _, goal := range app.Goals.Progress(snapshot) {
		marker := "○"
		if goal.Completed {
			marker = goodStyle.Render("●")
		}
		fmt.Printf("  %s %-8s target %s · today %s (%s)\n",
			marker, goal.Type,
			valueStyle.Render(formatGoalValue(goal.Type, goal.Target)),
			formatGoalValue(goal.Type, goal.Current),
			FormatPercent(goal.Percentage))
	}
	return nil
}

type GoalsSetCmd struct {
	Type   string   `arg:"" optional:"" help:"Goal type: steps, sleep, focus, pvc, or calories."`
	Target *float64 `arg:"" optional:"" help:"New target value."`
}

func (c *GoalsSetCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}

	goalType := c.Type
	target := c.Target
	if goalType == "" || target == nil {
		picked, value, err := promptForGoal(app)
		if err != nil {
			return err
		}
		goalType = picked
		target = &value
	}

	if err := app.Goals.SetTarget(models.GoalType(goalType), *target); err != nil {
		return err
	}
	fmt.Printf("✓ %s target set to %s\n", goalType,
		formatGoalValue(models.GoalType(goalType), *target))
	return nil
}

func promptForGoal(app *App) (string, float64, error) {
	targets := app.Goals.Targets()

	var goalType string
	var raw string
	options := make([]huh.Option[string], 0, len(models.AllGoalTypes()))
	for _, t := range models.AllGoalTypes() {
		current, _ := targets.TargetFor(t)
		options = append(options, huh.NewOption(
			fmt.Sprintf("%s (currently %s)", t, formatGoalValue(t, current)), string(t)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which goal?").
				Options(options...).
				Value(&goalType),
			huh.NewInput().
				Title("New target").
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(s, 64)
					if err != nil {
						return fmt.Errorf("enter a number")
					}
					if v <= 0 {
						return fmt.Errorf("target must be greater than zero")
					}
					return nil
				}).
				Value(&raw),
		),
	)
	if err := form.Run(); err != nil {
		return "", 0, fmt.Errorf("interactive form error: %w", err)
	}

	target, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, err
	}
	return goalType, target, nil
}

type GoalsResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *GoalsResetCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Reset all goal targets to their defaults?").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := app.Goals.Reset(); err != nil {
		return err
	}
	fmt.Println("✓ Goal targets reset to defaults")
	return nil
}
