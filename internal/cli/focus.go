package cli

import (
	"fmt"
	"time"
)

type FocusCmd struct {
	Start  FocusStartCmd  `cmd:"" help:"Start a focus session."`
	Status FocusStatusCmd `cmd:"" help:"Show the active session." default:"1"`
	Pause  FocusPauseCmd  `cmd:"" help:"Pause the running session."`
	Resume FocusResumeCmd `cmd:"" help:"Resume a paused session."`
	Stop   FocusStopCmd   `cmd:"" help:"End the session and credit the time."`
}

type FocusStartCmd struct {
	Label   string `arg:"" optional:"" help:"What you are focusing on."`
	Minutes int    `help:"Planned session length in minutes." default:"0"`
}

func (c *FocusStartCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}

	session, err := app.Timer.Start(c.Label, c.Minutes)
	if err != nil {
		return err
	}

	label := session.Label
	if label == "" {
		label = "focus"
	}
	fmt.Printf("▶ Started %s session for %d minutes\n", label, session.PlannedMinutes)
	return nil
}

type FocusStatusCmd struct{}

func (c *FocusStatusCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}

	session, ok, err := app.Timer.Status()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No active focus session.")
		return nil
	}

	elapsed := session.Elapsed(time.Now())
	remaining := time.Duration(session.PlannedMinutes)*time.Minute - elapsed

	state := valueStyle.Render(string(session.State))
	fmt.Printf("%s %s · elapsed %s", state, session.Label, formatDuration(elapsed))
	if remaining > 0 {
		fmt.Printf(" · %s left", formatDuration(remaining))
	} else {
		fmt.Print(" · " + goodStyle.Render("planned time done"))
	}
	fmt.Println()
	return nil
}

type FocusPauseCmd struct{}

func (c *FocusPauseCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	if _, err := app.Timer.Pause(); err != nil {
		return err
	}
	fmt.Println("⏸ Session paused")
	return nil
}

type FocusResumeCmd struct{}

func (c *FocusResumeCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}
	if _, err := app.Timer.Resume(); err != nil {
		return err
	}
	fmt.Println("▶ Session resumed")
	return nil
}

type FocusStopCmd struct{}

func (c *FocusStopCmd) Run(ctx *Context) error {
	app, err := ctx.App()
	if err != nil {
		return err
	}

	_, credited, err := app.Timer.Stop()
	if err != nil {
		return err
	}
	app.Metrics.Wait()

	if credited == 0 {
		fmt.Println("⏹ Session ended (too short to count)")
		return nil
	}

	snapshot, _ := app.Metrics.Snapshot()
	fmt.Printf("⏹ Session ended · %d minutes credited (%dm focused today)\n",
		credited, snapshot.FocusMinutes)
	return nil
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
