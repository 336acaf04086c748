package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/vitals/internal/cli"
	"github.com/julianstephens/vitals/internal/keyring"
)

type SyncCmd struct {
	Now    SyncNowCmd    `cmd:"" help:"Push local state to the sync backend (or pull with --pull)." default:"1"`
	Status SyncStatusCmd `cmd:"" help:"Show sync configuration and reachability."`
}

type SyncNowCmd struct {
	Pull bool `help:"Adopt goals and streaks from the backend instead of pushing."`
}

func (c *SyncNowCmd) Run(ctx *cli.Context) error {
	if !ctx.Sync.Enabled() {
		return errors.New("sync is not configured. Store a connection string with 'vitals config set-connection' first")
	}

	app, err := ctx.App()
	if err != nil {
		return err
	}
	today, err := ctx.Today()
	if err != nil {
		return err
	}

	if c.Pull {
		pulled := 0
		if goals, ok := ctx.Sync.PullGoals(context.Background()); ok {
			if err := app.Goals.Adopt(goals); err != nil {
				return err
			}
			pulled++
		}
		if streaks, ok := ctx.Sync.PullStreaks(context.Background()); ok {
			if err := app.Streaks.Adopt(streaks, today); err != nil {
				return err
			}
			pulled++
		}
		if pulled == 0 {
			fmt.Println("Nothing to pull; the backend has no state yet.")
			return nil
		}
		fmt.Println("✓ Adopted goals and streaks from the sync backend")
		return nil
	}

	ctx.Sync.PushGoals(app.Goals.Targets())
	ctx.Sync.PushStreaks(app.Streaks.Set())
	if entry, ok, err := ctx.Store.GetDailyLog(today); err == nil && ok {
		ctx.Sync.PushDailyLog(entry)
	}
	ctx.Sync.Wait()

	fmt.Println("✓ Pushed goals, streaks, and today's log to the sync backend")
	return nil
}

type SyncStatusCmd struct{}

func (c *SyncStatusCmd) Run(ctx *cli.Context) error {
	if _, err := keyring.GetConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("ℹ No sync backend configured")
			fmt.Println("  Store a connection string with 'vitals config set-connection'")
			return nil
		}
		return err
	}
	fmt.Println("✓ Sync connection string is stored in the OS keyring")

	if ctx.Sync.Enabled() {
		fmt.Println("✓ Sync backend is reachable")
	} else {
		fmt.Println("❌ Sync backend could not be reached this run (see logs)")
	}
	return nil
}
