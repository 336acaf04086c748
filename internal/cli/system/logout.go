package system

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/vitals/internal/cli"
	"github.com/julianstephens/vitals/internal/keyring"
)

// LogoutCmd wipes all app-local state and forgets the sync credentials
type LogoutCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Wipe all local data and forget sync credentials?").
					Description("Remote data on the sync backend is kept.").
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

	if err := ctx.Store.Load(); err == nil {
		if err := ctx.Store.Wipe(); err != nil {
			return fmt.Errorf("failed to wipe local state: %w", err)
		}
	}

	if err := keyring.DeleteConnectionString(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to remove sync credentials: %w", err)
	}

	fmt.Println("✓ Logged out. Local state wiped and sync credentials removed.")
	return nil
}
