package settings

import (
	"fmt"

	"github.com/julianstephens/vitals/internal/cli"
	"github.com/julianstephens/vitals/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone    *string `help:"IANA timezone name (or 'Local') used for day boundaries."`
	HistoryDays *int    `help:"Default number of days shown by the history command."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List || (c.Timezone == nil && c.HistoryDays == nil) {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:     %s\n", settings.Timezone)
		fmt.Printf("  History Days: %d\n", settings.HistoryDays)
		if c.Timezone == nil && c.HistoryDays == nil && !c.List {
			fmt.Println("\nUse flags to update, e.g. --timezone America/New_York")
		}
		return nil
	}

	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
	}
	if c.HistoryDays != nil {
		settings.HistoryDays = *c.HistoryDays
	}
	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
