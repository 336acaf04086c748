package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/vitals/internal/cli"
	"github.com/julianstephens/vitals/internal/keyring"
	"github.com/julianstephens/vitals/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: local storage loadable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Local storage: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Local storage: OK (%s)\n", ctx.Store.GetConfigPath())
		storeReachable = true
	}

	// Check 2: timezone setting resolves
	if storeReachable {
		if err := checkTimezone(ctx); err != nil {
			fmt.Printf("❌ Timezone setting: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Timezone setting: OK\n")
		}
	} else {
		fmt.Printf("⊘ Timezone setting: SKIPPED (storage not reachable)\n")
	}

	// Check 3: OS keyring
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable; sync credentials cannot be stored\n")
	}

	// Check 4: sync backend (warning only, sync is best-effort)
	if _, err := keyring.GetConnectionString(); errors.Is(err, keyring.ErrNotFound) {
		fmt.Printf("ℹ Sync backend: not configured\n")
	} else if err != nil {
		fmt.Printf("⚠ Sync backend: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else if ctx.Sync.Enabled() {
		fmt.Printf("✓ Sync backend: OK\n")
	} else {
		fmt.Printf("⚠ Sync backend: WARNING\n")
		fmt.Printf("   Configured but unreachable this run\n")
	}

	// Check 5: health provider
	if ctx.Health != nil && ctx.Health.Available() {
		fmt.Printf("✓ Health provider: OK\n")
	} else {
		fmt.Printf("ℹ Health provider: not configured (use 'vitals log' to record metrics)\n")
	}

	fmt.Println()
	if hasError {
		return errors.New("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	timezone, err := ctx.Timezone()
	if err != nil {
		return err
	}
	if !utils.ValidateTimezone(timezone) {
		return fmt.Errorf("invalid timezone %q", timezone)
	}
	return nil
}
