package cli

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/vitals/internal/config"
	"github.com/julianstephens/vitals/internal/constants"
	"github.com/julianstephens/vitals/internal/health"
	"github.com/julianstephens/vitals/internal/models"
	"github.com/julianstephens/vitals/internal/remote"
	"github.com/julianstephens/vitals/internal/storage"
)

func setupTestContext(t *testing.T) *Context {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "vitals.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	ctx := &Context{
		Config: &config.Config{},
		Store:  store,
		Sync:   remote.NewService(nil),
		Health: health.Unavailable{},
	}
	// Drain outstanding persists before the temp dir is removed
	t.Cleanup(ctx.Shutdown)
	return ctx
}

func TestTimezoneResolution(t *testing.T) {
	ctx := setupTestContext(t)

	// Fresh store: fall through to the default
	tz, err := ctx.Timezone()
	if err != nil {
		t.Fatal(err)
	}
	if tz != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want default", tz)
	}

	// Config file value wins over the default
	ctx.Config.App.Timezone = "Europe/Berlin"
	if tz, _ = ctx.Timezone(); tz != "Europe/Berlin" {
		t.Errorf("Timezone = %q, want config value", tz)
	}

	// Persisted setting wins over everything
	if err := ctx.Store.SaveSettings(models.Settings{Timezone: "Asia/Tokyo", HistoryDays: 7}); err != nil {
		t.Fatal(err)
	}
	if tz, _ = ctx.Timezone(); tz != "Asia/Tokyo" {
		t.Errorf("Timezone = %q, want persisted setting", tz)
	}
}

func TestAppBuildsOnce(t *testing.T) {
	ctx := setupTestContext(t)

	first, err := ctx.App()
	if err != nil {
		t.Fatalf("App() failed: %v", err)
	}
	second, err := ctx.App()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("App() rebuilt the component graph")
	}
}

func TestCommandSmoke(t *testing.T) {
	ctx := setupTestContext(t)

	steps := 8000
	commands := []struct {
		name string
		run  func() error
	}{
		{"log", func() error { return (&LogCmd{Steps: &steps}).Run(ctx) }},
		{"stats", func() error { return (&StatsCmd{}).Run(ctx) }},
		{"refresh", func() error { return (&RefreshCmd{}).Run(ctx) }},
		{"goals list", func() error { return (&GoalsListCmd{}).Run(ctx) }},
		{"streaks", func() error { return (&StreaksCmd{}).Run(ctx) }},
		{"advice", func() error { return (&AdviceCmd{Verbose: true}).Run(ctx) }},
		{"history", func() error { return (&HistoryCmd{Days: 7}).Run(ctx) }},
		{"goals reset", func() error { return (&GoalsResetCmd{Yes: true}).Run(ctx) }},
	}
	for _, tc := range commands {
		if err := tc.run(); err != nil {
			t.Errorf("%s failed: %v", tc.name, err)
		}
	}
}

func TestLogCmdRequiresAFlag(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&LogCmd{}).Run(ctx); err == nil {
		t.Error("empty log command should fail")
	}
}

func TestLogCmdRejectsNegative(t *testing.T) {
	ctx := setupTestContext(t)
	bad := -5
	if err := (&LogCmd{Steps: &bad}).Run(ctx); err == nil {
		t.Error("negative steps should be rejected")
	}
}

func TestGoalsSetCmdUpdatesTarget(t *testing.T) {
	ctx := setupTestContext(t)

	target := 12000.0
	cmd := &GoalsSetCmd{Type: "steps", Target: &target}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("goals set failed: %v", err)
	}

	app, err := ctx.App()
	if err != nil {
		t.Fatal(err)
	}
	if app.Goals.Targets().Steps != 12000 {
		t.Errorf("steps target = %v, want 12000", app.Goals.Targets().Steps)
	}
}
