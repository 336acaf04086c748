package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/vitals/internal/cli"
	"github.com/julianstephens/vitals/internal/cli/settings"
	"github.com/julianstephens/vitals/internal/cli/system"
	"github.com/julianstephens/vitals/internal/config"
	"github.com/julianstephens/vitals/internal/constants"
	"github.com/julianstephens/vitals/internal/health"
	"github.com/julianstephens/vitals/internal/keyring"
	"github.com/julianstephens/vitals/internal/logger"
	"github.com/julianstephens/vitals/internal/remote"
	"github.com/julianstephens/vitals/internal/remote/postgres"
	"github.com/julianstephens/vitals/internal/storage"
	"github.com/julianstephens/vitals/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path (YAML)." type:"path"`
	DB      string `help:"Override the local storage path (.db for SQLite, .json for the JSON store)." type:"path"`
	Debug   bool   `help:"Verbose logging to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize vitals storage."`
	Stats    cli.StatsCmd         `cmd:"" help:"Show today's metrics, score, goals, and advice." default:"1"`
	Log      cli.LogCmd           `cmd:"" help:"Record metrics by hand."`
	Refresh  cli.RefreshCmd       `cmd:"" help:"Pull fresh data from the health provider."`
	Goals    cli.GoalsCmd         `cmd:"" help:"Manage goal targets."`
	Streaks  cli.StreaksCmd       `cmd:"" help:"Show streak counters."`
	Advice   cli.AdviceCmd        `cmd:"" help:"Show the current recommendation."`
	History  cli.HistoryCmd       `cmd:"" help:"Show recent daily logs and trends."`
	Focus    cli.FocusCmd         `cmd:"" help:"Run focus sessions."`
	Sync     system.SyncCmd       `cmd:"" help:"Sync with the remote backend."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Logout   system.LogoutCmd     `cmd:"" help:"Wipe local state and forget sync credentials."`
	Conn     struct {
		SetConnection    system.KeyringSetCmd    `cmd:"" name:"set-connection" help:"Store the sync connection string in the OS keyring."`
		GetConnection    system.KeyringGetCmd    `cmd:"" name:"get-connection" help:"Show the stored connection string (password masked)."`
		DeleteConnection system.KeyringDeleteCmd `cmd:"" name:"delete-connection" help:"Remove the stored connection string."`
	} `cmd:"" name:"config" help:"Manage sync credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Productivity-vitality companion: daily score, goals, streaks, and advice"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	storePath := cfg.Storage.Path
	if CLI.DB != "" {
		storePath = CLI.DB
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || strings.EqualFold(cfg.App.LogLevel, "debug"),
		ConfigDir: filepath.Dir(storePath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	var store storage.Provider
	if strings.HasSuffix(storePath, ".json") || cfg.Storage.Driver == "json" {
		store = storage.NewJSONStore(storePath)
	} else {
		store = sqlite.NewStore(storePath)
	}

	appCtx := &cli.Context{
		Config: cfg,
		Store:  store,
		Sync:   buildSyncService(cfg),
		Health: buildHealthProvider(cfg),
	}

	err = ctx.Run(appCtx)
	appCtx.Shutdown()
	if closeErr := appCtx.Sync.Close(); closeErr != nil {
		logger.Warn("Failed to close sync backend", "error", closeErr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildSyncService wires the remote backend from the keyring-held
// connection string. Missing credentials or an unreachable backend mean
// sync silently no-ops; nothing here is fatal.
func buildSyncService(cfg *config.Config) *remote.Service {
	if !cfg.Sync.Enabled {
		return remote.NewService(nil)
	}

	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("No sync connection string stored, sync disabled")
		} else {
			logger.Warn("Could not read sync credentials from keyring", "error", err)
		}
		return remote.NewService(nil)
	}

	backend := postgres.New(connStr)
	openCtx, cancel := context.WithTimeout(context.Background(), constants.SyncCallTimeout)
	defer cancel()
	if err := backend.Open(openCtx); err != nil {
		logger.Warn("Sync backend unreachable, continuing offline", "error", err)
		return remote.NewService(nil)
	}
	return remote.NewService(backend)
}

func buildHealthProvider(cfg *config.Config) health.Provider {
	if cfg.Health.Provider == "file" && cfg.Health.SnapshotPath != "" {
		return health.NewFileProvider(cfg.Health.SnapshotPath)
	}
	return health.Unavailable{}
}
