package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/vitals/internal/constants"
	"github.com/julianstephens/vitals/internal/logger"
)

// Config is the process-level configuration, loaded once at startup.
// Everything here has a sensible default; a missing config file is not an
// error.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Storage StorageConfig `mapstructure:"storage"`
	Health  HealthConfig  `mapstructure:"health"`
	Sync    SyncConfig    `mapstructure:"sync"`
}

type AppConfig struct {
	LogLevel    string `mapstructure:"log_level"`
	Timezone    string `mapstructure:"timezone"`
	HistoryDays int    `mapstructure:"history_days"`
}

type StorageConfig struct {
	// Driver selects the local store: "sqlite" or "json"
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type HealthConfig struct {
	// Provider selects the health data source: "none" or "file"
	Provider string `mapstructure:"provider"`
	// SnapshotPath is the JSON snapshot read by the file provider
	SnapshotPath string `mapstructure:"snapshot_path"`
}

type SyncConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads the config file (explicit path, or the default search
// locations), layers VITALS_* environment variables on top, and fills the
// rest from defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, constants.AppName))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(strings.ToUpper(constants.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Debug("No config file found, using defaults")
	} else {
		logger.Debug("Loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Storage.Path = ExpandHome(cfg.Storage.Path)
	cfg.Health.SnapshotPath = ExpandHome(cfg.Health.SnapshotPath)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.timezone", constants.DefaultTimezone)
	v.SetDefault("app.history_days", constants.DefaultHistoryDays)

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", constants.DefaultConfigPath)

	v.SetDefault("health.provider", "none")
	v.SetDefault("health.snapshot_path", "")

	v.SetDefault("sync.enabled", true)
}

// ExpandHome resolves a leading ~/ against the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
