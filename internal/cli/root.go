package cli

import (
	"fmt"

	"github.com/julianstephens/vitals/internal/config"
	"github.com/julianstephens/vitals/internal/constants"
	"github.com/julianstephens/vitals/internal/focustimer"
	"github.com/julianstephens/vitals/internal/goals"
	"github.com/julianstephens/vitals/internal/health"
	"github.com/julianstephens/vitals/internal/metrics"
	"github.com/julianstephens/vitals/internal/remote"
	"github.com/julianstephens/vitals/internal/storage"
	"github.com/julianstephens/vitals/internal/streaks"
	"github.com/julianstephens/vitals/internal/utils"
)

type Context struct {
	Config *config.Config
	Store  storage.Provider
	Sync   *remote.Service
	Health health.Provider

	app *App
}

// App bundles the core components wired over the loaded store. Built once
// per command invocation.
type App struct {
	Metrics *metrics.Store
	Goals   *goals.Tracker
	Streaks *streaks.Tracker
	Timer   *focustimer.Timer
}

// App loads the store and constructs the component graph. Repeated calls
// return the same instance.
func (c *Context) App() (*App, error) {
	if c.app != nil {
		return c.app, nil
	}
	if err := c.Store.Load(); err != nil {
		return nil, err
	}

	timezone, err := c.Timezone()
	if err != nil {
		return nil, err
	}

	goalTracker, err := goals.NewTracker(c.Store, c.Sync)
	if err != nil {
		return nil, err
	}

	today, err := utils.GetTodayInTimezone(timezone)
	if err != nil {
		return nil, err
	}
	streakTracker, err := streaks.NewTracker(c.Store, c.Sync, today)
	if err != nil {
		return nil, err
	}

	metricsStore, err := metrics.NewStore(c.Store, c.Sync, c.Health, goalTracker, streakTracker, timezone)
	if err != nil {
		return nil, err
	}

	c.app = &App{
		Metrics: metricsStore,
		Goals:   goalTracker,
		Streaks: streakTracker,
		Timer:   focustimer.NewTimer(c.Store, metricsStore),
	}
	return c.app, nil
}

// Timezone resolves the effective timezone: the persisted setting wins,
// then the config file, then the system default.
func (c *Context) Timezone() (string, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", err
	}
	if settings.Timezone != "" {
		return settings.Timezone, nil
	}
	if c.Config != nil && c.Config.App.Timezone != "" {
		return c.Config.App.Timezone, nil
	}
	return constants.DefaultTimezone, nil
}

// Today returns the current calendar day in the effective timezone
func (c *Context) Today() (string, error) {
	timezone, err := c.Timezone()
	if err != nil {
		return "", err
	}
	return utils.GetTodayInTimezone(timezone)
}

// HistoryDays resolves how many days the history view covers by default
func (c *Context) HistoryDays() int {
	settings, err := c.Store.GetSettings()
	if err == nil && settings.HistoryDays > 0 {
		return settings.HistoryDays
	}
	if c.Config != nil && c.Config.App.HistoryDays > 0 {
		return c.Config.App.HistoryDays
	}
	return constants.DefaultHistoryDays
}

// Shutdown flushes pending background work before the process exits
func (c *Context) Shutdown() {
	if c.app != nil {
		c.app.Metrics.Wait()
	}
	if c.Sync != nil {
		c.Sync.Wait()
	}
}

// FormatPercent renders a completion percentage for display
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p)
}
