package models

import (
	"fmt"

	"github.com/julianstephens/vitals/internal/constants"
)

// Settings represents application-wide settings
type Settings struct {
	Timezone    string `json:"timezone"`     // IANA timezone name (e.g. "America/New_York", or "Local" for system timezone)
	HistoryDays int    `json:"history_days"` // default window for the history command
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingHistoryDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.HistoryDays); err != nil {
				return Settings{}, fmt.Errorf("parsing history_days: %w", err)
			}
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:    settings.Timezone,
		constants.SettingHistoryDays: fmt.Sprintf("%d", settings.HistoryDays),
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.HistoryDays <= 0 {
		settings.HistoryDays = constants.DefaultHistoryDays
	}
}
