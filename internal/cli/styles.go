package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/vitals/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// scoreStyle picks a color band for the composite score display
func scoreStyle(level models.ScoreLevel) lipgloss.Style {
	switch level {
	case models.LevelPeak, models.LevelHigh:
		return goodStyle
	case models.LevelModerate:
		return warnStyle
	default:
		return badStyle
	}
}
