package trends

import (
	"math"

	"github.com/julianstephens/vitals/internal/models"
	"github.com/julianstephens/vitals/internal/storage"
	"github.com/julianstephens/vitals/internal/utils"
)

// Direction describes how a metric moved between two windows
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// flatTolerance is the relative change below which movement counts as flat
const flatTolerance = 0.05

// Metric is the rolling average of one tracked value plus its movement
// against the preceding window of the same length.
type Metric struct {
	Average   float64   `json:"average"`
	Previous  float64   `json:"previous"`
	ChangePct float64   `json:"change_pct"`
	Direction Direction `json:"direction"`
}

// Summary is the rolling-window trend report over the daily log history
type Summary struct {
	Days      int    `json:"days"`
	DaysFound int    `json:"days_found"` // logs actually present in the window
	Steps     Metric `json:"steps"`
	Focus     Metric `json:"focus"`
	Score     Metric `json:"score"`
	Sleep     Metric `json:"sleep"`
}

// Summarize averages the last `days` of logs ending today and compares
// them against the window before that. Missing days simply shrink the
// sample; an empty current window yields a zero summary.
func Summarize(store storage.Provider, today string, days int) (Summary, error) {
	if days <= 0 {
		days = 7
	}

	currentStart, err := utils.DaysAgo(today, days-1)
	if err != nil {
		return Summary{}, err
	}
	previousEnd, err := utils.DaysAgo(today, days)
	if err != nil {
		return Summary{}, err
	}
	previousStart, err := utils.DaysAgo(today, 2*days-1)
	if err != nil {
		return Summary{}, err
	}

	current, err := store.GetDailyLogs(currentStart, today)
	if err != nil {
		return Summary{}, err
	}
	previous, err := store.GetDailyLogs(previousStart, previousEnd)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Days: days, DaysFound: len(current)}
	summary.Steps = buildMetric(average(current, stepsOf), average(previous, stepsOf))
	summary.Focus = buildMetric(average(current, focusOf), average(previous, focusOf))
	summary.Score = buildMetric(average(current, scoreOf), average(previous, scoreOf))
	summary.Sleep = buildMetric(average(current, sleepOf), average(previous, sleepOf))
	return summary, nil
}

func buildMetric(current, previous float64) Metric {
	m := Metric{
		Average:   current,
		Previous:  previous,
		Direction: DirectionFlat,
	}
	if previous > 0 {
		m.ChangePct = (current - previous) / previous * 100
	}

	switch {
	case previous == 0 && current == 0:
		// nothing in either window
	case previous == 0:
		m.Direction = DirectionUp
	case math.Abs(current-previous)/previous > flatTolerance:
		if current > previous {
			m.Direction = DirectionUp
		} else {
			m.Direction = DirectionDown
		}
	}
	return m
}

func average(logs []models.DailyLog, value func(models.DailyLog) float64) float64 {
	if len(logs) == 0 {
		return 0
	}
	var total float64
	for _, entry := range logs {
		total += value(entry)
	}
	return total / float64(len(logs))
}

func stepsOf(l models.DailyLog) float64 { return float64(l.Steps) }
func focusOf(l models.DailyLog) float64 { return float64(l.FocusMinutes) }
func scoreOf(l models.DailyLog) float64 { return float64(l.Score) }
func sleepOf(l models.DailyLog) float64 { return l.SleepHours }
