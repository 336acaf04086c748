package score

import "github.com/julianstephens/vitals/internal/models"

// Level thresholds for the composite score
const (
	thresholdPeak     = 80
	thresholdHigh     = 60
	thresholdModerate = 40
	thresholdLow      = 20
)

// Compute derives the composite productivity-vitality score from a daily
// snapshot. The formula is fixed: steps and focus time contribute, social
// media time penalizes, and the result is clamped to [0,100].
func Compute(metrics models.DailyMetrics) models.ScoreResult {
	breakdown := models.ScoreBreakdown{
		StepsContribution:  float64(metrics.Steps) / 100,
		FocusContribution:  float64(metrics.FocusMinutes) / 10,
		SocialMediaPenalty: float64(metrics.SocialMediaMinutes) / 5,
	}

	raw := breakdown.StepsContribution + breakdown.FocusContribution - breakdown.SocialMediaPenalty

	return models.ScoreResult{
		Score:     clamp(raw, 0, 100),
		RawScore:  raw,
		Breakdown: breakdown,
		Level:     LevelFor(clamp(raw, 0, 100)),
	}
}

// LevelFor maps a clamped score onto its display band
func LevelFor(score float64) models.ScoreLevel {
	switch {
	case score >= thresholdPeak:
		return models.LevelPeak
	case score >= thresholdHigh:
		return models.LevelHigh
	case score >= thresholdModerate:
		return models.LevelModerate
	case score >= thresholdLow:
		return models.LevelLow
	default:
		return models.LevelRest
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
