package models

// ScoreLevel buckets a composite score into a display band
type ScoreLevel string

const (
	LevelPeak     ScoreLevel = "peak"
	LevelHigh     ScoreLevel = "high"
	LevelModerate ScoreLevel = "moderate"
	LevelLow      ScoreLevel = "low"
	LevelRest     ScoreLevel = "rest"
)

// ScoreBreakdown holds the individual contributions to the composite score
type ScoreBreakdown struct {
	StepsContribution  float64 `json:"steps_contribution"`
	FocusContribution  float64 `json:"focus_contribution"`
	SocialMediaPenalty float64 `json:"social_media_penalty"`
}

// ScoreResult is the composite productivity-vitality score derived from a
// daily snapshot. It is recomputed on every read and never persisted as
// authoritative state.
type ScoreResult struct {
	Score     float64        `json:"score"`     // clamped to [0,100]
	RawScore  float64        `json:"raw_score"` // unclamped
	Breakdown ScoreBreakdown `json:"breakdown"`
	Level     ScoreLevel     `json:"level"`
}
