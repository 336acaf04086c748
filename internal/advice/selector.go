package advice

import (
	"github.com/julianstephens/vitals/internal/models"
)

// Strategy identifies which coaching rule list applies to the current state
type Strategy string

const (
	StrategyHighPerformance Strategy = "high_performance"
	StrategyRecovery        Strategy = "recovery"
	StrategyBalance         Strategy = "balance"
)

// Score thresholds for strategy selection
const (
	highPerformanceScore = 70
	recoveryScore        = 40
)

// Recovery override thresholds. These fire regardless of score: a depleted
// user should never be pushed harder just because their numbers look good.
const (
	overrideSleepHours  = 5.5
	overrideSocialMin   = 120
	overridePickupCount = 80
)

// StrategyFor picks the advice strategy for the given snapshot and score.
// The recovery override is evaluated first and wins over the score branches.
func StrategyFor(metrics models.DailyMetrics, result models.ScoreResult) Strategy {
	if metrics.SleepHoursOrZero() < overrideSleepHours ||
		metrics.SocialMediaMinutes > overrideSocialMin ||
		metrics.Pickups > overridePickupCount {
		return StrategyRecovery
	}

	switch {
	case result.Score >= highPerformanceScore:
		return StrategyHighPerformance
	case result.Score < recoveryScore:
		return StrategyRecovery
	default:
		return StrategyBalance
	}
}

// Select returns the single recommendation for the given snapshot and score.
// Each strategy is an ordered rule list; the first matching condition wins
// and every strategy carries a default, so Select always returns a value.
func Select(metrics models.DailyMetrics, result models.ScoreResult) models.Recommendation {
	switch StrategyFor(metrics, result) {
	case StrategyHighPerformance:
		return highPerformance(metrics)
	case StrategyRecovery:
		return recovery(metrics)
	default:
		return balance(metrics)
	}
}

func highPerformance(m models.DailyMetrics) models.Recommendation {
	switch {
	case m.FocusMinutes >= 180:
		return models.Recommendation{
			Title:       "Sustain the flow",
			Message:     "You have logged serious deep work today. Take a short micro-break to keep the quality up.",
			Icon:        "timer",
			ActionLabel: "Start a 5 min break",
			Priority:    models.PriorityMedium,
			Category:    models.CategoryProductivity,
		}
	case m.SleepHoursOrZero() >= 7 && m.Steps >= 5000:
		return models.Recommendation{
			Title:       "Push deep work",
			Message:     "Well rested and moving. This is the day to schedule your hardest block of focused work.",
			Icon:        "bolt",
			ActionLabel: "Start a focus session",
			Priority:    models.PriorityHigh,
			Category:    models.CategoryProductivity,
		}
	case m.Steps < 5000:
		return models.Recommendation{
			Title:       "Unlock more energy",
			Message:     "Your score is strong but you have barely moved. A brisk walk will carry the momentum further.",
			Icon:        "figure.walk",
			ActionLabel: "Log a walk",
			Priority:    models.PriorityMedium,
			Category:    models.CategoryHealth,
		}
	default:
		return models.Recommendation{
			Title:    "Keep the momentum",
			Message:  "Everything is trending the right way today. Protect what is working.",
			Icon:     "chart.line.uptrend",
			Priority: models.PriorityMedium,
			Category: models.CategoryProductivity,
		}
	}
}

func recovery(m models.DailyMetrics) models.Recommendation {
	switch {
	case m.SleepHoursOrZero() < 6:
		return models.Recommendation{
			Title:       "Sleep comes first",
			Message:     "You are running on too little sleep. Wind down early tonight before optimizing anything else.",
			Icon:        "moon.zzz",
			ActionLabel: "Set a wind-down reminder",
			Priority:    models.PriorityHigh,
			Category:    models.CategoryRecovery,
		}
	case m.SocialMediaMinutes > 90:
		return models.Recommendation{
			Title:       "Time for a digital detox",
			Message:     "Social media has eaten a big slice of today. Put the feeds away for the next few hours.",
			Icon:        "iphone.slash",
			ActionLabel: "Enable downtime",
			Priority:    models.PriorityHigh,
			Category:    models.CategoryBalance,
		}
	case m.Steps < 2000:
		return models.Recommendation{
			Title:       "Take a movement break",
			Message:     "Your body has been still for most of the day. Even ten minutes of walking will reset your energy.",
			Icon:        "figure.walk",
			ActionLabel: "Log a walk",
			Priority:    models.PriorityHigh,
			Category:    models.CategoryHealth,
		}
	case m.Pickups > 60:
		return models.Recommendation{
			Title:       "Reclaim your attention",
			Message:     "You have picked up your phone a lot today. Leave it in another room for your next work block.",
			Icon:        "hand.raised",
			Priority:    models.PriorityMedium,
			Category:    models.CategoryRecovery,
		}
	default:
		return models.Recommendation{
			Title:    "Recharge day",
			Message:  "Today is for recovery, not output. Lower the bar and let the streaks wait.",
			Icon:     "battery.25",
			Priority: models.PriorityMedium,
			Category: models.CategoryRecovery,
		}
	}
}

func balance(m models.DailyMetrics) models.Recommendation {
	sleep := m.SleepHoursOrZero()
	switch {
	case sleep >= 7 && m.Steps < 5000:
		return models.Recommendation{
			Title:       "Spend that rest on a walk",
			Message:     "You slept well but have not moved much. A walk now pays off twice.",
			Icon:        "figure.walk",
			ActionLabel: "Log a walk",
			Priority:    models.PriorityMedium,
			Category:    models.CategoryHealth,
		}
	case m.FocusMinutes >= 60 && m.SocialMediaMinutes > 45:
		return models.Recommendation{
			Title:    "Mind the scroll",
			Message:  "Good focus today, but social media is creeping up alongside it. Keep the ratio honest.",
			Icon:     "eye",
			Priority: models.PriorityLow,
			Category: models.CategoryBalance,
		}
	case m.FocusMinutes < 60:
		return models.Recommendation{
			Title:       "Room for one focus block",
			Message:     "You have not hit an hour of deep work yet. One Pomodoro would move today from okay to good.",
			Icon:        "timer",
			ActionLabel: "Start a focus session",
			Priority:    models.PriorityMedium,
			Category:    models.CategoryProductivity,
		}
	case sleep >= 6 && sleep < 7:
		return models.Recommendation{
			Title:       "A little more sleep",
			Message:     "You are close to a full night's rest. Half an hour earlier tonight would tip the balance.",
			Icon:        "moon",
			Priority:    models.PriorityLow,
			Category:    models.CategoryHealth,
		}
	default:
		return models.Recommendation{
			Title:    "Steady progress",
			Message:  "Nothing is on fire and nothing is stuck. Keep doing what you are doing.",
			Icon:     "checkmark.circle",
			Priority: models.PriorityLow,
			Category: models.CategoryBalance,
		}
	}
}
