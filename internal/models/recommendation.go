package models

// Priority ranks how urgently a recommendation should surface
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Category groups recommendations by theme
type Category string

const (
	CategoryProductivity Category = "productivity"
	CategoryHealth       Category = "health"
	CategoryBalance      Category = "balance"
	CategoryRecovery     Category = "recovery"
)

// Recommendation is a single piece of coaching advice. It is purely derived
// from the current snapshot and score and is never persisted.
type Recommendation struct {
	Title       string   `json:"title"`
	Message     string   `json:"message"`
	Icon        string   `json:"icon"`
	ActionLabel string   `json:"action_label,omitempty"`
	Priority    Priority `json:"priority"`
	Category    Category `json:"category"`
}
