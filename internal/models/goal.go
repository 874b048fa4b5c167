package models

import "time"

// GoalPriority represents the urgency of a goal.
type GoalPriority string

const (
	GoalPriorityLow    GoalPriority = "low"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityHigh   GoalPriority = "high"
)

// GoalStatus represents the lifecycle state of a goal. A goal becomes
// completed when contributions reach the target amount; completed is
// terminal and is never re-opened.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
)

// Goal is a savings target. CurrentAmount only grows through contributions
// and is clamped at TargetAmount.
type Goal struct {
	Base
	UserID        string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         string       `gorm:"not null" json:"title"`
	Description   string       `json:"description,omitempty"`
	TargetAmount  float64      `gorm:"not null" json:"target_amount"`
	CurrentAmount float64      `gorm:"default:0" json:"current_amount"`
	Category      string       `json:"category"`
	Deadline      time.Time    `gorm:"not null" json:"deadline"`
	Priority      GoalPriority `gorm:"not null" json:"priority"`
	Status        GoalStatus   `gorm:"not null;default:active" json:"status"`
}
