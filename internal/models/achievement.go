package models

import "time"

// AchievementType groups achievements for display.
type AchievementType string

const (
	AchievementTypeBudget  AchievementType = "budget"
	AchievementTypeSavings AchievementType = "savings"
	AchievementTypeGoals   AchievementType = "goals"
	AchievementTypeStreaks AchievementType = "streaks"
)

// CriteriaType identifies which live aggregate an achievement criterion
// is evaluated against.
type CriteriaType string

const (
	CriteriaExpenseCount   CriteriaType = "expense_count"
	CriteriaSavingsAmount  CriteriaType = "savings_amount"
	CriteriaBudgetStreak   CriteriaType = "budget_streak"
	CriteriaGoalCompletion CriteriaType = "goal_completion"
)

// Achievement is a per-user gamification entry. Title is the stable key
// joining persisted rows against the default catalog. Unlocking is
// monotonic: no code path sets IsUnlocked back to false.
type Achievement struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string          `gorm:"not null" json:"title"`
	Description  string          `json:"description"`
	Icon         string          `json:"icon"`
	Type         AchievementType `gorm:"not null" json:"type"`
	CriteriaType CriteriaType    `gorm:"not null" json:"criteria_type"`
	TargetValue  float64         `gorm:"not null" json:"target_value"`
	CurrentValue float64         `gorm:"default:0" json:"current_value"`
	IsUnlocked   bool            `gorm:"default:false" json:"is_unlocked"`
	UnlockedAt   *time.Time      `json:"unlocked_at,omitempty"`
}

// DefaultAchievements is the fixed catalog seeded for every user. Persisted
// rows override catalog entries by title.
var DefaultAchievements = []Achievement{
	{
		Title:        "First Expense",
		Description:  "Record your first expense",
		Icon:         "🎯",
		Type:         AchievementTypeBudget,
		CriteriaType: CriteriaExpenseCount,
		TargetValue:  1,
	},
	{
		Title:        "Spending Tracker",
		Description:  "Record 10 expenses",
		Icon:         "📊",
		Type:         AchievementTypeBudget,
		CriteriaType: CriteriaExpenseCount,
		TargetValue:  10,
	},
	{
		Title:        "Budget Master",
		Description:  "Stay within budget for a month",
		Icon:         "👑",
		Type:         AchievementTypeBudget,
		CriteriaType: CriteriaBudgetStreak,
		TargetValue:  1,
	},
	{
		Title:        "Goal Setter",
		Description:  "Complete your first financial goal",
		Icon:         "🏆",
		Type:         AchievementTypeGoals,
		CriteriaType: CriteriaGoalCompletion,
		TargetValue:  1,
	},
	{
		Title:        "Savings Champion",
		Description:  "Save $1000 in total",
		Icon:         "💰",
		Type:         AchievementTypeSavings,
		CriteriaType: CriteriaSavingsAmount,
		TargetValue:  1000,
	},
	{
		Title:        "Financial Guru",
		Description:  "Complete 5 financial goals",
		Icon:         "🌟",
		Type:         AchievementTypeGoals,
		CriteriaType: CriteriaGoalCompletion,
		TargetValue:  5,
	},
}
