package stats

import (
	"time"

	"budgetsmart/internal/models"
)

// NoTopCategory is reported when no trend data exists yet.
const NoTopCategory = "No data"

const defaultTrendColor = "#6b7280"

// TrendCategory is the per-category slice of an ExpenseTrend. Only
// categories with a positive spend appear in a trend.
type TrendCategory struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Color        string  `json:"color"`
}

// ExpenseTrend is the spending summary of one period.
type ExpenseTrend struct {
	Month             string          `json:"month"`
	Amount            float64         `json:"amount"`
	CategoryBreakdown []TrendCategory `json:"category_breakdown"`
}

// ProgressStats is derived from goals, expenses, the current budget, and
// the achievement set.
type ProgressStats struct {
	TotalGoals             int            `json:"total_goals"`
	CompletedGoals         int            `json:"completed_goals"`
	ActiveGoals            int            `json:"active_goals"`
	TotalSavings           float64        `json:"total_savings"`
	MonthlyTrends          []ExpenseTrend `json:"monthly_trends"`
	GoalCompletionRate     float64        `json:"goal_completion_rate"`
	AverageMonthlySpending float64        `json:"average_monthly_spending"`
	TopCategory            string         `json:"top_category"`
	AchievementsUnlocked   int            `json:"achievements_unlocked"`
}

// ComputeProgressStats derives progress analytics from one snapshot of the
// user's entities. month is the period key the trend entry is computed for.
func ComputeProgressStats(
	goals []models.Goal,
	expenses []models.Expense,
	budget *models.Budget,
	achievements []models.Achievement,
	month string,
) ProgressStats {
	var completed, active int
	var totalSavings float64
	for _, g := range goals {
		switch g.Status {
		case models.GoalStatusCompleted:
			completed++
		case models.GoalStatusActive:
			active++
		}
		totalSavings += g.CurrentAmount
	}

	// A single trend entry for the given period, with a breakdown restricted
	// to categories that saw spending.
	var trends []ExpenseTrend
	if budget != nil && len(expenses) > 0 {
		var monthTotal float64
		spentByCategory := make(map[string]float64)
		for _, e := range expenses {
			if e.Month != month {
				continue
			}
			monthTotal += e.Amount
			spentByCategory[e.CategoryID] += e.Amount
		}

		breakdown := make([]TrendCategory, 0, len(budget.Categories))
		for _, cat := range budget.Categories {
			amount := spentByCategory[cat.ID]
			if amount <= 0 {
				continue
			}
			color := cat.Color
			if color == "" {
				color = defaultTrendColor
			}
			breakdown = append(breakdown, TrendCategory{
				CategoryID:   cat.ID,
				CategoryName: cat.Name,
				Amount:       amount,
				Color:        color,
			})
		}

		trends = append(trends, ExpenseTrend{
			Month:             month,
			Amount:            monthTotal,
			CategoryBreakdown: breakdown,
		})
	}

	var completionRate float64
	if len(goals) > 0 {
		completionRate = float64(completed) / float64(len(goals)) * 100
	}

	var avgSpending float64
	if len(expenses) > 0 {
		var total float64
		for _, e := range expenses {
			total += e.Amount
		}
		trendCount := len(trends)
		if trendCount < 1 {
			trendCount = 1
		}
		avgSpending = total / float64(trendCount)
	}

	// Ties go to the first-encountered category, so the result is stable
	// given stable category ordering.
	topCategory := NoTopCategory
	if len(trends) > 0 && len(trends[0].CategoryBreakdown) > 0 {
		top := trends[0].CategoryBreakdown[0]
		for _, tc := range trends[0].CategoryBreakdown[1:] {
			if tc.Amount > top.Amount {
				top = tc
			}
		}
		topCategory = top.CategoryName
	}

	var unlocked int
	for _, a := range achievements {
		if a.IsUnlocked {
			unlocked++
		}
	}

	return ProgressStats{
		TotalGoals:             len(goals),
		CompletedGoals:         completed,
		ActiveGoals:            active,
		TotalSavings:           totalSavings,
		MonthlyTrends:          trends,
		GoalCompletionRate:     completionRate,
		AverageMonthlySpending: avgSpending,
		TopCategory:            topCategory,
		AchievementsUnlocked:   unlocked,
	}
}

// EvaluateAchievements recomputes every locked achievement's criterion
// against live aggregates and returns the ones that newly crossed their
// target, with CurrentValue refreshed and UnlockedAt set to now. Already
// unlocked achievements are never touched, so unlocking stays monotonic.
func EvaluateAchievements(
	achievements []models.Achievement,
	goals []models.Goal,
	expenses []models.Expense,
	budget *models.Budget,
	now time.Time,
) []models.Achievement {
	var completedGoals int
	var totalSavings float64
	for _, g := range goals {
		if g.Status == models.GoalStatusCompleted {
			completedGoals++
		}
		totalSavings += g.CurrentAmount
	}

	var totalSpent float64
	for _, e := range expenses {
		totalSpent += e.Amount
	}

	var unlocked []models.Achievement
	for _, a := range achievements {
		if a.IsUnlocked {
			continue
		}

		current := a.CurrentValue
		shouldUnlock := false

		switch a.CriteriaType {
		case models.CriteriaExpenseCount:
			current = float64(len(expenses))
			shouldUnlock = current >= a.TargetValue
		case models.CriteriaGoalCompletion:
			current = float64(completedGoals)
			shouldUnlock = current >= a.TargetValue
		case models.CriteriaSavingsAmount:
			current = totalSavings
			shouldUnlock = current >= a.TargetValue
		case models.CriteriaBudgetStreak:
			// Only evaluable once a budget and at least one expense exist.
			if budget != nil && len(expenses) > 0 {
				if totalSpent <= budget.TotalBudget {
					current = 1
				} else {
					current = 0
				}
				shouldUnlock = current >= a.TargetValue
			}
		}

		if shouldUnlock {
			a.CurrentValue = current
			a.IsUnlocked = true
			unlockedAt := now
			a.UnlockedAt = &unlockedAt
			unlocked = append(unlocked, a)
		}
	}

	return unlocked
}
