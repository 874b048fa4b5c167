// Package stats holds the derivation logic of the application: budget
// statistics, progress analytics, achievement evaluation, and community
// post filtering. Every function here is pure and synchronous; callers pass
// in one snapshot of entities and read back derived values. Keeping the
// package free of hidden state makes it testable without any persistence.
package stats

import "budgetsmart/internal/models"

// UnknownCategoryName is the sentinel used when an expense references a
// category that no longer exists.
const UnknownCategoryName = "Unknown Category"

// CategoryBreakdown is the per-category slice of a BudgetStats.
type CategoryBreakdown struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Spent        float64 `json:"spent"`
	Allocated    float64 `json:"allocated"`
	Percentage   float64 `json:"percentage"`
}

// BudgetStats is derived from a budget and its period-scoped expenses.
type BudgetStats struct {
	TotalSpent        float64             `json:"total_spent"`
	TotalBudget       float64             `json:"total_budget"`
	RemainingBudget   float64             `json:"remaining_budget"`
	PercentageUsed    float64             `json:"percentage_used"`
	CategoryBreakdown []CategoryBreakdown `json:"category_breakdown"`
}

// ComputeBudgetStats derives budget statistics from one snapshot of the
// budget and its expenses. A nil budget yields nil ("needs setup").
// RemainingBudget may go negative: over-budget is representable, not an
// error. Percentages are 0 when the divisor is 0.
func ComputeBudgetStats(budget *models.Budget, expenses []models.Expense) *BudgetStats {
	if budget == nil {
		return nil
	}

	var totalSpent float64
	for _, e := range expenses {
		totalSpent += e.Amount
	}

	var percentageUsed float64
	if budget.TotalBudget > 0 {
		percentageUsed = totalSpent / budget.TotalBudget * 100
	}

	breakdown := make([]CategoryBreakdown, 0, len(budget.Categories))
	for _, cat := range budget.Categories {
		var spent float64
		for _, e := range expenses {
			if e.CategoryID == cat.ID {
				spent += e.Amount
			}
		}

		var percentage float64
		if cat.AllocatedAmount > 0 {
			percentage = spent / cat.AllocatedAmount * 100
		}

		breakdown = append(breakdown, CategoryBreakdown{
			CategoryID:   cat.ID,
			CategoryName: cat.Name,
			Spent:        spent,
			Allocated:    cat.AllocatedAmount,
			Percentage:   percentage,
		})
	}

	return &BudgetStats{
		TotalSpent:        totalSpent,
		TotalBudget:       budget.TotalBudget,
		RemainingBudget:   budget.TotalBudget - totalSpent,
		PercentageUsed:    percentageUsed,
		CategoryBreakdown: breakdown,
	}
}

// CategoryRemaining returns the category's allocation minus its spend in the
// given expense snapshot. Unknown category IDs yield 0.
func CategoryRemaining(budget *models.Budget, expenses []models.Expense, categoryID string) float64 {
	if budget == nil {
		return 0
	}

	var allocated float64
	found := false
	for _, cat := range budget.Categories {
		if cat.ID == categoryID {
			allocated = cat.AllocatedAmount
			found = true
			break
		}
	}
	if !found {
		return 0
	}

	var spent float64
	for _, e := range expenses {
		if e.CategoryID == categoryID {
			spent += e.Amount
		}
	}
	return allocated - spent
}

// BudgetRemaining returns the total budget minus the total spend in the
// given expense snapshot. Negative iff the user is over budget.
func BudgetRemaining(budget *models.Budget, expenses []models.Expense) float64 {
	if budget == nil {
		return 0
	}
	var spent float64
	for _, e := range expenses {
		spent += e.Amount
	}
	return budget.TotalBudget - spent
}

// ResolveCategoryName maps a possibly-dangling category reference to a
// display name.
func ResolveCategoryName(budget *models.Budget, categoryID string) string {
	if budget != nil {
		for _, cat := range budget.Categories {
			if cat.ID == categoryID {
				return cat.Name
			}
		}
	}
	return UnknownCategoryName
}
