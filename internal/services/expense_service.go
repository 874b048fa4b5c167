package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/models"
	"budgetsmart/internal/money"
	"budgetsmart/internal/period"
	"budgetsmart/internal/stats"
)

// expenseService handles expense business logic.
type expenseService struct {
	db     *gorm.DB
	budget BudgetServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, budget BudgetServicer) ExpenseServicer {
	return &expenseService{db: db, budget: budget}
}

// AddExpense records a spend entry for the current period. The amount is
// validated against the remaining category and total budget before any
// persistence call, using the same snapshot of expenses for both checks
// and for the category lookup.
func (s *expenseService) AddExpense(
	userID, name string,
	amount float64,
	categoryID string,
	date time.Time,
	notes string,
) (*models.Expense, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense amount must be greater than zero")
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense name is required")
	}

	budget, err := s.budget.GetCurrentBudget(userID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, cat := range budget.Categories {
		if cat.ID == categoryID {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.ErrCategoryNotFound
	}

	expenses, err := s.GetCurrentExpenses(userID)
	if err != nil {
		return nil, err
	}

	if remaining := stats.CategoryRemaining(budget, expenses, categoryID); amount > remaining {
		return nil, apperrors.WithMessage(apperrors.ErrExceedsCategoryBudget,
			fmt.Sprintf("Expense exceeds the remaining category budget of %s", money.Format(remaining)))
	}
	if remaining := stats.BudgetRemaining(budget, expenses); amount > remaining {
		return nil, apperrors.WithMessage(apperrors.ErrExceedsTotalBudget,
			fmt.Sprintf("Expense exceeds the remaining total budget of %s", money.Format(remaining)))
	}

	expense := &models.Expense{
		UserID:     userID,
		Name:       name,
		Amount:     amount,
		CategoryID: categoryID,
		Date:       date,
		Notes:      notes,
		Month:      period.KeyFor(date),
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// GetCurrentExpenses returns the current period's expenses, newest first.
func (s *expenseService) GetCurrentExpenses(userID string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Where("user_id = ? AND month = ?", userID, period.Current()).
		Order("created_at DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// getOwnedExpense loads an expense and verifies ownership.
func (s *expenseService) getOwnedExpense(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense updates an expense's fields. Changing the date re-derives
// the period key.
func (s *expenseService) UpdateExpense(
	userID, expenseID string,
	name *string,
	amount *float64,
	categoryID *string,
	date *time.Time,
	notes *string,
) (*models.Expense, error) {
	expense, err := s.getOwnedExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = *name
	}
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if categoryID != nil {
		updates["category_id"] = *categoryID
	}
	if date != nil {
		updates["date"] = *date
		updates["month"] = period.KeyFor(*date)
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return expense, nil
}

// DeleteExpense removes an expense.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.getOwnedExpense(userID, expenseID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
