package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/models"
	"budgetsmart/internal/period"
	"budgetsmart/internal/stats"
)

// budgetService handles budget and category business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates the budget for the current period. Only one budget
// may exist per user per period key.
func (s *budgetService) CreateBudget(
	userID string,
	totalBudget float64,
	mode models.BudgetMode,
	categories []CategoryInput,
	intervalUnit models.IntervalUnit,
	intervalValue int,
) (*models.Budget, error) {
	if totalBudget < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total budget must not be negative")
	}
	for _, c := range categories {
		if c.AllocatedAmount < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category allocations must not be negative")
		}
	}

	month := period.Current()

	var count int64
	if err := s.db.Model(&models.Budget{}).Where("user_id = ? AND month = ?", userID, month).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrBudgetExists
	}

	if intervalUnit == "" {
		intervalUnit = models.IntervalUnitMonths
	}
	if intervalValue == 0 {
		intervalValue = 1
	}

	budget := &models.Budget{
		UserID:        userID,
		TotalBudget:   totalBudget,
		Mode:          mode,
		Month:         month,
		IntervalUnit:  intervalUnit,
		IntervalValue: intervalValue,
	}
	for _, c := range categories {
		budget.Categories = append(budget.Categories, models.Category{
			Name:            c.Name,
			AllocatedAmount: c.AllocatedAmount,
			Color:           c.Color,
			Icon:            c.Icon,
		})
	}

	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetCurrentBudget returns the user's budget for the current period with
// its categories loaded.
func (s *budgetService) GetCurrentBudget(userID string) (*models.Budget, error) {
	var budget models.Budget
	err := s.db.Preload("Categories").
		Where("user_id = ? AND month = ?", userID, period.Current()).
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates the current period's budget fields.
func (s *budgetService) UpdateBudget(
	userID string,
	totalBudget *float64,
	mode *models.BudgetMode,
	intervalUnit *models.IntervalUnit,
	intervalValue *int,
) (*models.Budget, error) {
	budget, err := s.GetCurrentBudget(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if totalBudget != nil {
		if *totalBudget < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total budget must not be negative")
		}
		updates["total_budget"] = *totalBudget
	}
	if mode != nil {
		updates["mode"] = *mode
	}
	if intervalUnit != nil {
		updates["interval_unit"] = *intervalUnit
	}
	if intervalValue != nil {
		updates["interval_value"] = *intervalValue
	}

	if len(updates) > 0 {
		if err := s.db.Model(budget).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return budget, nil
}

// AddCategory appends a category to the current budget.
func (s *budgetService) AddCategory(userID string, input CategoryInput) (*models.Category, error) {
	if input.AllocatedAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category allocation must not be negative")
	}

	budget, err := s.GetCurrentBudget(userID)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		BudgetID:        budget.ID,
		Name:            input.Name,
		AllocatedAmount: input.AllocatedAmount,
		Color:           input.Color,
		Icon:            input.Icon,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// getOwnedCategory loads a category and verifies it belongs to the user's
// current budget.
func (s *budgetService) getOwnedCategory(userID, categoryID string) (*models.Category, error) {
	budget, err := s.GetCurrentBudget(userID)
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := s.db.Where("id = ? AND budget_id = ?", categoryID, budget.ID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates a category of the current budget.
func (s *budgetService) UpdateCategory(userID, categoryID string, input CategoryInput) (*models.Category, error) {
	category, err := s.getOwnedCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if input.AllocatedAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category allocation must not be negative")
	}

	updates := map[string]interface{}{
		"allocated_amount": input.AllocatedAmount,
	}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Color != "" {
		updates["color"] = input.Color
	}
	if input.Icon != "" {
		updates["icon"] = input.Icon
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return category, nil
}

// DeleteCategory removes a category from the current budget. Expenses that
// reference it are left in place; their category link dangles and resolves
// to "Unknown Category" at display time.
func (s *budgetService) DeleteCategory(userID, categoryID string) error {
	category, err := s.getOwnedCategory(userID, categoryID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetCurrentStats computes budget statistics from a single snapshot of the
// current budget and its period-scoped expenses. No budget yields nil stats
// rather than an error: consumers treat that as the "needs setup" state.
func (s *budgetService) GetCurrentStats(userID string) (*stats.BudgetStats, error) {
	budget, err := s.GetCurrentBudget(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrBudgetNotFound) {
			return nil, nil
		}
		return nil, err
	}

	expenses, err := s.currentExpenses(userID)
	if err != nil {
		return nil, err
	}

	return stats.ComputeBudgetStats(budget, expenses), nil
}

// currentExpenses loads the expense snapshot of the current period.
func (s *budgetService) currentExpenses(userID string) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Where("user_id = ? AND month = ?", userID, period.Current()).
		Order("created_at DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

// ResetCurrentPeriod deletes the current period's expenses in a single
// transaction and refreshes the budget timestamp.
func (s *budgetService) ResetCurrentPeriod(userID string) error {
	budget, err := s.GetCurrentBudget(userID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND month = ?", userID, budget.Month).
			Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Model(budget).Update("updated_at", tx.NowFunc()).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
