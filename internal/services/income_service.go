package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/models"
)

// incomeService handles income source business logic. Income sources are
// independent of budgets and never feed budget statistics.
type incomeService struct {
	db *gorm.DB
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB) IncomeServicer {
	return &incomeService{db: db}
}

// AddIncomeSource records a new income source.
func (s *incomeService) AddIncomeSource(
	userID, name string,
	amount float64,
	frequency models.IncomeFrequency,
	color string,
) (*models.IncomeSource, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income amount must be greater than zero")
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income source name is required")
	}

	income := &models.IncomeSource{
		UserID:    userID,
		Name:      name,
		Amount:    amount,
		Frequency: frequency,
		Color:     color,
	}
	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return income, nil
}

// GetUserIncomeSources returns the user's income sources, newest first.
func (s *incomeService) GetUserIncomeSources(userID string) ([]models.IncomeSource, error) {
	var incomes []models.IncomeSource
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&incomes).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return incomes, nil
}

func (s *incomeService) getOwnedIncome(userID, incomeID string) (*models.IncomeSource, error) {
	var income models.IncomeSource
	if err := s.db.Where("id = ? AND user_id = ?", incomeID, userID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeSourceNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// UpdateIncomeSource updates an income source's fields.
func (s *incomeService) UpdateIncomeSource(
	userID, incomeID string,
	name *string,
	amount *float64,
	frequency *models.IncomeFrequency,
	color *string,
) (*models.IncomeSource, error) {
	income, err := s.getOwnedIncome(userID, incomeID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != nil {
		updates["name"] = *name
	}
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income amount must be greater than zero")
		}
		updates["amount"] = *amount
	}
	if frequency != nil {
		updates["frequency"] = *frequency
	}
	if color != nil {
		updates["color"] = *color
	}

	if len(updates) > 0 {
		if err := s.db.Model(income).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return income, nil
}

// DeleteIncomeSource removes an income source.
func (s *incomeService) DeleteIncomeSource(userID, incomeID string) error {
	income, err := s.getOwnedIncome(userID, incomeID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(income).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
