package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/models"
	"budgetsmart/internal/period"
	"budgetsmart/internal/stats"
)

// progressService derives progress analytics from the user's current
// entity snapshots.
type progressService struct {
	db           *gorm.DB
	achievements AchievementServicer
}

// NewProgressService creates a new ProgressServicer.
func NewProgressService(db *gorm.DB, achievements AchievementServicer) ProgressServicer {
	return &progressService{db: db, achievements: achievements}
}

// GetProgressStats loads one snapshot of goals, current-period expenses,
// the current budget, and the achievement set, and derives progress
// statistics from it.
func (s *progressService) GetProgressStats(userID string) (*stats.ProgressStats, error) {
	month := period.Current()

	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.db.Where("user_id = ? AND month = ?", userID, month).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budget *models.Budget
	var b models.Budget
	err := s.db.Preload("Categories").Where("user_id = ? AND month = ?", userID, month).First(&b).Error
	if err == nil {
		budget = &b
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	achievements, err := s.achievements.GetUserAchievements(userID)
	if err != nil {
		return nil, err
	}

	result := stats.ComputeProgressStats(goals, expenses, budget, achievements, month)
	return &result, nil
}
