package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/models"
)

// goalService handles savings goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new active goal with zero progress.
func (s *goalService) CreateGoal(
	userID, title, description string,
	targetAmount float64,
	category string,
	deadline time.Time,
	priority models.GoalPriority,
) (*models.Goal, error) {
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "goal title is required")
	}

	goal := &models.Goal{
		UserID:        userID,
		Title:         title,
		Description:   description,
		TargetAmount:  targetAmount,
		CurrentAmount: 0,
		Category:      category,
		Deadline:      deadline,
		Priority:      priority,
		Status:        models.GoalStatusActive,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals returns the user's goals, newest first.
func (s *goalService) GetUserGoals(userID string) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goals, nil
}

func (s *goalService) getOwnedGoal(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal updates a goal's descriptive fields. Completed goals are
// terminal and cannot be modified.
func (s *goalService) UpdateGoal(
	userID, goalID string,
	title, description *string,
	targetAmount *float64,
	category *string,
	deadline *time.Time,
	priority *models.GoalPriority,
) (*models.Goal, error) {
	goal, err := s.getOwnedGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status == models.GoalStatusCompleted {
		return nil, apperrors.ErrGoalCompleted
	}

	updates := make(map[string]interface{})
	if title != nil {
		updates["title"] = *title
	}
	if description != nil {
		updates["description"] = *description
	}
	if targetAmount != nil {
		if *targetAmount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
		}
		updates["target_amount"] = *targetAmount
	}
	if category != nil {
		updates["category"] = *category
	}
	if deadline != nil {
		updates["deadline"] = *deadline
	}
	if priority != nil {
		updates["priority"] = *priority
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return goal, nil
}

// UpdateGoalProgress adds a contribution to a goal, clamping at the target
// amount and completing the goal when the target is reached. Contributions
// past the target are idempotent under clamping: the goal stays at exactly
// the target amount.
func (s *goalService) UpdateGoalProgress(userID, goalID string, amount float64) (*models.Goal, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contribution amount must be greater than zero")
	}

	goal, err := s.getOwnedGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status == models.GoalStatusCompleted {
		return nil, apperrors.ErrGoalCompleted
	}

	newAmount := goal.CurrentAmount + amount
	if newAmount > goal.TargetAmount {
		newAmount = goal.TargetAmount
	}

	status := models.GoalStatusActive
	if newAmount >= goal.TargetAmount {
		status = models.GoalStatusCompleted
	}

	if err := s.db.Model(goal).Updates(map[string]interface{}{
		"current_amount": newAmount,
		"status":         status,
	}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal.CurrentAmount = newAmount
	goal.Status = status
	return goal, nil
}

// SetGoalStatus switches a goal between active and paused. Completed is
// reached only through contributions and is never left.
func (s *goalService) SetGoalStatus(userID, goalID string, status models.GoalStatus) (*models.Goal, error) {
	if status != models.GoalStatusActive && status != models.GoalStatusPaused {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "status must be 'active' or 'paused'")
	}

	goal, err := s.getOwnedGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Status == models.GoalStatusCompleted {
		return nil, apperrors.ErrGoalCompleted
	}

	if err := s.db.Model(goal).Update("status", status).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	goal.Status = status
	return goal, nil
}

// DeleteGoal removes a goal.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.getOwnedGoal(userID, goalID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
