package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/logger"
	"budgetsmart/internal/models"
	"budgetsmart/internal/period"
	"budgetsmart/internal/stats"
)

// achievementService handles the gamification system. The fixed default
// catalog is merged with persisted per-user rows by title, so defaults are
// not written to storage until they unlock.
type achievementService struct {
	db *gorm.DB
}

// NewAchievementService creates a new AchievementServicer.
func NewAchievementService(db *gorm.DB) AchievementServicer {
	return &achievementService{db: db}
}

// GetUserAchievements returns the full achievement set for a user: the
// default catalog joined against persisted overrides by title.
func (s *achievementService) GetUserAchievements(userID string) ([]models.Achievement, error) {
	var persisted []models.Achievement
	if err := s.db.Where("user_id = ?", userID).Find(&persisted).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	byTitle := make(map[string]models.Achievement, len(persisted))
	for _, a := range persisted {
		byTitle[a.Title] = a
	}

	merged := make([]models.Achievement, 0, len(models.DefaultAchievements))
	for _, def := range models.DefaultAchievements {
		if existing, ok := byTitle[def.Title]; ok {
			merged = append(merged, existing)
			continue
		}
		def.UserID = userID
		merged = append(merged, def)
	}
	return merged, nil
}

// Evaluate recomputes every locked achievement against the user's live
// aggregates and persists new unlocks. A failed unlock write is logged and
// skipped rather than rolled back: the returned slice still reports the
// unlock, and the next evaluation pass will attempt the write again.
func (s *achievementService) Evaluate(userID string) ([]models.Achievement, error) {
	achievements, err := s.GetUserAchievements(userID)
	if err != nil {
		return nil, err
	}

	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.db.Where("user_id = ? AND month = ?", userID, period.Current()).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budget *models.Budget
	var b models.Budget
	err = s.db.Where("user_id = ? AND month = ?", userID, period.Current()).First(&b).Error
	if err == nil {
		budget = &b
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	unlocked := stats.EvaluateAchievements(achievements, goals, expenses, budget, time.Now())

	for i := range unlocked {
		a := &unlocked[i]
		var writeErr error
		if a.ID == "" {
			// Catalog entry unlocking for the first time: materialize it.
			writeErr = s.db.Create(a).Error
		} else {
			writeErr = s.db.Model(a).Updates(map[string]interface{}{
				"is_unlocked":   true,
				"unlocked_at":   a.UnlockedAt,
				"current_value": a.CurrentValue,
			}).Error
		}
		if writeErr != nil {
			// Do not revert the in-memory unlock; re-evaluation retries it.
			logger.Get().Errorw("failed to persist achievement unlock",
				"error", writeErr,
				"user_id", userID,
				"title", a.Title,
			)
		}
	}

	return unlocked, nil
}
