package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"budgetsmart/internal/services"
)

// ProgressHandler handles progress analytics and achievement requests
type ProgressHandler struct {
	progressService    services.ProgressServicer
	achievementService services.AchievementServicer
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(progressService services.ProgressServicer, achievementService services.AchievementServicer) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, achievementService: achievementService}
}

// GetProgressStats returns the derived progress snapshot
// @Summary     Get progress statistics
// @Description Get goal, savings, spending trend and achievement statistics for the current period
// @Tags        progress
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} stats.ProgressStats "Progress statistics"
// @Router      /progress/stats [get]
func (h *ProgressHandler) GetProgressStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	progressStats, err := h.progressService.GetProgressStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, progressStats)
}

// GetAchievements lists the user's achievements
// @Summary     List achievements
// @Description List the full achievement set, unlocked and locked
// @Tags        progress
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Achievement "Achievements"
// @Router      /progress/achievements [get]
func (h *ProgressHandler) GetAchievements(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	achievements, err := h.achievementService.GetUserAchievements(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, achievements)
}

// EvaluateAchievements re-runs achievement evaluation
// @Summary     Evaluate achievements
// @Description Re-evaluate achievement criteria and return any newly unlocked achievements
// @Tags        progress
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Achievement "Newly unlocked achievements"
// @Router      /progress/achievements/evaluate [post]
func (h *ProgressHandler) EvaluateAchievements(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	unlocked, err := h.achievementService.Evaluate(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, unlocked)
}
