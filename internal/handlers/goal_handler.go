package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/logger"
	"budgetsmart/internal/models"
	"budgetsmart/internal/services"
)

// GoalHandler handles savings goal requests
type GoalHandler struct {
	goalService        services.GoalServicer
	achievementService services.AchievementServicer
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService services.GoalServicer, achievementService services.AchievementServicer) *GoalHandler {
	return &GoalHandler{goalService: goalService, achievementService: achievementService}
}

// CreateGoalRequest represents the goal creation payload
type CreateGoalRequest struct {
	Title        string    `json:"title" binding:"required,max=200"`
	Description  string    `json:"description" binding:"max=1000"`
	TargetAmount float64   `json:"target_amount" binding:"required,gt=0"`
	Category     string    `json:"category" binding:"max=100"`
	Deadline     time.Time `json:"deadline" binding:"required"`
	Priority     string    `json:"priority" binding:"required,goal_priority"`
}

// UpdateGoalRequest represents the goal update payload
type UpdateGoalRequest struct {
	Title        *string    `json:"title" binding:"omitempty,max=200"`
	Description  *string    `json:"description" binding:"omitempty,max=1000"`
	TargetAmount *float64   `json:"target_amount" binding:"omitempty,gt=0"`
	Category     *string    `json:"category" binding:"omitempty,max=100"`
	Deadline     *time.Time `json:"deadline"`
	Priority     *string    `json:"priority" binding:"omitempty,goal_priority"`
}

// GoalProgressRequest represents a progress contribution payload
type GoalProgressRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// GoalStatusRequest represents a status change payload
type GoalStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active paused"`
}

// CreateGoal creates a new savings goal
// @Summary     Create goal
// @Description Create a savings goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateGoalRequest true "Goal data"
// @Success     201 {object} models.Goal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.CreateGoal(
		userID,
		req.Title,
		req.Description,
		req.TargetAmount,
		req.Category,
		req.Deadline,
		models.GoalPriority(req.Priority),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

// GetGoals lists the user's goals
// @Summary     List goals
// @Description List the authenticated user's savings goals
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Goal "Goals"
// @Router      /goals [get]
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goals, err := h.goalService.GetUserGoals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

// UpdateGoal updates a goal
// @Summary     Update goal
// @Description Update fields of a savings goal that is not completed
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Param       request body UpdateGoalRequest true "Fields to update"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input or goal completed"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var priority *models.GoalPriority
	if req.Priority != nil {
		p := models.GoalPriority(*req.Priority)
		priority = &p
	}

	goal, err := h.goalService.UpdateGoal(userID, goalID, req.Title, req.Description, req.TargetAmount, req.Category, req.Deadline, priority)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// AddGoalProgress contributes towards a goal
// @Summary     Add goal progress
// @Description Add a contribution towards a goal; progress clamps at the target and may complete the goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Param       request body GoalProgressRequest true "Contribution"
// @Success     200 {object} models.Goal "Goal with updated progress"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/progress [post]
func (h *GoalHandler) AddGoalProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoalProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.UpdateGoalProgress(userID, goalID, req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// A completed goal may unlock goal or savings achievements.
	unlocked, err := h.achievementService.Evaluate(userID)
	if err != nil {
		logger.Get().Warnw("achievement evaluation failed", "error", err, "user_id", userID)
		unlocked = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"goal":                  goal,
		"unlocked_achievements": unlocked,
	})
}

// SetGoalStatus pauses or resumes a goal
// @Summary     Set goal status
// @Description Pause or resume an incomplete goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Param       request body GoalStatusRequest true "New status"
// @Success     200 {object} models.Goal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid transition"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/status [put]
func (h *GoalHandler) SetGoalStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req GoalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	goal, err := h.goalService.SetGoalStatus(userID, goalID, models.GoalStatus(req.Status))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// DeleteGoal removes a goal
// @Summary     Delete goal
// @Description Delete a savings goal
// @Tags        goals
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Goal ID"
// @Success     204 "Goal deleted"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goalID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.goalService.DeleteGoal(userID, goalID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
