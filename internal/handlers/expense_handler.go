package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/logger"
	"budgetsmart/internal/services"
)

// ExpenseHandler handles expense requests
type ExpenseHandler struct {
	expenseService     services.ExpenseServicer
	achievementService services.AchievementServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer, achievementService services.AchievementServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, achievementService: achievementService}
}

// AddExpenseRequest represents the expense creation payload
type AddExpenseRequest struct {
	Name       string    `json:"name" binding:"required,max=200"`
	Amount     float64   `json:"amount" binding:"required,gt=0"`
	CategoryID string    `json:"category_id" binding:"required,uuid"`
	Date       time.Time `json:"date" binding:"required"`
	Notes      string    `json:"notes" binding:"max=500"`
}

// UpdateExpenseRequest represents the expense update payload
type UpdateExpenseRequest struct {
	Name       *string    `json:"name" binding:"omitempty,max=200"`
	Amount     *float64   `json:"amount" binding:"omitempty,gt=0"`
	CategoryID *string    `json:"category_id" binding:"omitempty,uuid"`
	Date       *time.Time `json:"date"`
	Notes      *string    `json:"notes" binding:"omitempty,max=500"`
}

// AddExpense logs a new expense
// @Summary     Add expense
// @Description Log an expense against a category of the current budget
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddExpenseRequest true "Expense data"
// @Success     201 {object} models.Expense "Expense logged"
// @Failure     400 {object} ErrorResponse "Invalid input or budget exceeded"
// @Failure     404 {object} ErrorResponse "Category not found in current budget"
// @Router      /expenses [post]
func (h *ExpenseHandler) AddExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.AddExpense(userID, req.Name, req.Amount, req.CategoryID, req.Date, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Expense counters may have crossed an achievement threshold.
	unlocked, err := h.achievementService.Evaluate(userID)
	if err != nil {
		logger.Get().Warnw("achievement evaluation failed", "error", err, "user_id", userID)
		unlocked = nil
	}

	c.JSON(http.StatusCreated, gin.H{
		"expense":               expense,
		"unlocked_achievements": unlocked,
	})
}

// GetExpenses lists the current period's expenses
// @Summary     List expenses
// @Description List the authenticated user's expenses for the current period, newest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.Expense "Expenses"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.GetCurrentExpenses(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// UpdateExpense updates an expense
// @Summary     Update expense
// @Description Update fields of an existing expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to update"
// @Success     200 {object} models.Expense "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, req.Name, req.Amount, req.CategoryID, req.Date, req.Notes)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense removes an expense
// @Summary     Delete expense
// @Description Delete an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     204 "Expense deleted"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
