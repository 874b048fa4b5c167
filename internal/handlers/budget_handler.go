package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/models"
	"budgetsmart/internal/services"
)

// BudgetHandler handles budget and category requests
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CategoryRequest represents a category in a budget payload
type CategoryRequest struct {
	Name            string  `json:"name" binding:"required,max=100"`
	AllocatedAmount float64 `json:"allocated_amount" binding:"gte=0"`
	Color           string  `json:"color" binding:"omitempty,hex_color"`
	Icon            string  `json:"icon" binding:"max=50"`
}

// CreateBudgetRequest represents the budget creation payload
type CreateBudgetRequest struct {
	TotalBudget   float64           `json:"total_budget" binding:"gte=0"`
	Mode          string            `json:"mode" binding:"required,budget_mode"`
	Categories    []CategoryRequest `json:"categories" binding:"dive"`
	IntervalUnit  string            `json:"interval_unit" binding:"omitempty,interval_unit"`
	IntervalValue int               `json:"interval_value" binding:"omitempty,gte=1"`
}

// UpdateBudgetRequest represents the budget update payload
type UpdateBudgetRequest struct {
	TotalBudget   *float64 `json:"total_budget" binding:"omitempty,gte=0"`
	Mode          *string  `json:"mode" binding:"omitempty,budget_mode"`
	IntervalUnit  *string  `json:"interval_unit" binding:"omitempty,interval_unit"`
	IntervalValue *int     `json:"interval_value" binding:"omitempty,gte=1"`
}

func toCategoryInputs(reqs []CategoryRequest) []services.CategoryInput {
	inputs := make([]services.CategoryInput, 0, len(reqs))
	for _, r := range reqs {
		inputs = append(inputs, services.CategoryInput{
			Name:            r.Name,
			AllocatedAmount: r.AllocatedAmount,
			Color:           r.Color,
			Icon:            r.Icon,
		})
	}
	return inputs
}

// CreateBudget sets up the budget for the current period
// @Summary     Create budget
// @Description Create the authenticated user's budget for the current period
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget data"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Budget already exists for this period"
// @Router      /budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(
		userID,
		req.TotalBudget,
		models.BudgetMode(req.Mode),
		toCategoryInputs(req.Categories),
		models.IntervalUnit(req.IntervalUnit),
		req.IntervalValue,
	)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "budget.create", "budget", budget.ID, c.ClientIP(), map[string]interface{}{
		"total_budget": budget.TotalBudget,
		"mode":         budget.Mode,
	})

	c.JSON(http.StatusCreated, budget)
}

// GetCurrentBudget returns the budget for the current period
// @Summary     Get current budget
// @Description Get the authenticated user's budget for the current period
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Budget "Current budget"
// @Failure     404 {object} ErrorResponse "No budget for this period"
// @Router      /budgets/current [get]
func (h *BudgetHandler) GetCurrentBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budget, err := h.budgetService.GetCurrentBudget(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, budget)
}

// UpdateBudget updates the current period's budget
// @Summary     Update budget
// @Description Update fields of the current period's budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateBudgetRequest true "Fields to update"
// @Success     200 {object} models.Budget "Updated budget"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "No budget for this period"
// @Router      /budgets/current [put]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var mode *models.BudgetMode
	if req.Mode != nil {
		m := models.BudgetMode(*req.Mode)
		mode = &m
	}
	var unit *models.IntervalUnit
	if req.IntervalUnit != nil {
		u := models.IntervalUnit(*req.IntervalUnit)
		unit = &u
	}

	budget, err := h.budgetService.UpdateBudget(userID, req.TotalBudget, mode, unit, req.IntervalValue)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "budget.update", "budget", budget.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, budget)
}

// AddCategory adds a category to the current budget
// @Summary     Add category
// @Description Add a spending category to the current budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CategoryRequest true "Category data"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "No budget for this period"
// @Router      /budgets/current/categories [post]
func (h *BudgetHandler) AddCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.budgetService.AddCategory(userID, services.CategoryInput{
		Name:            req.Name,
		AllocatedAmount: req.AllocatedAmount,
		Color:           req.Color,
		Icon:            req.Icon,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory updates a category of the current budget
// @Summary     Update category
// @Description Update a spending category of the current budget
// @Tags        budgets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Param       request body CategoryRequest true "Category data"
// @Success     200 {object} models.Category "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /budgets/current/categories/{id} [put]
func (h *BudgetHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.budgetService.UpdateCategory(userID, categoryID, services.CategoryInput{
		Name:            req.Name,
		AllocatedAmount: req.AllocatedAmount,
		Color:           req.Color,
		Icon:            req.Icon,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category from the current budget
// @Summary     Delete category
// @Description Remove a spending category from the current budget
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Success     204 "Category deleted"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /budgets/current/categories/{id} [delete]
func (h *BudgetHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.DeleteCategory(userID, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBudgetStats returns derived spending statistics
// @Summary     Get budget statistics
// @Description Get spending statistics for the current budget period
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} stats.BudgetStats "Aggregated statistics"
// @Router      /budgets/current/stats [get]
func (h *BudgetHandler) GetBudgetStats(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgetStats, err := h.budgetService.GetCurrentStats(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// A nil result means budget setup has not happened this period.
	if budgetStats == nil {
		c.JSON(http.StatusOK, gin.H{"needs_setup": true})
		return
	}

	c.JSON(http.StatusOK, budgetStats)
}

// ResetPeriod clears the current period's expenses
// @Summary     Reset budget period
// @Description Delete all expenses of the current period, keeping the budget and categories
// @Tags        budgets
// @Produce     json
// @Security    BearerAuth
// @Success     204 "Period reset"
// @Failure     404 {object} ErrorResponse "No budget for this period"
// @Router      /budgets/current/reset [post]
func (h *BudgetHandler) ResetPeriod(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.budgetService.ResetCurrentPeriod(userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "budget.reset_period", "budget", "", c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}
