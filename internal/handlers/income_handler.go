package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetsmart/internal/errors"
	"budgetsmart/internal/models"
	"budgetsmart/internal/services"
)

// IncomeHandler handles income source requests
type IncomeHandler struct {
	incomeService services.IncomeServicer
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(incomeService services.IncomeServicer) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// AddIncomeRequest represents the income source creation payload
type AddIncomeRequest struct {
	Name      string  `json:"name" binding:"required,max=100"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Frequency string  `json:"frequency" binding:"required,income_frequency"`
	Color     string  `json:"color" binding:"omitempty,hex_color"`
}

// UpdateIncomeRequest represents the income source update payload
type UpdateIncomeRequest struct {
	Name      *string  `json:"name" binding:"omitempty,max=100"`
	Amount    *float64 `json:"amount" binding:"omitempty,gt=0"`
	Frequency *string  `json:"frequency" binding:"omitempty,income_frequency"`
	Color     *string  `json:"color" binding:"omitempty,hex_color"`
}

// AddIncomeSource registers a new income source
// @Summary     Add income source
// @Description Register a recurring or one-time income source
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddIncomeRequest true "Income source data"
// @Success     201 {object} models.IncomeSource "Income source created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /incomes [post]
func (h *IncomeHandler) AddIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	income, err := h.incomeService.AddIncomeSource(userID, req.Name, req.Amount, models.IncomeFrequency(req.Frequency), req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, income)
}

// GetIncomeSources lists the user's income sources
// @Summary     List income sources
// @Description List the authenticated user's income sources
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.IncomeSource "Income sources"
// @Router      /incomes [get]
func (h *IncomeHandler) GetIncomeSources(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomes, err := h.incomeService.GetUserIncomeSources(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, incomes)
}

// UpdateIncomeSource updates an income source
// @Summary     Update income source
// @Description Update fields of an income source
// @Tags        incomes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income source ID"
// @Param       request body UpdateIncomeRequest true "Fields to update"
// @Success     200 {object} models.IncomeSource "Updated income source"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Income source not found"
// @Router      /incomes/{id} [put]
func (h *IncomeHandler) UpdateIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var freq *models.IncomeFrequency
	if req.Frequency != nil {
		f := models.IncomeFrequency(*req.Frequency)
		freq = &f
	}

	income, err := h.incomeService.UpdateIncomeSource(userID, incomeID, req.Name, req.Amount, freq, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, income)
}

// DeleteIncomeSource removes an income source
// @Summary     Delete income source
// @Description Delete an income source
// @Tags        incomes
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Income source ID"
// @Success     204 "Income source deleted"
// @Failure     404 {object} ErrorResponse "Income source not found"
// @Router      /incomes/{id} [delete]
func (h *IncomeHandler) DeleteIncomeSource(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	incomeID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.incomeService.DeleteIncomeSource(userID, incomeID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
