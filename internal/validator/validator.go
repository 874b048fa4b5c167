// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hex_color", validateHexColor)
		_ = v.RegisterValidation("budget_mode", validateBudgetMode)
		_ = v.RegisterValidation("interval_unit", validateIntervalUnit)
		_ = v.RegisterValidation("income_frequency", validateIncomeFrequency)
		_ = v.RegisterValidation("goal_priority", validateGoalPriority)
		_ = v.RegisterValidation("post_category", validatePostCategory)
		_ = v.RegisterValidation("post_status", validatePostStatus)
	}
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateBudgetMode(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "student", "worker", "custom":
		return true
	}
	return false
}

func validateIntervalUnit(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "days", "weeks", "months":
		return true
	}
	return false
}

func validateIncomeFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "monthly", "yearly", "one-time":
		return true
	}
	return false
}

func validateGoalPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "low", "medium", "high":
		return true
	}
	return false
}

func validatePostCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "budgeting", "saving", "investing", "debt", "career", "student", "emergency", "general":
		return true
	}
	return false
}

func validatePostStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "approved", "rejected":
		return true
	}
	return false
}
