// Package errors provides custom error types for the BudgetSmart API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAdminRequired      = &AppError{Code: "ADMIN_REQUIRED", Message: "Administrator privileges required", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Budget & category errors.
var (
	ErrBudgetNotFound   = &AppError{Code: "BUDGET_NOT_FOUND", Message: "No budget exists for the current period", StatusCode: http.StatusNotFound}
	ErrBudgetExists     = &AppError{Code: "BUDGET_EXISTS", Message: "A budget already exists for the current period", StatusCode: http.StatusConflict}
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
)

// Expense errors.
var (
	ErrExpenseNotFound        = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrExceedsCategoryBudget  = &AppError{Code: "EXCEEDS_CATEGORY_BUDGET", Message: "Expense exceeds the remaining category budget", StatusCode: http.StatusBadRequest}
	ErrExceedsTotalBudget     = &AppError{Code: "EXCEEDS_TOTAL_BUDGET", Message: "Expense exceeds the remaining total budget", StatusCode: http.StatusBadRequest}
	ErrIncomeSourceNotFound   = &AppError{Code: "INCOME_SOURCE_NOT_FOUND", Message: "Income source not found", StatusCode: http.StatusNotFound}
)

// Goal & achievement errors.
var (
	ErrGoalNotFound  = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
	ErrGoalCompleted = &AppError{Code: "GOAL_COMPLETED", Message: "A completed goal cannot be modified", StatusCode: http.StatusConflict}
)

// Community post errors.
var (
	ErrPostNotFound     = &AppError{Code: "POST_NOT_FOUND", Message: "Post not found", StatusCode: http.StatusNotFound}
	ErrPostNotApproved  = &AppError{Code: "POST_NOT_APPROVED", Message: "Only approved posts can be featured", StatusCode: http.StatusConflict}
	ErrPostNotPending   = &AppError{Code: "POST_NOT_PENDING", Message: "Only pending posts can be moderated", StatusCode: http.StatusConflict}
	ErrRejectionReason  = &AppError{Code: "REJECTION_REASON_REQUIRED", Message: "A reason is required to reject a post", StatusCode: http.StatusBadRequest}
)
