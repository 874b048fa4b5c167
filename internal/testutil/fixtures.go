package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgetsmart/internal/models"
	"budgetsmart/internal/period"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:       email,
		Password:    string(hash),
		DisplayName: fmt.Sprintf("Test User %d", nextID()),
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAdmin creates a user with admin privileges.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := CreateTestUser(t, db)
	if err := db.Model(user).Update("is_admin", true).Error; err != nil {
		t.Fatalf("failed to promote test admin: %v", err)
	}
	user.IsAdmin = true
	return user
}

// CreateTestBudget creates a current-period budget with a default total.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID string) *models.Budget {
	t.Helper()
	return CreateTestBudgetWithTotal(t, db, userID, 1000)
}

// CreateTestBudgetWithTotal creates a current-period budget with the given total.
func CreateTestBudgetWithTotal(t *testing.T, db *gorm.DB, userID string, total float64) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:        userID,
		TotalBudget:   total,
		Mode:          models.BudgetModeCustom,
		Month:         period.Current(),
		IntervalUnit:  models.IntervalUnitMonths,
		IntervalValue: 1,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestCategory creates a category with the given allocation.
func CreateTestCategory(t *testing.T, db *gorm.DB, budgetID string, allocated float64) *models.Category {
	t.Helper()

	category := &models.Category{
		BudgetID:        budgetID,
		Name:            fmt.Sprintf("Test Category %d", nextID()),
		AllocatedAmount: allocated,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense dated now, in the current period.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID, categoryID string, amount float64) *models.Expense {
	t.Helper()

	now := time.Now()
	expense := &models.Expense{
		UserID:     userID,
		Name:       fmt.Sprintf("Test Expense %d", nextID()),
		Amount:     amount,
		CategoryID: categoryID,
		Date:       now,
		Month:      period.KeyFor(now),
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestGoal creates an active goal with the given target.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:       userID,
		Title:        fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount: target,
		Deadline:     time.Now().AddDate(0, 3, 0),
		Priority:     models.GoalPriorityMedium,
		Status:       models.GoalStatusActive,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestIncomeSource creates a monthly income source.
func CreateTestIncomeSource(t *testing.T, db *gorm.DB, userID string, amount float64) *models.IncomeSource {
	t.Helper()

	income := &models.IncomeSource{
		UserID:    userID,
		Name:      fmt.Sprintf("Test Income %d", nextID()),
		Amount:    amount,
		Frequency: models.IncomeFrequencyMonthly,
	}
	if err := db.Create(income).Error; err != nil {
		t.Fatalf("failed to create test income source: %v", err)
	}
	return income
}

// CreateTestPost creates a pending post by the given author.
func CreateTestPost(t *testing.T, db *gorm.DB, authorID string) *models.FinancePost {
	t.Helper()
	return CreateTestPostWithStatus(t, db, authorID, models.PostStatusPending)
}

// CreateTestPostWithStatus creates a post in the given status.
func CreateTestPostWithStatus(t *testing.T, db *gorm.DB, authorID string, status models.PostStatus) *models.FinancePost {
	t.Helper()

	post := &models.FinancePost{
		Title:      fmt.Sprintf("Test Post %d", nextID()),
		Content:    "A practical money tip with enough content to pass validation.",
		Category:   models.PostCategoryGeneral,
		AuthorID:   authorID,
		AuthorName: "Test Author",
		Status:     status,
	}
	if status == models.PostStatusApproved {
		now := time.Now()
		post.ApprovedAt = &now
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}
