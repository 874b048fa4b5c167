package services

import (
	"time"

	"budgetsmart/internal/models"
	"budgetsmart/internal/pagination"
	"budgetsmart/internal/stats"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, displayName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// CategoryInput carries the fields of a category being created or updated.
type CategoryInput struct {
	Name            string
	AllocatedAmount float64
	Color           string
	Icon            string
}

// BudgetServicer defines the contract for budget-related business logic.
// Every operation is scoped to exactly one owner via the explicit userID.
type BudgetServicer interface {
	CreateBudget(userID string, totalBudget float64, mode models.BudgetMode, categories []CategoryInput, intervalUnit models.IntervalUnit, intervalValue int) (*models.Budget, error)
	GetCurrentBudget(userID string) (*models.Budget, error)
	UpdateBudget(userID string, totalBudget *float64, mode *models.BudgetMode, intervalUnit *models.IntervalUnit, intervalValue *int) (*models.Budget, error)
	AddCategory(userID string, input CategoryInput) (*models.Category, error)
	UpdateCategory(userID, categoryID string, input CategoryInput) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
	GetCurrentStats(userID string) (*stats.BudgetStats, error)
	ResetCurrentPeriod(userID string) error
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	AddExpense(userID, name string, amount float64, categoryID string, date time.Time, notes string) (*models.Expense, error)
	GetCurrentExpenses(userID string) ([]models.Expense, error)
	UpdateExpense(userID, expenseID string, name *string, amount *float64, categoryID *string, date *time.Time, notes *string) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
}

// IncomeServicer defines the contract for income source management.
type IncomeServicer interface {
	AddIncomeSource(userID, name string, amount float64, frequency models.IncomeFrequency, color string) (*models.IncomeSource, error)
	GetUserIncomeSources(userID string) ([]models.IncomeSource, error)
	UpdateIncomeSource(userID, incomeID string, name *string, amount *float64, frequency *models.IncomeFrequency, color *string) (*models.IncomeSource, error)
	DeleteIncomeSource(userID, incomeID string) error
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	CreateGoal(userID, title, description string, targetAmount float64, category string, deadline time.Time, priority models.GoalPriority) (*models.Goal, error)
	GetUserGoals(userID string) ([]models.Goal, error)
	UpdateGoal(userID, goalID string, title, description *string, targetAmount *float64, category *string, deadline *time.Time, priority *models.GoalPriority) (*models.Goal, error)
	UpdateGoalProgress(userID, goalID string, amount float64) (*models.Goal, error)
	SetGoalStatus(userID, goalID string, status models.GoalStatus) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
}

// AchievementServicer defines the contract for the achievement system.
type AchievementServicer interface {
	GetUserAchievements(userID string) ([]models.Achievement, error)
	Evaluate(userID string) ([]models.Achievement, error)
}

// ProgressServicer derives progress analytics from the owner's current
// entity snapshots.
type ProgressServicer interface {
	GetProgressStats(userID string) (*stats.ProgressStats, error)
}

// PostServicer defines the contract for the community tip feed.
type PostServicer interface {
	SubmitPost(authorID, authorName, title, content string, category models.PostCategory, tags []string) (*models.FinancePost, error)
	GetPosts(filters stats.PostFilters, sortSpec stats.PostSort, page pagination.PageRequest) (*pagination.PageResponse[models.FinancePost], error)
	GetPostByID(postID string, countView bool) (*models.FinancePost, error)
	LikePost(userID, postID string) error
	DeletePost(postID string) error
	ApprovePost(adminID, postID string) (*models.FinancePost, error)
	RejectPost(adminID, postID, reason string) (*models.FinancePost, error)
	ToggleFeatured(adminID, postID string) (*models.FinancePost, error)
	GetPendingPosts() ([]models.FinancePost, error)
	GetFeaturedPosts() ([]models.FinancePost, error)
	GetPostsByAuthor(authorID string) ([]models.FinancePost, error)
	GetContribution(userID string) (*models.UserContribution, error)
	GetAdminStats() (*stats.AdminStats, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
