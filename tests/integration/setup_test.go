package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"budgetsmart/internal/handlers"
	"budgetsmart/internal/logger"
	"budgetsmart/internal/middleware"
	"budgetsmart/internal/models"
	"budgetsmart/internal/services"
	"budgetsmart/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Budget{},
		&models.Category{},
		&models.Expense{},
		&models.IncomeSource{},
		&models.Goal{},
		&models.Achievement{},
		&models.FinancePost{},
		&models.UserContribution{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	budgetService := services.NewBudgetService(db)
	expenseService := services.NewExpenseService(db, budgetService)
	incomeService := services.NewIncomeService(db)
	goalService := services.NewGoalService(db)
	achievementService := services.NewAchievementService(db)
	progressService := services.NewProgressService(db, achievementService)
	postService := services.NewPostService(db)
	auditService := services.NewAuditService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, achievementService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	goalHandler := handlers.NewGoalHandler(goalService, achievementService)
	progressHandler := handlers.NewProgressHandler(progressService, achievementService)
	postHandler := handlers.NewPostHandler(postService, userService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("/current", budgetHandler.GetCurrentBudget)
	budgets.PUT("/current", budgetHandler.UpdateBudget)
	budgets.GET("/current/stats", budgetHandler.GetBudgetStats)
	budgets.POST("/current/reset", budgetHandler.ResetPeriod)
	budgets.POST("/current/categories", budgetHandler.AddCategory)
	budgets.PUT("/current/categories/:id", budgetHandler.UpdateCategory)
	budgets.DELETE("/current/categories/:id", budgetHandler.DeleteCategory)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.AddExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	incomes := protected.Group("/incomes")
	incomes.POST("", incomeHandler.AddIncomeSource)
	incomes.GET("", incomeHandler.GetIncomeSources)
	incomes.PUT("/:id", incomeHandler.UpdateIncomeSource)
	incomes.DELETE("/:id", incomeHandler.DeleteIncomeSource)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/progress", goalHandler.AddGoalProgress)
	goals.PUT("/:id/status", goalHandler.SetGoalStatus)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	progress := protected.Group("/progress")
	progress.GET("/stats", progressHandler.GetProgressStats)
	progress.GET("/achievements", progressHandler.GetAchievements)
	progress.POST("/achievements/evaluate", progressHandler.EvaluateAchievements)

	posts := protected.Group("/posts")
	posts.POST("", postHandler.SubmitPost)
	posts.GET("", postHandler.GetPosts)
	posts.GET("/featured", postHandler.GetFeaturedPosts)
	posts.GET("/mine", postHandler.GetMyPosts)
	posts.GET("/contribution", postHandler.GetContribution)
	posts.GET("/:id", postHandler.GetPost)
	posts.POST("/:id/like", postHandler.LikePost)

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	admin.GET("/stats", postHandler.GetAdminStats)
	admin.GET("/posts/pending", postHandler.GetPendingPosts)
	admin.POST("/posts/:id/approve", postHandler.ApprovePost)
	admin.POST("/posts/:id/reject", postHandler.RejectPost)
	admin.POST("/posts/:id/feature", postHandler.ToggleFeatured)
	admin.DELETE("/posts/:id", postHandler.DeletePost)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"display_name":"Test User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// registerAdmin registers a user, flips the admin flag directly in the
// database, and logs in again so the token carries the admin claim.
func (app *testApp) registerAdmin(t *testing.T, email, password string) (token, userID string) {
	t.Helper()
	_, userID = app.registerUser(t, email, password)
	if err := app.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_admin", true).Error; err != nil {
		t.Fatalf("failed to promote admin: %v", err)
	}

	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string), userID
}
