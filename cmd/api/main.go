package main

import (
	"fmt"
	"net/http"
	"os"

	"budgetsmart/internal/config"
	"budgetsmart/internal/database"
	"budgetsmart/internal/handlers"
	"budgetsmart/internal/logger"
	"budgetsmart/internal/middleware"
	"budgetsmart/internal/services"
	"budgetsmart/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "budgetsmart/internal/docs" // Import swagger docs
)

// @title           BudgetSmart API
// @version         1.0
// @description     BudgetSmart is a personal finance application for building budgets, tracking expenses and savings goals, and sharing money tips with the community.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom validation tags with Gin's binding engine
	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	budgetService := services.NewBudgetService(db)
	expenseService := services.NewExpenseService(db, budgetService)
	incomeService := services.NewIncomeService(db)
	goalService := services.NewGoalService(db)
	achievementService := services.NewAchievementService(db)
	progressService := services.NewProgressService(db, achievementService)
	postService := services.NewPostService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, achievementService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	goalHandler := handlers.NewGoalHandler(goalService, achievementService)
	progressHandler := handlers.NewProgressHandler(progressService, achievementService)
	postHandler := handlers.NewPostHandler(postService, userService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("/current", budgetHandler.GetCurrentBudget)
	budgets.PUT("/current", budgetHandler.UpdateBudget)
	budgets.GET("/current/stats", budgetHandler.GetBudgetStats)
	budgets.POST("/current/reset", budgetHandler.ResetPeriod)
	budgets.POST("/current/categories", budgetHandler.AddCategory)
	budgets.PUT("/current/categories/:id", budgetHandler.UpdateCategory)
	budgets.DELETE("/current/categories/:id", budgetHandler.DeleteCategory)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.AddExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Income routes
	incomes := protected.Group("/incomes")
	incomes.POST("", incomeHandler.AddIncomeSource)
	incomes.GET("", incomeHandler.GetIncomeSources)
	incomes.PUT("/:id", incomeHandler.UpdateIncomeSource)
	incomes.DELETE("/:id", incomeHandler.DeleteIncomeSource)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/progress", goalHandler.AddGoalProgress)
	goals.PUT("/:id/status", goalHandler.SetGoalStatus)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	// Progress routes
	progress := protected.Group("/progress")
	progress.GET("/stats", progressHandler.GetProgressStats)
	progress.GET("/achievements", progressHandler.GetAchievements)
	progress.POST("/achievements/evaluate", progressHandler.EvaluateAchievements)

	// Community post routes
	posts := protected.Group("/posts")
	posts.POST("", postHandler.SubmitPost)
	posts.GET("", postHandler.GetPosts)
	posts.GET("/featured", postHandler.GetFeaturedPosts)
	posts.GET("/mine", postHandler.GetMyPosts)
	posts.GET("/contribution", postHandler.GetContribution)
	posts.GET("/:id", postHandler.GetPost)
	posts.POST("/:id/like", postHandler.LikePost)

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminMiddleware())
	admin.GET("/stats", postHandler.GetAdminStats)
	admin.GET("/posts/pending", postHandler.GetPendingPosts)
	admin.POST("/posts/:id/approve", postHandler.ApprovePost)
	admin.POST("/posts/:id/reject", postHandler.RejectPost)
	admin.POST("/posts/:id/feature", postHandler.ToggleFeatured)
	admin.DELETE("/posts/:id", postHandler.DeletePost)

	log.Infof("Starting BudgetSmart backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
