// Package router assembles the gin engine: middleware, documentation and
// the /api/v1 routes.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/wetalkinmedia/PocketWatcha2/internal/cache"
	"github.com/wetalkinmedia/PocketWatcha2/internal/config"
	_ "github.com/wetalkinmedia/PocketWatcha2/internal/docs" // swagger docs
	"github.com/wetalkinmedia/PocketWatcha2/internal/handlers"
	"github.com/wetalkinmedia/PocketWatcha2/internal/middleware"
	"github.com/wetalkinmedia/PocketWatcha2/internal/services"
)

// Services are the dependencies the handlers are built from.
type Services struct {
	Users      services.UserServicer
	Audit      services.AuditServicer
	Profiles   services.ProfileServicer
	Categories services.CategoryServicer
	Budgets    services.BudgetServicer
	Expenses   services.ExpenseServicer
	Planner    services.PlannerServicer
	Insights   services.InsightServicer
	Tips       services.TipServicer
}

// NewServices builds the gorm-backed services. Insight views are memoized in
// store for ttl.
func NewServices(db *gorm.DB, store cache.Store, ttl time.Duration) Services {
	profiles := services.NewProfileService(db)
	expenses := services.NewExpenseService(db)
	return Services{
		Users:      services.NewUserService(db),
		Audit:      services.NewAuditService(db),
		Profiles:   profiles,
		Categories: services.NewCategoryService(db),
		Budgets:    services.NewBudgetService(db),
		Expenses:   expenses,
		Planner:    services.NewPlannerService(),
		Insights:   services.NewInsightService(db, expenses, profiles, store, ttl),
		Tips:       services.NewTipService(db, store),
	}
}

// New returns the configured engine.
func New(cfg *config.Config, svc Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, svc.Audit)
	profileHandler := handlers.NewProfileHandler(svc.Profiles, svc.Insights, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Profiles, svc.Planner, svc.Insights, svc.Audit)
	expenseHandler := handlers.NewExpenseHandler(svc.Expenses, svc.Insights, svc.Audit)
	insightHandler := handlers.NewInsightHandler(svc.Insights)
	calculatorHandler := handlers.NewCalculatorHandler(svc.Planner)
	tipHandler := handlers.NewTipHandler(svc.Tips, svc.Audit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(corsMiddleware(cfg.CORSAllowedOrigins))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	v1.POST("/calculator", calculatorHandler.Calculate)
	v1.GET("/locations", handlers.ListLocations)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile", profileHandler.UpdateProfile)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)

	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.PUT("", budgetHandler.SaveBudgets)
	budgets.POST("/allocate", budgetHandler.Allocate)
	budgets.POST("/recommended", budgetHandler.ApplyRecommended)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	insights := protected.Group("/insights")
	insights.GET("/report", insightHandler.Report)
	insights.GET("/advice", insightHandler.Advice)
	insights.GET("/trend", insightHandler.Trend)
	insights.GET("/stats", insightHandler.Stats)
	insights.GET("/overview", insightHandler.Overview)

	protected.GET("/tips/daily", tipHandler.DailyTip)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.APIKeyMiddleware(cfg.AdminAPIKey))
	admin.GET("/tips", tipHandler.ListTips)
	admin.POST("/tips", tipHandler.CreateTip)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.APIKeyHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	return cors.New(cfg)
}
