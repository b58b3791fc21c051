package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fintrack/finance-api/internal/api/handler"
	"github.com/fintrack/finance-api/internal/api/middleware"
	"github.com/fintrack/finance-api/internal/core/domain"
	"github.com/fintrack/finance-api/internal/core/ports"
)

// Services bundles the use-case layer handed to the router.
type Services struct {
	Auth        ports.AuthService
	Token       ports.TokenService
	User        ports.UserService
	Transaction ports.TransactionService
	Budget      ports.BudgetService
	Goal        ports.GoalService
	Dashboard   ports.DashboardService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, db *mongo.Database, rdb *redis.Client, log zerolog.Logger, production bool) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, production)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("fintrack"))

	authMiddleware := middleware.Auth(svc.Token)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.User)
	transactionHandler := handler.NewTransactionHandler(svc.Transaction)
	budgetHandler := handler.NewBudgetHandler(svc.Budget)
	goalHandler := handler.NewGoalHandler(svc.Goal)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboard)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// --- Profile self-service ---
	users := api.Group("/users", authMiddleware)
	users.GET("/profile", userHandler.Profile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.DELETE("/profile", userHandler.DeleteAccount)
	users.PUT("/password", userHandler.ChangePassword)

	// --- Admin user management ---
	admin := api.Group("/users", authMiddleware)
	admin.GET("", userHandler.List, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/:id", userHandler.Get, middleware.RBAC(domain.RoleAdmin))
	admin.PUT("/:id", userHandler.Update) // owner-or-admin enforced in the service
	admin.DELETE("/:id", userHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Transactions ---
	transactions := api.Group("/transactions", authMiddleware)
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("/stats/monthly", transactionHandler.MonthlyStats)
	transactions.GET("/:id", transactionHandler.Get)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	// --- Budgets ---
	budgets := api.Group("/budgets", authMiddleware)
	budgets.GET("", budgetHandler.List)
	budgets.POST("", budgetHandler.Create)
	budgets.GET("/:id", budgetHandler.Get)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)
	budgets.GET("/:id/progress", budgetHandler.Progress)

	// --- Goals ---
	goals := api.Group("/goals", authMiddleware)
	goals.GET("", goalHandler.List)
	goals.POST("", goalHandler.Create)
	goals.GET("/:id", goalHandler.Get)
	goals.PUT("/:id", goalHandler.Update)
	goals.DELETE("/:id", goalHandler.Delete)
	goals.PUT("/:id/progress", goalHandler.UpdateProgress)

	// --- Dashboard ---
	api.GET("/dashboard", dashboardHandler.Summary, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
