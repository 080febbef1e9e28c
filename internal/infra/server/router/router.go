// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/household-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/household-ledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine               *gin.Engine
	healthController     *controller.HealthController
	authController       *controller.AuthController
	accountController    *controller.AccountController
	categoryController   *controller.CategoryController
	entryController      *controller.EntryController
	recurringController  *controller.RecurringController
	budgetController     *controller.BudgetController
	invoiceController    *controller.InvoiceController
	suggestionController *controller.SuggestionController
	loginRateLimiter     *middleware.RateLimiter
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	accountController *controller.AccountController,
	categoryController *controller.CategoryController,
	entryController *controller.EntryController,
	recurringController *controller.RecurringController,
	budgetController *controller.BudgetController,
	invoiceController *controller.InvoiceController,
	suggestionController *controller.SuggestionController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:     healthController,
		authController:       authController,
		accountController:    accountController,
		categoryController:   categoryController,
		entryController:      entryController,
		recurringController:  recurringController,
		budgetController:     budgetController,
		invoiceController:    invoiceController,
		suggestionController: suggestionController,
		loginRateLimiter:     loginRateLimiter,
		authMiddleware:       authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// Account routes (require authentication)
		if r.accountController != nil && r.authMiddleware != nil {
			accounts := v1.Group("/accounts")
			accounts.Use(r.authMiddleware.Authenticate())
			{
				accounts.POST("", r.accountController.Create)
				accounts.GET("", r.accountController.List)

				// Account-scoped category routes
				if r.categoryController != nil {
					accounts.POST("/:accountId/categories", r.categoryController.Create)
					accounts.GET("/:accountId/categories", r.categoryController.List)
				}

				// Account-scoped entry routes
				if r.entryController != nil {
					accounts.POST("/:accountId/entries", r.entryController.Create)
					accounts.GET("/:accountId/entries", r.entryController.List)
				}

				// Account-scoped recurring template routes
				if r.recurringController != nil {
					accounts.POST("/:accountId/recurring-templates", r.recurringController.Create)
					accounts.GET("/:accountId/recurring-templates", r.recurringController.List)
				}

				// Account-scoped budget routes
				if r.budgetController != nil {
					accounts.POST("/:accountId/budgets", r.budgetController.Create)
					accounts.GET("/:accountId/budgets", r.budgetController.Progress)
				}
			}
		}

		// Category routes (require authentication)
		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		// Entry routes (require authentication)
		if r.entryController != nil && r.authMiddleware != nil {
			entries := v1.Group("/entries")
			entries.Use(r.authMiddleware.Authenticate())
			{
				entries.DELETE("/:id", r.entryController.Delete)
			}
		}

		// Recurring template routes (require authentication)
		if r.recurringController != nil && r.authMiddleware != nil {
			templates := v1.Group("/recurring-templates")
			templates.Use(r.authMiddleware.Authenticate())
			{
				templates.PUT("/:id", r.recurringController.Update)
				templates.DELETE("/:id", r.recurringController.Delete)
				templates.GET("/:id/occurrences", r.recurringController.ListOccurrences)
				templates.POST("/:id/reconcile", r.recurringController.Reconcile)
			}

			occurrences := v1.Group("/occurrences")
			occurrences.Use(r.authMiddleware.Authenticate())
			{
				occurrences.POST("/:id/apply", r.recurringController.Apply)
				occurrences.POST("/:id/cancel", r.recurringController.Cancel)
			}
		}

		// Budget routes (require authentication)
		if r.budgetController != nil && r.authMiddleware != nil {
			budgets := v1.Group("/budgets")
			budgets.Use(r.authMiddleware.Authenticate())
			{
				budgets.DELETE("/:id", r.budgetController.Delete)
			}
		}

		// Invoice routes (require authentication)
		if r.invoiceController != nil && r.authMiddleware != nil {
			invoices := v1.Group("/invoices")
			invoices.Use(r.authMiddleware.Authenticate())
			{
				invoices.POST("", r.invoiceController.Create)
				invoices.GET("", r.invoiceController.List)
				invoices.POST("/:id/issue", r.invoiceController.Issue)
				invoices.POST("/:id/cancel", r.invoiceController.Cancel)
				invoices.POST("/:id/pay", r.invoiceController.MarkPaid)
			}
		}

		// Suggestion routes (require authentication)
		if r.suggestionController != nil && r.authMiddleware != nil {
			suggestions := v1.Group("/suggestions")
			suggestions.Use(r.authMiddleware.Authenticate())
			{
				suggestions.POST("/category", r.suggestionController.Suggest)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
