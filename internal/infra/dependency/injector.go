// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/household-ledger/backend/config"
	"github.com/household-ledger/backend/internal/application/usecase/account"
	"github.com/household-ledger/backend/internal/application/usecase/auth"
	"github.com/household-ledger/backend/internal/application/usecase/budget"
	"github.com/household-ledger/backend/internal/application/usecase/category"
	"github.com/household-ledger/backend/internal/application/usecase/entry"
	"github.com/household-ledger/backend/internal/application/usecase/invoice"
	"github.com/household-ledger/backend/internal/application/usecase/recurring"
	"github.com/household-ledger/backend/internal/application/usecase/suggestion"
	"github.com/household-ledger/backend/internal/infra/server/router"
	"github.com/household-ledger/backend/internal/integration/adapters"
	"github.com/household-ledger/backend/internal/integration/email"
	"github.com/household-ledger/backend/internal/integration/email/templates"
	"github.com/household-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/household-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/household-ledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config         *config.Config
	DB             *gorm.DB
	Router         *router.Router
	EmailWorker    *email.Worker
	ReminderWorker *email.ReminderWorker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	entryRepo := persistence.NewEntryRepository(db)
	recurringRepo := persistence.NewRecurringRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	invoiceRepo := persistence.NewInvoiceRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	clock := adapters.NewSystemClock()
	geminiService := adapters.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.Model)

	// Create email pipeline
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	emailSender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	emailService := email.NewService(emailQueueRepo)
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})
	reminderWorker := email.NewReminderWorker(
		recurringRepo,
		emailQueueRepo,
		emailService,
		clock,
		cfg.Recurrence.ReminderLeadDays,
	)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create account use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)

	// Create category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, accountRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, accountRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, accountRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, accountRepo)

	// Create entry use cases
	createEntryUseCase := entry.NewCreateEntryUseCase(entryRepo, accountRepo, categoryRepo)
	listEntriesUseCase := entry.NewListEntriesUseCase(entryRepo, accountRepo)
	deleteEntryUseCase := entry.NewDeleteEntryUseCase(entryRepo, accountRepo)

	// Create recurring use cases
	horizon := cfg.Recurrence.HorizonMonths
	createTemplateUseCase := recurring.NewCreateTemplateUseCase(recurringRepo, accountRepo, categoryRepo, clock, horizon)
	updateTemplateUseCase := recurring.NewUpdateTemplateUseCase(recurringRepo, accountRepo, categoryRepo, clock, horizon)
	listTemplatesUseCase := recurring.NewListTemplatesUseCase(recurringRepo, accountRepo)
	deleteTemplateUseCase := recurring.NewDeleteTemplateUseCase(recurringRepo, accountRepo)
	reconcileTemplateUseCase := recurring.NewReconcileTemplateUseCase(recurringRepo, accountRepo, clock, horizon)
	listOccurrencesUseCase := recurring.NewListOccurrencesUseCase(recurringRepo, accountRepo, clock, horizon)
	applyOccurrenceUseCase := recurring.NewApplyOccurrenceUseCase(recurringRepo, accountRepo, clock)
	cancelOccurrenceUseCase := recurring.NewCancelOccurrenceUseCase(recurringRepo, accountRepo, clock)

	// Create budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, accountRepo, categoryRepo)
	budgetProgressUseCase := budget.NewBudgetProgressUseCase(budgetRepo, entryRepo, accountRepo, categoryRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo, accountRepo)

	// Create invoice use cases
	createInvoiceUseCase := invoice.NewCreateInvoiceUseCase(invoiceRepo, accountRepo, categoryRepo)
	listInvoicesUseCase := invoice.NewListInvoicesUseCase(invoiceRepo, accountRepo)
	issueInvoiceUseCase := invoice.NewIssueInvoiceUseCase(invoiceRepo, accountRepo, clock)
	cancelInvoiceUseCase := invoice.NewCancelInvoiceUseCase(invoiceRepo, accountRepo, clock)
	markInvoicePaidUseCase := invoice.NewMarkInvoicePaidUseCase(invoiceRepo, accountRepo, clock)

	// Create suggestion use case
	suggestCategoryUseCase := suggestion.NewSuggestCategoryUseCase(geminiService, categoryRepo, accountRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	accountController := controller.NewAccountController(
		createAccountUseCase,
		listAccountsUseCase,
	)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	entryController := controller.NewEntryController(
		createEntryUseCase,
		listEntriesUseCase,
		deleteEntryUseCase,
	)

	recurringController := controller.NewRecurringController(
		createTemplateUseCase,
		updateTemplateUseCase,
		listTemplatesUseCase,
		deleteTemplateUseCase,
		reconcileTemplateUseCase,
		listOccurrencesUseCase,
		applyOccurrenceUseCase,
		cancelOccurrenceUseCase,
	)

	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		budgetProgressUseCase,
		deleteBudgetUseCase,
	)

	invoiceController := controller.NewInvoiceController(
		createInvoiceUseCase,
		listInvoicesUseCase,
		issueInvoiceUseCase,
		cancelInvoiceUseCase,
		markInvoicePaidUseCase,
	)

	suggestionController := controller.NewSuggestionController(suggestCategoryUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(redisClient, 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(redisClient)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		accountController,
		categoryController,
		entryController,
		recurringController,
		budgetController,
		invoiceController,
		suggestionController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		EmailWorker:    emailWorker,
		ReminderWorker: reminderWorker,
	}, nil
}
