// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zakat-calculator/backend/config"
	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/application/usecase/asset"
	"github.com/zakat-calculator/backend/internal/application/usecase/auth"
	"github.com/zakat-calculator/backend/internal/application/usecase/liability"
	"github.com/zakat-calculator/backend/internal/application/usecase/reminder"
	"github.com/zakat-calculator/backend/internal/application/usecase/user"
	"github.com/zakat-calculator/backend/internal/application/usecase/zakat"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
	"github.com/zakat-calculator/backend/internal/infra/cache"
	"github.com/zakat-calculator/backend/internal/infra/scheduler"
	"github.com/zakat-calculator/backend/internal/infra/server/router"
	"github.com/zakat-calculator/backend/internal/integration/adapters"
	"github.com/zakat-calculator/backend/internal/integration/email"
	"github.com/zakat-calculator/backend/internal/integration/email/templates"
	"github.com/zakat-calculator/backend/internal/integration/entrypoint/controller"
	"github.com/zakat-calculator/backend/internal/integration/entrypoint/middleware"
	"github.com/zakat-calculator/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	DB               *gorm.DB
	Redis            *redis.Client
	Router           *router.Router
	EmailWorker      *email.Worker
	Jobs             scheduler.Jobs
	Notifications    *adapters.RedisNotificationService
	Prices           *adapters.RedisPriceService
	LoginRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil emailSender selects Resend, or a logging sender without an API key.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, emailSender adapter.EmailSender) (*Injector, error) {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	assetRepo := persistence.NewAssetRepository(db)
	liabilityRepo := persistence.NewLiabilityRepository(db)
	reminderRepo := persistence.NewReminderRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Adapters
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:            cfg.JWT.AccessTokenExpiry,
		Refresh:           cfg.JWT.RefreshTokenExpiry,
		RememberMeAccess:  cfg.JWT.RememberMeAccessExpiry,
		RememberMeRefresh: cfg.JWT.RememberMeRefreshExpiry,
	}, tokenRepo)
	calendar := adapters.NewApproximateHijriCalendar()

	fallback, err := fallbackPrices(cfg.Pricing)
	if err != nil {
		return nil, err
	}
	priceService := adapters.NewRedisPriceService(redisClient, cfg.Pricing.CacheTTL, fallback)

	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)
	notificationService := adapters.NewRedisNotificationService(redisClient, emailService, adapters.DefaultInboxSize)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	if emailSender == nil {
		emailSender = email.NewSender(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	// Auth and user use cases
	registerUseCase := auth.NewCreateUserUseCase(userRepo, passwordService, tokenService, emailService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getUserUseCase := user.NewGetUserUseCase(userRepo)
	updatePreferencesUseCase := user.NewUpdateUserPreferencesUseCase(userRepo)

	// Asset and liability use cases
	createAssetUseCase := asset.NewCreateAssetUseCase(userRepo, assetRepo, priceService, calendar)
	listAssetsUseCase := asset.NewListAssetsUseCase(assetRepo)
	getAssetUseCase := asset.NewGetAssetUseCase(assetRepo)
	updateAssetValueUseCase := asset.NewUpdateAssetValueUseCase(assetRepo, priceService)
	markAssetPaidUseCase := asset.NewMarkAssetZakatPaidUseCase(assetRepo, calendar)
	resetAssetPaymentUseCase := asset.NewResetAssetZakatPaymentUseCase(assetRepo)
	deleteAssetUseCase := asset.NewDeleteAssetUseCase(assetRepo, reminderRepo)
	refreshPricesUseCase := asset.NewRefreshMarketPricesUseCase(assetRepo, priceService)

	createLiabilityUseCase := liability.NewCreateLiabilityUseCase(userRepo, liabilityRepo)
	listLiabilitiesUseCase := liability.NewListLiabilitiesUseCase(liabilityRepo)
	deleteLiabilityUseCase := liability.NewDeleteLiabilityUseCase(liabilityRepo)

	// Zakat use cases
	calculateUseCase := zakat.NewCalculateZakatUseCase(userRepo, assetRepo, liabilityRepo, priceService, calendar)
	nisabUseCase := zakat.NewGetNisabThresholdUseCase(userRepo, priceService)
	summaryUseCase := zakat.NewGetPortfolioSummaryUseCase(userRepo, assetRepo, liabilityRepo, priceService, calendar)
	markAllPaidUseCase := zakat.NewMarkAllZakatPaidUseCase(userRepo, assetRepo, calendar)
	resetYearUseCase := zakat.NewResetZakatYearUseCase(userRepo, assetRepo)

	// Reminder use cases
	listRemindersUseCase := reminder.NewListRemindersUseCase(reminderRepo)
	scheduleRemindersUseCase := reminder.NewScheduleRecurringRemindersUseCase(userRepo, reminderRepo, calendar)
	customReminderUseCase := reminder.NewCreateCustomReminderUseCase(assetRepo, reminderRepo, calendar)
	snoozeReminderUseCase := reminder.NewSnoozeReminderUseCase(reminderRepo, notificationService)
	dismissReminderUseCase := reminder.NewDismissReminderUseCase(reminderRepo, notificationService)
	generateRemindersUseCase := reminder.NewGenerateRemindersUseCase(userRepo, assetRepo, reminderRepo, calendar, calculateUseCase)
	processRemindersUseCase := reminder.NewProcessRemindersUseCase(userRepo, reminderRepo, notificationService, calendar)

	// Controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cache.HealthCheck(redisClient))

	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
	userController := controller.NewUserController(getUserUseCase, updatePreferencesUseCase)
	assetController := controller.NewAssetController(
		createAssetUseCase,
		listAssetsUseCase,
		getAssetUseCase,
		updateAssetValueUseCase,
		markAssetPaidUseCase,
		resetAssetPaymentUseCase,
		deleteAssetUseCase,
	)
	liabilityController := controller.NewLiabilityController(createLiabilityUseCase, listLiabilitiesUseCase, deleteLiabilityUseCase)
	zakatController := controller.NewZakatController(calculateUseCase, nisabUseCase, summaryUseCase, markAllPaidUseCase, resetYearUseCase)
	reminderController := controller.NewReminderController(
		listRemindersUseCase,
		scheduleRemindersUseCase,
		customReminderUseCase,
		snoozeReminderUseCase,
		dismissReminderUseCase,
		notificationService,
	)

	// Middleware
	loginRateLimiter := middleware.NewRedisRateLimiter(redisClient, cfg.JWT.LoginRateLimit, cfg.JWT.LoginRateLimitWindow)
	if cfg.Server.Environment == "test" {
		loginRateLimiter.Disable()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		userController,
		assetController,
		liabilityController,
		zakatController,
		reminderController,
		loginRateLimiter,
		authMiddleware,
	)

	jobs := scheduler.Jobs{
		Generator:     generateRemindersUseCase,
		Processor:     processRemindersUseCase,
		Notifications: notificationService,
		Prices:        refreshPricesUseCase,
		Emails:        emailQueueRepo,
		Tokens:        tokenRepo,
		BatchSize:     cfg.Reminder.BatchSize,
		RetentionDays: cfg.Email.RetentionDays,
	}

	slog.Info("Dependencies wired", "environment", cfg.Server.Environment)

	return &Injector{
		Config:           cfg,
		DB:               db,
		Redis:            redisClient,
		Router:           r,
		EmailWorker:      emailWorker,
		Jobs:             jobs,
		Notifications:    notificationService,
		Prices:           priceService,
		LoginRateLimiter: loginRateLimiter,
	}, nil
}

// NewScheduler builds a cron scheduler with every configured job registered.
func (i *Injector) NewScheduler(timeout time.Duration) (*scheduler.Scheduler, error) {
	s := scheduler.New(timeout)
	if err := i.Jobs.Register(s, i.Config.Reminder); err != nil {
		return nil, err
	}
	return s, nil
}

func fallbackPrices(cfg config.PricingConfig) (adapters.FallbackPrices, error) {
	currency, err := valueobject.ParseCurrency(cfg.FallbackCurrency)
	if err != nil {
		return adapters.FallbackPrices{}, err
	}
	gold, err := decimal.NewFromString(cfg.FallbackGoldPerGram)
	if err != nil {
		return adapters.FallbackPrices{}, err
	}
	silver, err := decimal.NewFromString(cfg.FallbackSilverPerGram)
	if err != nil {
		return adapters.FallbackPrices{}, err
	}
	return adapters.FallbackPrices{Currency: currency, Gold: gold, Silver: silver}, nil
}
