// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/budgetsnap/backend/config"
	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/application/usecase/analytics"
	"github.com/budgetsnap/backend/internal/application/usecase/auth"
	"github.com/budgetsnap/backend/internal/application/usecase/category"
	"github.com/budgetsnap/backend/internal/application/usecase/notification"
	"github.com/budgetsnap/backend/internal/application/usecase/profile"
	"github.com/budgetsnap/backend/internal/application/usecase/receipt"
	"github.com/budgetsnap/backend/internal/application/usecase/scan"
	"github.com/budgetsnap/backend/internal/application/usecase/settings"
	"github.com/budgetsnap/backend/internal/application/usecase/tip"
	"github.com/budgetsnap/backend/internal/domain/entity"
	"github.com/budgetsnap/backend/internal/infra/server/router"
	"github.com/budgetsnap/backend/internal/integration/adapters"
	"github.com/budgetsnap/backend/internal/integration/email"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/controller"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/middleware"
	"github.com/budgetsnap/backend/internal/integration/persistence"
	"github.com/budgetsnap/backend/internal/integration/storage"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	categoryRepo adapter.CategoryRepository
}

// NewInjector creates a new dependency injector with all dependencies
// wired. The redis client and the database health checker may be nil;
// the affected pieces degrade instead of failing startup.
func NewInjector(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	dbHealthChecker func() bool,
	logger *slog.Logger,
) (*Injector, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	receiptRepo := persistence.NewReceiptRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	tipRepo := persistence.NewTipRepository(db)
	notificationRepo := persistence.NewNotificationRepository(db)
	profileRepo := persistence.NewProfileRepository(db)
	settingsRepo := persistence.NewSettingsRepository(db)

	// Adapters
	passwordService := adapters.NewBcryptPasswordService()
	tokenService := adapters.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo)
	visionService := adapters.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.VisionModel, cfg.Gemini.TextModel)
	emailSender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	imageStore, err := storage.NewLocalImageStore(cfg.Upload.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image store: %w", err)
	}

	retryPolicy := scan.NewRetryPolicy(cfg.Gemini.MaxAttempts, cfg.Gemini.BaseDelay, cfg.Gemini.AttemptTimeout)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Scan and receipt use cases
	extractUseCase := scan.NewExtractReceiptUseCase(visionService, categoryRepo, retryPolicy, cfg.Upload.MaxImageBytes, logger)
	uploadUseCase := receipt.NewUploadReceiptUseCase(extractUseCase, receiptRepo, imageStore, logger)
	createReceiptUseCase := receipt.NewCreateReceiptUseCase(receiptRepo)
	listReceiptsUseCase := receipt.NewListReceiptsUseCase(receiptRepo)
	getReceiptUseCase := receipt.NewGetReceiptUseCase(receiptRepo)
	updateReceiptUseCase := receipt.NewUpdateReceiptUseCase(receiptRepo)
	deleteReceiptUseCase := receipt.NewDeleteReceiptUseCase(receiptRepo, imageStore, logger)

	// Category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Analytics use cases
	spendingSummaryUseCase := analytics.NewSpendingSummaryUseCase(receiptRepo)
	categoryBreakdownUseCase := analytics.NewCategoryBreakdownUseCase(receiptRepo)

	// Tip use cases
	generalTipsUseCase := tip.NewGetGeneralTipsUseCase(tipRepo, visionService, retryPolicy, logger)
	personalizedTipsUseCase := tip.NewGetPersonalizedTipsUseCase(tipRepo, receiptRepo, visionService, retryPolicy, generalTipsUseCase, logger)

	// Notification use cases
	listNotificationsUseCase := notification.NewListNotificationsUseCase(notificationRepo)
	markReadUseCase := notification.NewMarkReadUseCase(notificationRepo)
	markAllReadUseCase := notification.NewMarkAllReadUseCase(notificationRepo)
	unreadCountUseCase := notification.NewUnreadCountUseCase(notificationRepo)
	notifyReceiptUseCase := notification.NewNotifyReceiptAddedUseCase(notificationRepo)
	budgetAlertUseCase := notification.NewBudgetAlertUseCase(receiptRepo, settingsRepo, profileRepo, notificationRepo, emailSender, logger)

	// Profile and settings use cases
	getProfileUseCase := profile.NewGetProfileUseCase(profileRepo)
	updateProfileUseCase := profile.NewUpdateProfileUseCase(profileRepo)
	getSettingsUseCase := settings.NewGetSettingsUseCase(settingsRepo)
	updateSettingsUseCase := settings.NewUpdateSettingsUseCase(settingsRepo, getSettingsUseCase)

	// Controllers
	healthController := controller.NewHealthController(dbHealthChecker, visionService.IsAvailable)
	authController := controller.NewAuthController(registerUseCase, loginUseCase, refreshTokenUseCase, logoutUseCase)
	scanController := controller.NewScanController(extractUseCase)
	receiptController := controller.NewReceiptController(
		createReceiptUseCase,
		uploadUseCase,
		listReceiptsUseCase,
		getReceiptUseCase,
		updateReceiptUseCase,
		deleteReceiptUseCase,
		notifyReceiptUseCase,
		budgetAlertUseCase,
		logger,
	)
	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)
	analyticsController := controller.NewAnalyticsController(spendingSummaryUseCase, categoryBreakdownUseCase)
	tipController := controller.NewTipController(generalTipsUseCase, personalizedTipsUseCase)
	notificationController := controller.NewNotificationController(
		listNotificationsUseCase,
		markReadUseCase,
		markAllReadUseCase,
		unreadCountUseCase,
	)
	profileController := controller.NewProfileController(getProfileUseCase, updateProfileUseCase, imageStore)
	settingsController := controller.NewSettingsController(getSettingsUseCase, updateSettingsUseCase)

	// Middleware. The limiters pass everything through when redis is
	// unavailable.
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	scanRateLimiter := middleware.NewRateLimiter(redisClient, "scan", logger)
	loginRateLimiter := middleware.NewRateLimiterWithConfig(redisClient, "login", 20, 1*time.Minute, logger)

	r := router.NewRouter(
		healthController,
		authController,
		scanController,
		receiptController,
		categoryController,
		analyticsController,
		tipController,
		notificationController,
		profileController,
		settingsController,
		scanRateLimiter,
		loginRateLimiter,
		authMiddleware,
		cfg.Upload.Dir,
	)

	return &Injector{
		Config:       cfg,
		DB:           db,
		Router:       r,
		categoryRepo: categoryRepo,
	}, nil
}

// systemCategorySeed pairs each default category with its display styling.
var systemCategorySeed = map[string]struct {
	color string
	icon  string
}{
	"food":           {"#F59E0B", "utensils"},
	"clothing":       {"#EC4899", "shirt"},
	"recreation":     {"#8B5CF6", "gamepad"},
	"transportation": {"#3B82F6", "car"},
	"housing":        {"#10B981", "home"},
	"utilities":      {"#06B6D4", "zap"},
	"healthcare":     {"#EF4444", "heart-pulse"},
	"education":      {"#6366F1", "graduation-cap"},
	"personal":       {"#F97316", "user"},
	"other":          {"#6B7280", "tag"},
}

// SeedSystemCategories inserts the default category set when none exist.
func (i *Injector) SeedSystemCategories(ctx context.Context) error {
	count, err := i.categoryRepo.CountSystem(ctx)
	if err != nil {
		return fmt.Errorf("failed to count system categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, name := range entity.BuiltinCategories {
		style, ok := systemCategorySeed[name]
		if !ok {
			style.color = entity.DefaultCategoryColor
			style.icon = entity.DefaultCategoryIcon
		}
		if err := i.categoryRepo.Create(ctx, entity.NewSystemCategory(name, style.color, style.icon)); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}

	slog.Info("Seeded system categories", "count", len(entity.BuiltinCategories))
	return nil
}
