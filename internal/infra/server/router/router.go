// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/budgetsnap/backend/internal/integration/entrypoint/controller"
	"github.com/budgetsnap/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	authController         *controller.AuthController
	scanController         *controller.ScanController
	receiptController      *controller.ReceiptController
	categoryController     *controller.CategoryController
	analyticsController    *controller.AnalyticsController
	tipController          *controller.TipController
	notificationController *controller.NotificationController
	profileController      *controller.ProfileController
	settingsController     *controller.SettingsController
	scanRateLimiter        *middleware.RateLimiter
	loginRateLimiter       *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
	uploadDir              string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	scanController *controller.ScanController,
	receiptController *controller.ReceiptController,
	categoryController *controller.CategoryController,
	analyticsController *controller.AnalyticsController,
	tipController *controller.TipController,
	notificationController *controller.NotificationController,
	profileController *controller.ProfileController,
	settingsController *controller.SettingsController,
	scanRateLimiter *middleware.RateLimiter,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	uploadDir string,
) *Router {
	return &Router{
		healthController:       healthController,
		authController:         authController,
		scanController:         scanController,
		receiptController:      receiptController,
		categoryController:     categoryController,
		analyticsController:    analyticsController,
		tipController:          tipController,
		notificationController: notificationController,
		profileController:      profileController,
		settingsController:     settingsController,
		scanRateLimiter:        scanRateLimiter,
		loginRateLimiter:       loginRateLimiter,
		authMiddleware:         authMiddleware,
		uploadDir:              uploadDir,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupStaticRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupStaticRoutes serves stored receipt images.
func (r *Router) setupStaticRoutes() {
	if r.uploadDir != "" {
		r.engine.Static("/uploads", r.uploadDir)
	}
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.authController != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				if r.loginRateLimiter != nil {
					auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				} else {
					auth.POST("/login", r.authController.Login)
				}
				auth.POST("/refresh", r.authController.Refresh)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		if r.authMiddleware == nil {
			return
		}

		// Scan is the expensive AI path, so it gets its own rate limit.
		if r.scanController != nil {
			scan := v1.Group("/scan")
			scan.Use(r.authMiddleware.Authenticate())
			if r.scanRateLimiter != nil {
				scan.Use(r.scanRateLimiter.Middleware())
			}
			{
				scan.POST("", r.scanController.Scan)
				scan.POST("/text", r.scanController.ScanText)
			}
		}

		if r.receiptController != nil {
			receipts := v1.Group("/receipts")
			receipts.Use(r.authMiddleware.Authenticate())
			{
				receipts.GET("", r.receiptController.List)
				receipts.POST("", r.receiptController.Create)
				if r.scanRateLimiter != nil {
					receipts.POST("/upload", r.scanRateLimiter.Middleware(), r.receiptController.Upload)
				} else {
					receipts.POST("/upload", r.receiptController.Upload)
				}
				receipts.GET("/:id", r.receiptController.Get)
				receipts.PUT("/:id", r.receiptController.Update)
				receipts.DELETE("/:id", r.receiptController.Delete)
			}
		}

		if r.categoryController != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PUT("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		if r.analyticsController != nil {
			analytics := v1.Group("/analytics")
			analytics.Use(r.authMiddleware.Authenticate())
			{
				analytics.GET("/spending", r.analyticsController.SpendingSummary)
				analytics.GET("/categories", r.analyticsController.CategoryBreakdown)
			}
		}

		if r.tipController != nil {
			tips := v1.Group("/tips")
			tips.Use(r.authMiddleware.Authenticate())
			{
				tips.GET("", r.tipController.List)
			}
		}

		if r.notificationController != nil {
			notifications := v1.Group("/notifications")
			notifications.Use(r.authMiddleware.Authenticate())
			{
				notifications.GET("", r.notificationController.List)
				notifications.GET("/unread-count", r.notificationController.UnreadCount)
				notifications.POST("/read-all", r.notificationController.MarkAllRead)
				notifications.PATCH("/:id/read", r.notificationController.MarkRead)
			}
		}

		if r.profileController != nil {
			profile := v1.Group("/profile")
			profile.Use(r.authMiddleware.Authenticate())
			{
				profile.GET("", r.profileController.Get)
				profile.PUT("", r.profileController.Update)
				profile.POST("/avatar", r.profileController.UploadAvatar)
				profile.PUT("/budget", r.profileController.UpdateBudget)
			}
		}

		if r.settingsController != nil {
			settings := v1.Group("/settings")
			settings.Use(r.authMiddleware.Authenticate())
			{
				settings.GET("", r.settingsController.Get)
				settings.PUT("", r.settingsController.Update)
				settings.PUT("/notifications", r.settingsController.UpdateNotifications)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
