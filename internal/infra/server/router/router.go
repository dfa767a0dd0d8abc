// Package router sets up the HTTP routing for the application.
package router

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zakat-calculator/backend/internal/integration/entrypoint/controller"
	"github.com/zakat-calculator/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	authController      *controller.AuthController
	userController      *controller.UserController
	assetController     *controller.AssetController
	liabilityController *controller.LiabilityController
	zakatController     *controller.ZakatController
	reminderController  *controller.ReminderController
	loginRateLimiter    *middleware.RateLimiter
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	assetController *controller.AssetController,
	liabilityController *controller.LiabilityController,
	zakatController *controller.ZakatController,
	reminderController *controller.ReminderController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		authController:      authController,
		userController:      userController,
		assetController:     assetController,
		liabilityController: liabilityController,
		zakatController:     zakatController,
		reminderController:  reminderController,
		loginRateLimiter:    loginRateLimiter,
		authMiddleware:      authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(requestLogger(), gin.Recovery())

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	if r.authController != nil && r.loginRateLimiter != nil {
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.loginRateLimiter.Middleware(), r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authMiddleware.OptionalAuthenticate(), r.authController.Logout)
		}
	}

	if r.authMiddleware == nil {
		return
	}
	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	if r.userController != nil {
		users := protected.Group("/users")
		{
			users.GET("/me", r.userController.Me)
			users.PATCH("/me", r.userController.UpdatePreferences)
		}
	}

	if r.assetController != nil {
		assets := protected.Group("/assets")
		{
			assets.GET("", r.assetController.List)
			assets.POST("", r.assetController.Create)
			assets.GET("/:id", r.assetController.Get)
			assets.PATCH("/:id/value", r.assetController.UpdateValue)
			assets.DELETE("/:id", r.assetController.Delete)
			assets.POST("/:id/zakat-payments", r.assetController.MarkZakatPaid)
			assets.DELETE("/:id/zakat-payments/:year", r.assetController.ResetZakatPayment)
		}
	}

	if r.liabilityController != nil {
		liabilities := protected.Group("/liabilities")
		{
			liabilities.GET("", r.liabilityController.List)
			liabilities.POST("", r.liabilityController.Create)
			liabilities.DELETE("/:id", r.liabilityController.Delete)
		}
	}

	if r.zakatController != nil {
		zakat := protected.Group("/zakat")
		{
			zakat.POST("/calculate", r.zakatController.Calculate)
			zakat.GET("/nisab", r.zakatController.Nisab)
			zakat.GET("/summary", r.zakatController.Summary)
			zakat.POST("/payments", r.zakatController.MarkAllPaid)
			zakat.DELETE("/payments/:year", r.zakatController.ResetYear)
		}
	}

	if r.reminderController != nil {
		reminders := protected.Group("/reminders")
		{
			reminders.GET("", r.reminderController.List)
			reminders.POST("", r.reminderController.Create)
			reminders.POST("/schedule", r.reminderController.Schedule)
			reminders.POST("/:id/snooze", r.reminderController.Snooze)
			reminders.POST("/:id/dismiss", r.reminderController.Dismiss)
		}
		protected.GET("/notifications", r.reminderController.Notifications)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// requestLogger logs one structured line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}
		slog.Log(c.Request.Context(), level, "HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
