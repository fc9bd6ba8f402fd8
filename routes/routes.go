// File: /routes/routes.go
package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"carservice-api/config"
	"carservice-api/controllers"
	"carservice-api/middleware"
	"carservice-api/services"
)

// Dependencies are the services shared between controllers.
type Dependencies struct {
	Mailer    controllers.WelcomeMailer
	Reminders *services.ReminderService
	Clock     services.Clock
}

// NewRouter builds the engine with the global middleware stack and all routes.
func NewRouter(db *gorm.DB, cfg *config.Config, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(SetupCORS(cfg.FrontendURL))
	router.Use(middleware.ErrorHandler())

	SetupRoutes(router, db, cfg, deps)
	return router
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Dependencies) {
	if deps.Clock == nil {
		deps.Clock = services.SystemClock{}
	}

	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, cfg.JWTTTL, deps.Mailer)
	carController := controllers.NewCarController(db, deps.Clock)
	serviceTypeController := controllers.NewServiceTypeController(db)
	serviceRecordController := controllers.NewServiceRecordController(db, deps.Reminders)
	reminderController := controllers.NewReminderController(db, deps.Reminders, deps.Clock)
	notificationController := controllers.NewNotificationController(db, deps.Clock)
	dashboardController := controllers.NewDashboardController(db, deps.Clock)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.ValidateJSON())

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		limited := auth.Group("")
		limited.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
		limited.POST("/register", authController.Register)
		limited.POST("/login", authController.Login)

		auth.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), authController.Me)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		cars := protected.Group("/cars")
		{
			cars.GET("", carController.GetCars)
			cars.POST("", carController.CreateCar)
			cars.GET("/:id", carController.GetCar)
			cars.PUT("/:id", carController.UpdateCar)
			cars.DELETE("/:id", carController.DeleteCar)
			cars.GET("/:id/stats", carController.GetCarStats)
			cars.GET("/:id/services", carController.GetCarServices)
		}

		protected.GET("/service-types", serviceTypeController.GetServiceTypes)

		records := protected.Group("/service-records")
		{
			records.GET("", serviceRecordController.GetServiceRecords)
			records.POST("", serviceRecordController.CreateServiceRecord)
			records.GET("/:id", serviceRecordController.GetServiceRecord)
			records.PUT("/:id", serviceRecordController.UpdateServiceRecord)
			records.DELETE("/:id", serviceRecordController.DeleteServiceRecord)
		}

		reminders := protected.Group("/reminders")
		{
			reminders.GET("", reminderController.GetReminders)
			reminders.GET("/overdue", reminderController.GetOverdueReminders)
			reminders.PUT("/:id", reminderController.UpdateReminder)
		}

		notifications := protected.Group("/notifications")
		{
			notifications.GET("", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetNotificationStats)
			notifications.PUT("/read-all", notificationController.MarkAllAsRead)
			notifications.PUT("/:id/read", notificationController.MarkAsRead)
		}

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/chart-data", dashboardController.GetChartData)
		}
	}
}

// SetupCORS allows the configured frontend origin; "*" or an empty value
// allows any origin.
func SetupCORS(allowedOrigin string) gin.HandlerFunc {
	allowedOrigin = strings.TrimRight(allowedOrigin, "/")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowedOrigin == "" || allowedOrigin == "*":
			c.Header("Access-Control-Allow-Origin", "*")
		case origin == allowedOrigin:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
