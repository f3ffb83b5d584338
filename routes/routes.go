package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whistle-guardian/api-go/controllers"
	"github.com/whistle-guardian/api-go/middleware"
	"github.com/whistle-guardian/api-go/queue"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, publisher *queue.Publisher) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	reportController := controllers.NewReportController(db, publisher)
	supportController := controllers.NewSupportController(db, publisher)
	bountyController := controllers.NewBountyController(db, publisher)
	notificationController := controllers.NewNotificationController(db)
	uploadController := controllers.NewUploadController(db)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/auth/register", authController.Register)
		public.POST("/auth/login", authController.Login)
		public.POST("/auth/refresh-token", authController.RefreshToken)

		// Browsing reports requires no account.
		public.GET("/reports", reportController.ListReports)
		public.GET("/reports/:id", reportController.GetReport)
		public.GET("/reports/:id/updates", reportController.ListUpdates)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/auth/logout", authController.Logout)
		protected.GET("/auth/profile", authController.GetProfile)

		SetupReportRoutes(protected, reportController, supportController)
		SetupBountyRoutes(protected, bountyController)
		SetupNotificationRoutes(protected, notificationController)
		SetupUploadRoutes(protected, uploadController)
	}
}
