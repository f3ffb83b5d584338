package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/whistle-guardian/api-go/controllers"
)

func SetupNotificationRoutes(protected *gin.RouterGroup, notificationController *controllers.NotificationController) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", notificationController.ListNotifications)
		notifications.PUT("/read-all", notificationController.MarkAllRead)
		notifications.PUT("/:id/read", notificationController.MarkRead)
	}
}
