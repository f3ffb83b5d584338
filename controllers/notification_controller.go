package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whistle-guardian/api-go/models"
	"github.com/whistle-guardian/api-go/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// ListNotifications returns the caller's inbox, newest first. Pass
// ?unread=true to fetch only unread rows.
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	user := utils.GetUser(c)

	query := nc.DB.Where("user_id = ?", user.UserID).Order("created_at DESC")
	if c.Query("unread") == "true" {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkRead flips a notification to read. Re-marking an already-read
// notification is a no-op success, not an error.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	user := utils.GetUser(c)

	var notification models.Notification
	if err := nc.DB.First(&notification, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if notification.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if !notification.Read {
		if err := nc.DB.Model(&notification).Update("read", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
			return
		}
		notification.Read = true
	}

	c.JSON(http.StatusOK, notification)
}

// MarkAllRead flips every unread notification in the caller's inbox.
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	user := utils.GetUser(c)

	result := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.UserID, false).
		Update("read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "updated": result.RowsAffected})
}
