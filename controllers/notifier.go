package controllers

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/whistle-guardian/api-go/models"
	"github.com/whistle-guardian/api-go/queue"
)

// notify appends an unread inbox row for userID and mirrors the event onto
// the broker queue for push delivery. The inbox row is the durable record;
// the publish is best effort and never fails the caller. Pass the enclosing
// transaction as db when the notification must commit with its trigger.
func notify(db *gorm.DB, pub *queue.Publisher, userID uint, notifType, title, message string, data models.JSONMap) error {
	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}

	if err := db.Create(&notification).Error; err != nil {
		return err
	}

	if err := pub.Publish(queue.NotificationQueue, notification); err != nil {
		zap.S().Warnw("failed to publish notification event",
			"user_id", userID,
			"type", notifType,
			"error", err,
		)
	}

	return nil
}
