package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/whistle-guardian/api-go/models"
	"github.com/whistle-guardian/api-go/queue"
	"github.com/whistle-guardian/api-go/utils"
)

type SupportController struct {
	DB        *gorm.DB
	Publisher *queue.Publisher
}

func NewSupportController(db *gorm.DB, publisher *queue.Publisher) *SupportController {
	return &SupportController{DB: db, Publisher: publisher}
}

// ToggleSupport flips the caller's "join hands" state on a report. The like
// row and the supporters counter move in one transaction, with the counter
// updated by an atomic SQL expression rather than read-modify-write, so two
// concurrent toggles can never drift the count.
func (sc *SupportController) ToggleSupport(c *gin.Context) {
	user := utils.GetUser(c)

	var report models.Report
	if err := sc.DB.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var supporters int
	var isLiked bool

	err := sc.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.ReportLike
		err := tx.Where("report_id = ? AND user_id = ?", report.ID, user.UserID).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			like := models.ReportLike{ReportID: report.ID, UserID: user.UserID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Report{}).Where("id = ?", report.ID).
				UpdateColumn("supporters", gorm.Expr("supporters + 1")).Error; err != nil {
				return err
			}
			isLiked = true

		case err != nil:
			return err

		default:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			// Floor at zero in case the cached counter ever lags the rows.
			if err := tx.Model(&models.Report{}).Where("id = ?", report.ID).
				UpdateColumn("supporters", gorm.Expr("CASE WHEN supporters > 0 THEN supporters - 1 ELSE 0 END")).Error; err != nil {
				return err
			}
			isLiked = false
		}

		var updated models.Report
		if err := tx.Select("supporters").First(&updated, report.ID).Error; err != nil {
			return err
		}
		supporters = updated.Supporters
		return nil
	})
	if err != nil {
		zap.S().Errorw("support toggle failed", "report_id", report.ID, "user_id", user.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update support"})
		return
	}

	if isLiked && report.UserID != user.UserID {
		if err := notify(sc.DB, sc.Publisher, report.UserID,
			models.NotificationNewSupporter,
			"New supporter",
			fmt.Sprintf("Someone joined hands with your report %q", report.Title),
			models.JSONMap{"report_id": report.ID},
		); err != nil {
			zap.S().Errorw("failed to notify report owner of new supporter", "report_id", report.ID, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"supporters": supporters, "isLiked": isLiked})
}
