package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/whistle-guardian/api-go/models"
	"github.com/whistle-guardian/api-go/queue"
	"github.com/whistle-guardian/api-go/utils"
)

type BountyController struct {
	DB        *gorm.DB
	Publisher *queue.Publisher
}

func NewBountyController(db *gorm.DB, publisher *queue.Publisher) *BountyController {
	return &BountyController{DB: db, Publisher: publisher}
}

type acceptBountyInput struct {
	AgreementSigned bool `json:"agreement_signed"`
}

// AcceptBounty files the caller's application to help on a report's bounty.
// Requires an active bounty, a signed agreement, and at most one application
// per (report, helper) pair.
func (bc *BountyController) AcceptBounty(c *gin.Context) {
	user := utils.GetUser(c)

	var report models.Report
	if err := bc.DB.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var input acceptBountyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !report.IsBountyActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This report has no active bounty"})
		return
	}
	if !input.AgreementSigned {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The help agreement must be signed"})
		return
	}
	if report.UserID == user.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot accept a bounty on your own report"})
		return
	}

	var existing models.BountyAcceptance
	if err := bc.DB.Where("report_id = ? AND helper_id = ?", report.ID, user.UserID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already applied to help on this report"})
		return
	}

	acceptance := models.BountyAcceptance{
		ReportID:        report.ID,
		HelperID:        user.UserID,
		AcceptedAt:      time.Now(),
		AgreementSigned: true,
		Status:          models.AcceptanceStatusPending,
	}

	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&acceptance).Error; err != nil {
			return err
		}
		return notify(tx, bc.Publisher, report.UserID,
			models.NotificationBountyAccepted,
			"Bounty help offered",
			fmt.Sprintf("Someone offered to help on your report %q", report.Title),
			models.JSONMap{"report_id": report.ID, "acceptance_id": acceptance.ID},
		)
	})
	if err != nil {
		zap.S().Errorw("failed to create bounty acceptance", "report_id", report.ID, "helper_id", user.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept bounty"})
		return
	}

	c.JSON(http.StatusCreated, acceptance)
}

// ApproveAcceptance moves a pending application to approved. Owner only.
func (bc *BountyController) ApproveAcceptance(c *gin.Context) {
	bc.decideAcceptance(c, models.AcceptanceStatusApproved, "")
}

type rejectAcceptanceInput struct {
	Reason string `json:"reason"`
}

// RejectAcceptance moves a pending application to rejected with an optional
// reason. Owner only.
func (bc *BountyController) RejectAcceptance(c *gin.Context) {
	var input rejectAcceptanceInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bc.decideAcceptance(c, models.AcceptanceStatusRejected, input.Reason)
}

func (bc *BountyController) decideAcceptance(c *gin.Context, newStatus, reason string) {
	user := utils.GetUser(c)

	var acceptance models.BountyAcceptance
	if err := bc.DB.First(&acceptance, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bounty acceptance not found"})
		return
	}

	var report models.Report
	if err := bc.DB.First(&report, acceptance.ReportID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	if report.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the report owner can decide on help offers"})
		return
	}
	if acceptance.Status != models.AcceptanceStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This help offer has already been decided"})
		return
	}

	now := time.Now()
	acceptance.Status = newStatus
	acceptance.ApprovedBy = &user.UserID
	acceptance.ApprovedAt = &now
	acceptance.RejectionReason = reason

	notifType := models.NotificationBountyApproved
	title := "Help offer approved"
	message := fmt.Sprintf("Your offer to help on %q was approved", report.Title)
	if newStatus == models.AcceptanceStatusRejected {
		notifType = models.NotificationBountyRejected
		title = "Help offer rejected"
		message = fmt.Sprintf("Your offer to help on %q was rejected", report.Title)
		if reason != "" {
			message = fmt.Sprintf("%s: %s", message, reason)
		}
	}

	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&acceptance).Error; err != nil {
			return err
		}
		return notify(tx, bc.Publisher, acceptance.HelperID, notifType, title, message,
			models.JSONMap{"report_id": report.ID, "acceptance_id": acceptance.ID})
	})
	if err != nil {
		zap.S().Errorw("failed to update bounty acceptance", "acceptance_id", acceptance.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update help offer"})
		return
	}

	c.JSON(http.StatusOK, acceptance)
}

// ListReportAcceptances returns all applications on a report. Owner only.
func (bc *BountyController) ListReportAcceptances(c *gin.Context) {
	user := utils.GetUser(c)

	var report models.Report
	if err := bc.DB.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	if report.UserID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the report owner can view help offers"})
		return
	}

	var acceptances []models.BountyAcceptance
	if err := bc.DB.Where("report_id = ?", report.ID).Order("created_at DESC").Find(&acceptances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch help offers"})
		return
	}

	c.JSON(http.StatusOK, acceptances)
}

// ListMyAcceptances returns the caller's own applications across reports.
func (bc *BountyController) ListMyAcceptances(c *gin.Context) {
	user := utils.GetUser(c)

	var acceptances []models.BountyAcceptance
	if err := bc.DB.Where("helper_id = ?", user.UserID).Order("created_at DESC").Find(&acceptances).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch help offers"})
		return
	}

	c.JSON(http.StatusOK, acceptances)
}
