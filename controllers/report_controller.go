package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/whistle-guardian/api-go/models"
	"github.com/whistle-guardian/api-go/queue"
	"github.com/whistle-guardian/api-go/utils"
)

type ReportController struct {
	DB        *gorm.DB
	Publisher *queue.Publisher
}

func NewReportController(db *gorm.DB, publisher *queue.Publisher) *ReportController {
	return &ReportController{DB: db, Publisher: publisher}
}

type createReportInput struct {
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	Location          string   `json:"location"`
	Category          string   `json:"category" binding:"required"`
	Evidence          []string `json:"evidence"`
	BountyAmount      *float64 `json:"bounty_amount"`
	BountyCurrency    string   `json:"bounty_currency"`
	BountyDescription string   `json:"bounty_description"`
	HelpNeeded        string   `json:"help_needed"`
}

// CreateReport persists a new report for the authenticated owner. Evidence
// URLs come pre-uploaded from the files endpoint; no bytes pass through here.
func (rc *ReportController) CreateReport(c *gin.Context) {
	user := utils.GetUser(c)

	var input createReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evidence := models.StringArray(input.Evidence)
	if evidence == nil {
		evidence = models.StringArray{}
	}

	report := models.Report{
		Title:             input.Title,
		Description:       input.Description,
		Location:          input.Location,
		Category:          input.Category,
		Timestamp:         time.Now(),
		Status:            models.ReportStatusPending,
		Supporters:        0,
		Evidence:          evidence,
		UserID:            user.UserID,
		BountyAmount:      input.BountyAmount,
		BountyCurrency:    input.BountyCurrency,
		BountyDescription: input.BountyDescription,
		HelpNeeded:        input.HelpNeeded,
		IsBountyActive:    input.BountyAmount != nil || input.HelpNeeded != "",
	}

	if err := rc.DB.Create(&report).Error; err != nil {
		zap.S().Errorw("failed to create report", "user_id", user.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	c.JSON(http.StatusCreated, report)
}

// ListReports returns reports filtered by category/status/search and sorted
// by recency (default), supporter count, or title.
func (rc *ReportController) ListReports(c *gin.Context) {
	query := rc.DB.Model(&models.Report{}).Preload("Updates")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		needle := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	switch c.Query("sort") {
	case "supporters":
		query = query.Order("supporters DESC")
	case "title":
		query = query.Order("title ASC")
	default:
		query = query.Order("timestamp DESC")
	}

	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		zap.S().Errorw("failed to list reports", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

func (rc *ReportController) GetReport(c *gin.Context) {
	var report models.Report
	if err := rc.DB.Preload("Updates", func(db *gorm.DB) *gorm.DB {
		return db.Order("report_updates.created_at ASC")
	}).First(&report, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, report)
}

type addUpdateInput struct {
	Content string `json:"content" binding:"required"`
}

// AddUpdate appends an entry to the report's progress log. Only the owner or
// an approved bounty helper may post; everyone else gets a 403.
func (rc *ReportController) AddUpdate(c *gin.Context) {
	user := utils.GetUser(c)

	var report models.Report
	if err := rc.DB.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var input addUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updatedByType := models.UpdateByOwner
	if report.UserID != user.UserID {
		var acceptance models.BountyAcceptance
		err := rc.DB.Where("report_id = ? AND helper_id = ? AND status = ?",
			report.ID, user.UserID, models.AcceptanceStatusApproved).First(&acceptance).Error
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the report owner or an approved helper can post updates"})
			return
		}
		updatedByType = models.UpdateByHelper
	}

	update := models.ReportUpdate{
		ReportID:      report.ID,
		UserID:        user.UserID,
		Content:       input.Content,
		UpdatedByType: updatedByType,
	}

	if err := rc.DB.Create(&update).Error; err != nil {
		zap.S().Errorw("failed to create report update", "report_id", report.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add update"})
		return
	}

	rc.fanOutUpdate(&report, &update)

	c.JSON(http.StatusCreated, update)
}

func (rc *ReportController) ListUpdates(c *gin.Context) {
	var report models.Report
	if err := rc.DB.First(&report, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var updates []models.ReportUpdate
	if err := rc.DB.Where("report_id = ?", report.ID).Order("created_at ASC").Find(&updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updates"})
		return
	}

	c.JSON(http.StatusOK, updates)
}

// fanOutUpdate notifies the parties on the other side of the update: the
// owner when a helper posts, approved helpers when the owner posts.
func (rc *ReportController) fanOutUpdate(report *models.Report, update *models.ReportUpdate) {
	data := models.JSONMap{
		"report_id": report.ID,
		"update_id": update.ID,
	}
	message := fmt.Sprintf("New update on report %q", report.Title)

	if update.UpdatedByType == models.UpdateByHelper {
		if err := notify(rc.DB, rc.Publisher, report.UserID,
			models.NotificationReportUpdated, "Report updated", message, data); err != nil {
			zap.S().Errorw("failed to notify report owner", "report_id", report.ID, "error", err)
		}
		return
	}

	var acceptances []models.BountyAcceptance
	if err := rc.DB.Where("report_id = ? AND status = ?",
		report.ID, models.AcceptanceStatusApproved).Find(&acceptances).Error; err != nil {
		zap.S().Errorw("failed to load helpers for fan-out", "report_id", report.ID, "error", err)
		return
	}
	for _, acceptance := range acceptances {
		if err := notify(rc.DB, rc.Publisher, acceptance.HelperID,
			models.NotificationReportUpdated, "Report updated", message, data); err != nil {
			zap.S().Errorw("failed to notify helper", "report_id", report.ID, "helper_id", acceptance.HelperID, "error", err)
		}
	}
}
