package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whistle-guardian/api-go/models"
)

func TestCreateReport(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	user := createTestUser(t, db, "whistler", "whistler@example.com")

	w := performRequest(r, http.MethodPost, "/api/reports", authToken(t, user.ID), h{
		"title":       "Toxic Discharge at Plant 4",
		"description": "Night-time discharge into the river behind the plant",
		"location":    "Plant 4, east outflow",
		"category":    "Environmental Violations",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var report models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "Toxic Discharge at Plant 4", report.Title)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, 0, report.Supporters)
	assert.Equal(t, user.ID, report.UserID)
	assert.False(t, report.IsBountyActive)
}

func TestCreateReportWithBounty(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	user := createTestUser(t, db, "whistler", "whistler@example.com")

	w := performRequest(r, http.MethodPost, "/api/reports", authToken(t, user.ID), h{
		"title":           "Procurement kickbacks",
		"description":     "Inflated invoices routed through a shell vendor",
		"category":        "Corruption",
		"bounty_amount":   500.0,
		"bounty_currency": "USD",
		"help_needed":     "Forensic accounting of the vendor ledger",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var report models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.True(t, report.IsBountyActive)
	require.NotNil(t, report.BountyAmount)
	assert.Equal(t, 500.0, *report.BountyAmount)
}

func TestCreateReportRequiresAuth(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := performRequest(r, http.MethodPost, "/api/reports", "", h{
		"title":       "No token",
		"description": "Should bounce",
		"category":    "Other",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateReportValidation(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	user := createTestUser(t, db, "whistler", "whistler@example.com")

	tests := []struct {
		name    string
		payload h
	}{
		{"missing title", h{"description": "d", "category": "Other"}},
		{"missing description", h{"title": "t", "category": "Other"}},
		{"missing category", h{"title": "t", "description": "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(r, http.MethodPost, "/api/reports", authToken(t, user.ID), tt.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetReportNotFound(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := performRequest(r, http.MethodGet, "/api/reports/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListReportsFilters(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	user := createTestUser(t, db, "whistler", "whistler@example.com")

	createTestReport(t, db, user, func(rep *models.Report) {
		rep.Title = "Toxic Discharge at Plant 4"
		rep.Category = "Environmental Violations"
		rep.Supporters = 3
		rep.Timestamp = time.Now().Add(-2 * time.Hour)
	})
	createTestReport(t, db, user, func(rep *models.Report) {
		rep.Title = "Payroll fraud in finance"
		rep.Category = "Fraud"
		rep.Status = models.ReportStatusInvestigating
		rep.Supporters = 7
		rep.Timestamp = time.Now().Add(-1 * time.Hour)
	})
	createTestReport(t, db, user, func(rep *models.Report) {
		rep.Title = "Asbestos in warehouse ceiling"
		rep.Category = "Safety Violations"
		rep.Supporters = 5
		rep.Timestamp = time.Now()
	})

	decode := func(body []byte) []models.Report {
		var reports []models.Report
		require.NoError(t, json.Unmarshal(body, &reports))
		return reports
	}

	t.Run("all, newest first", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/reports", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		reports := decode(w.Body.Bytes())
		require.Len(t, reports, 3)
		assert.Equal(t, "Asbestos in warehouse ceiling", reports[0].Title)
	})

	t.Run("filter by category", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/reports?category=Fraud", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		reports := decode(w.Body.Bytes())
		require.Len(t, reports, 1)
		assert.Equal(t, "Payroll fraud in finance", reports[0].Title)
	})

	t.Run("filter by status", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/reports?status=investigating", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		reports := decode(w.Body.Bytes())
		require.Len(t, reports, 1)
	})

	t.Run("case-insensitive search", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/reports?search=TOXIC", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		reports := decode(w.Body.Bytes())
		require.Len(t, reports, 1)
		assert.Equal(t, "Toxic Discharge at Plant 4", reports[0].Title)
	})

	t.Run("sort by supporters", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/reports?sort=supporters", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		reports := decode(w.Body.Bytes())
		require.Len(t, reports, 3)
		assert.Equal(t, 7, reports[0].Supporters)
	})

	t.Run("sort by title", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, "/api/reports?sort=title", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		reports := decode(w.Body.Bytes())
		require.Len(t, reports, 3)
		assert.Equal(t, "Asbestos in warehouse ceiling", reports[0].Title)
	})
}

func TestAddUpdate(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	owner := createTestUser(t, db, "owner", "owner@example.com")
	helper := createTestUser(t, db, "helper", "helper@example.com")
	stranger := createTestUser(t, db, "stranger", "stranger@example.com")

	report := createTestReport(t, db, owner, func(rep *models.Report) {
		rep.IsBountyActive = true
	})
	require.NoError(t, db.Create(&models.BountyAcceptance{
		ReportID:        report.ID,
		HelperID:        helper.ID,
		AcceptedAt:      time.Now(),
		AgreementSigned: true,
		Status:          models.AcceptanceStatusApproved,
	}).Error)

	path := reportPath(report.ID, "/updates")

	t.Run("owner posts update", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, path, authToken(t, owner.ID), h{"content": "Filed with the regulator"})
		require.Equal(t, http.StatusCreated, w.Code)

		var update models.ReportUpdate
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &update))
		assert.Equal(t, models.UpdateByOwner, update.UpdatedByType)

		// Approved helper is notified of the owner's update.
		var notifications []models.Notification
		require.NoError(t, db.Where("user_id = ? AND type = ?", helper.ID, models.NotificationReportUpdated).Find(&notifications).Error)
		assert.Len(t, notifications, 1)
	})

	t.Run("approved helper posts update", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, path, authToken(t, helper.ID), h{"content": "Ledger copies secured"})
		require.Equal(t, http.StatusCreated, w.Code)

		var update models.ReportUpdate
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &update))
		assert.Equal(t, models.UpdateByHelper, update.UpdatedByType)

		var notifications []models.Notification
		require.NoError(t, db.Where("user_id = ? AND type = ?", owner.ID, models.NotificationReportUpdated).Find(&notifications).Error)
		assert.Len(t, notifications, 1)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		w := performRequest(r, http.MethodPost, path, authToken(t, stranger.ID), h{"content": "Me too"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("updates listed in order", func(t *testing.T) {
		w := performRequest(r, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var updates []models.ReportUpdate
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updates))
		require.Len(t, updates, 2)
		assert.Equal(t, "Filed with the regulator", updates[0].Content)
	})
}
