package jobs

import (
	"os"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReconcileSupporters re-derives every report's supporters counter from the
// canonical report_likes rows. The toggle endpoint keeps the counter in sync
// transactionally; this job repairs any drift from manual data edits or
// partial restores.
func ReconcileSupporters(db *gorm.DB) error {
	return db.Exec(`
		UPDATE reports
		SET supporters = (
			SELECT COUNT(*) FROM report_likes
			WHERE report_likes.report_id = reports.id
		)
	`).Error
}

// StartReconciler schedules ReconcileSupporters on RECONCILE_SCHEDULE
// (cron spec, default hourly) and returns the running scheduler.
func StartReconciler(db *gorm.DB) *cron.Cron {
	schedule := os.Getenv("RECONCILE_SCHEDULE")
	if schedule == "" {
		schedule = "@hourly"
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if err := ReconcileSupporters(db); err != nil {
			zap.S().Errorw("supporters reconciliation failed", "error", err)
			return
		}
		zap.S().Debugw("supporters counters reconciled")
	})
	if err != nil {
		zap.S().Errorw("invalid reconcile schedule, job not started", "schedule", schedule, "error", err)
		return c
	}

	c.Start()
	return c
}
