package models

import (
	"time"
)

// ReportLike records one user's "join hands" endorsement of a report. The
// composite unique index is what makes the support toggle idempotent: a pair
// can never hold more than one live row.
type ReportLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID  uint      `gorm:"not null;uniqueIndex:idx_report_likes_report_user" json:"report_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_report_likes_report_user" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Report Report `json:"-" gorm:"foreignKey:ReportID"`
}
