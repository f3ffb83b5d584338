package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AcceptanceStatusPending    = "pending"
	AcceptanceStatusApproved   = "approved"
	AcceptanceStatusRejected   = "rejected"
	AcceptanceStatusInProgress = "in_progress"
	AcceptanceStatusCompleted  = "completed"
	AcceptanceStatusCancelled  = "cancelled"
)

// BountyAcceptance is a helper's application to work a report's bounty.
// Only the report owner transitions it out of pending.
type BountyAcceptance struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	ReportID uint `gorm:"not null;uniqueIndex:idx_acceptances_report_helper" json:"report_id"`
	HelperID uint `gorm:"not null;uniqueIndex:idx_acceptances_report_helper" json:"helper_id"`

	AcceptedAt      time.Time  `gorm:"not null" json:"accepted_at"`
	AgreementSigned bool       `gorm:"not null;default:false" json:"agreement_signed"`
	Status          string     `gorm:"not null;default:'pending'" json:"status"`
	ApprovedBy      *uint      `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	Report Report `json:"-" gorm:"foreignKey:ReportID"`
	Helper User   `json:"-" gorm:"foreignKey:HelperID"`
}
