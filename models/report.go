package models

import (
	"time"

	"gorm.io/gorm"
)

// Report statuses follow the investigation lifecycle.
const (
	ReportStatusPending       = "pending"
	ReportStatusInvestigating = "investigating"
	ReportStatusResolved      = "resolved"
)

type Report struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null;type:text" json:"description"`
	Location    string    `json:"location"`
	Category    string    `gorm:"not null" json:"category"`
	Timestamp   time.Time `gorm:"not null" json:"timestamp"`
	Status      string    `gorm:"not null;default:'pending'" json:"status"`

	// Supporters is a denormalized projection of the report_likes row count.
	// It is only touched inside the same transaction as the like row, and the
	// reconciler job re-derives it from the canonical count.
	Supporters int `gorm:"not null;default:0" json:"supporters"`

	// Evidence holds public URLs returned by the upload endpoint. The report
	// service never stores or inspects file bytes itself.
	Evidence StringArray `json:"evidence"`

	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `json:"-" gorm:"foreignKey:UserID"`

	// Optional bounty the owner offers for help resolving the report.
	BountyAmount      *float64 `json:"bounty_amount,omitempty"`
	BountyCurrency    string   `json:"bounty_currency,omitempty"`
	BountyDescription string   `gorm:"type:text" json:"bounty_description,omitempty"`
	HelpNeeded        string   `gorm:"type:text" json:"help_needed,omitempty"`
	IsBountyActive    bool     `gorm:"default:false" json:"is_bounty_active"`

	Updates     []ReportUpdate     `json:"updates" gorm:"foreignKey:ReportID"`
	Likes       []ReportLike       `json:"-" gorm:"foreignKey:ReportID"`
	Acceptances []BountyAcceptance `json:"-" gorm:"foreignKey:ReportID"`
}
