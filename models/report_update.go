package models

import (
	"time"
)

const (
	UpdateByOwner  = "owner"
	UpdateByHelper = "helper"
)

// ReportUpdate is one entry in a report's append-only progress log.
type ReportUpdate struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID      uint      `gorm:"not null;index" json:"report_id"`
	UserID        uint      `gorm:"not null" json:"user_id"`
	Content       string    `gorm:"not null;type:text" json:"content"`
	UpdatedByType string    `gorm:"not null;default:'owner'" json:"updated_by_type"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	User   User   `json:"-" gorm:"foreignKey:UserID"`
	Report Report `json:"-" gorm:"foreignKey:ReportID"`
}
