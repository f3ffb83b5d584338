package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	Username  string `gorm:"unique;not null" json:"username"`
	Email     string `gorm:"unique;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"` // Don't expose password hash in JSON
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`

	// Helper reputation, bumped when a bounty the user helped on completes.
	Rating            float64 `gorm:"default:0" json:"rating"`
	CompletedBounties int     `gorm:"default:0" json:"completed_bounties"`

	Reports       []Report       `json:"reports,omitempty" gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID"`
}
