package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

const (
	NotificationBountyAccepted = "bounty_accepted"
	NotificationBountyApproved = "bounty_approved"
	NotificationBountyRejected = "bounty_rejected"
	NotificationReportUpdated  = "report_updated"
	NotificationNewSupporter   = "new_supporter"
)

// JSONMap stores an opaque JSON object in a single column. Works on both
// postgres and the sqlite driver used in tests.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for JSONMap")
	}
	return json.Unmarshal(data, m)
}

// Notification is one row in a user's inbox. Read only ever flips false to
// true; there is no unread transition back.
type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"not null" json:"type"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null;type:text" json:"message"`
	Data      JSONMap   `gorm:"type:text" json:"data,omitempty"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
