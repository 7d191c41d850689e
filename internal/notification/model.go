package notification

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is an in-app message produced by the Kafka consumer from
// membership events. Payload keeps the raw event for the client to render.
type Notification struct {
	ID      uint           `gorm:"primaryKey" json:"id"`
	UserID  uint           `gorm:"not null;index" json:"user_id"`
	Type    string         `gorm:"type:varchar(50);not null" json:"type"`
	Message string         `gorm:"type:text;not null" json:"message"`
	Payload datatypes.JSON `gorm:"type:jsonb" json:"payload"`
	Read    bool           `gorm:"not null;default:false" json:"read"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
