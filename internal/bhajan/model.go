package bhajan

import (
	"time"
)

// Bhajan is a devotional song entry in a user's personal collection. Audio,
// cover image and a lyrics sheet are optional Cloudinary assets; short
// lyrics can also be typed in directly.
type Bhajan struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Title  string `gorm:"type:varchar(255);not null" json:"title"`

	AudioURL      string `gorm:"type:text" json:"audio_url,omitempty"`
	AudioPublicID string `gorm:"type:varchar(255)" json:"-"`

	ImageURL      string `gorm:"type:text" json:"image_url,omitempty"`
	ImagePublicID string `gorm:"type:varchar(255)" json:"-"`

	LyricsURL      string `gorm:"type:text" json:"lyrics_url,omitempty"`
	LyricsPublicID string `gorm:"type:varchar(255)" json:"-"`
	LyricsText     string `gorm:"type:text" json:"lyrics_text,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Bhajan) TableName() string {
	return "bhajans"
}

// UpdateRequest - PUT /bhajans/:bhajanID
type UpdateRequest struct {
	Title      string `json:"title" binding:"required"`
	LyricsText string `json:"lyrics_text"`
}
