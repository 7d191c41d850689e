package gallery

import (
	"time"
)

// Image is a gallery photo. PublicID keys the Cloudinary asset so a delete
// can remove the stored object too.
type Image struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	MandapamID uint   `gorm:"not null;index" json:"mandapam_id"`
	URL        string `gorm:"type:text;not null" json:"url"`
	PublicID   string `gorm:"type:varchar(255);not null" json:"-"`
	Caption    string `gorm:"type:varchar(500)" json:"caption"`
	UploadedBy uint   `gorm:"not null" json:"uploaded_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Likes    []Like    `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE" json:"-"`
	Comments []Comment `gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Image) TableName() string {
	return "gallery_images"
}

// Like rows are unique per image and user, which is what makes the toggle
// idempotent under concurrent taps.
type Like struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	ImageID uint `gorm:"not null;uniqueIndex:idx_image_user" json:"image_id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_image_user" json:"user_id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Like) TableName() string {
	return "gallery_likes"
}

type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ImageID  uint   `gorm:"not null;index" json:"image_id"`
	UserID   uint   `gorm:"not null" json:"user_id"`
	UserName string `gorm:"type:varchar(255)" json:"user_name"`
	Text     string `gorm:"type:text;not null" json:"text"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string {
	return "gallery_comments"
}

// ImageView decorates an image with like/comment data and whether the
// requesting user has liked it.
type ImageView struct {
	Image
	LikeCount    int       `json:"like_count"`
	LikedByMe    bool      `json:"liked_by_me"`
	CommentCount int       `json:"comment_count"`
	CommentList  []Comment `json:"comments"`
}

// CommentRequest - POST /mandapams/:id/gallery/:imageID/comments
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}
