package auth

import (
	"time"
)

// User is a registered account. A user becomes role=admin when they create
// a mandapam; everyone else is a member. FirebaseUID is set for accounts
// that sign in through the Firebase identity provider.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	FullName     string  `gorm:"type:varchar(255)" json:"full_name"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"type:varchar(255)" json:"-"` // empty for Firebase-only accounts
	FirebaseUID  *string `gorm:"type:varchar(128);uniqueIndex" json:"-"`
	PhotoURL     string  `gorm:"type:text" json:"photo_url,omitempty"`
	Role         string  `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	MandapamID   *uint   `gorm:"index" json:"mandapam_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RegisterRequest - POST /auth/register
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest - POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// FirebaseLoginRequest - POST /auth/firebase
type FirebaseLoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// RefreshRequest - POST /auth/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
