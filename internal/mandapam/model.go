package mandapam

import (
	"time"
)

// Mandapam is the top-level tenant entity: one community's festival space.
// Exactly one admin owns it, fixed at creation; ownership transfer is not
// supported.
type Mandapam struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null;index" json:"name"`
	City        string `gorm:"type:varchar(100);not null;index" json:"city"`
	State       string `gorm:"type:varchar(100);not null;index" json:"state"`
	Country     string `gorm:"type:varchar(100);not null;default:'India'" json:"country"`
	Address     string `gorm:"type:text;not null" json:"address"`
	Description string `gorm:"type:text" json:"description"`

	LogoURL      string `gorm:"type:text" json:"logo_url"`
	LogoPublicID string `gorm:"type:varchar(255)" json:"-"`

	AdminID    uint   `gorm:"not null;uniqueIndex" json:"admin_id"`
	AdminEmail string `gorm:"type:varchar(255);not null" json:"admin_email"`
	AdminName  string `gorm:"type:varchar(255)" json:"admin_name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Mandapam) TableName() string {
	return "mandapams"
}

// CreateRequest - multipart form, logo optional
type CreateRequest struct {
	Name        string `form:"name" binding:"required"`
	City        string `form:"city" binding:"required"`
	State       string `form:"state" binding:"required"`
	Country     string `form:"country"`
	Address     string `form:"address" binding:"required"`
	Description string `form:"description"`
}

// UpdateRequest - admin-only settings edit
type UpdateRequest struct {
	Name        string `form:"name" binding:"required"`
	City        string `form:"city" binding:"required"`
	State       string `form:"state" binding:"required"`
	Country     string `form:"country"`
	Address     string `form:"address" binding:"required"`
	Description string `form:"description"`
}

// SearchFilter mirrors the directory search: name substring,
// city/state exact, all case-insensitive.
type SearchFilter struct {
	Name  string
	City  string
	State string
}
