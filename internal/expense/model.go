package expense

import (
	"time"
)

// Expense is a personal spend record. Each user keeps their own ledger of
// festival expenses; an optional receipt image is stored in Cloudinary.
type Expense struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	UserID          uint    `gorm:"not null;index" json:"user_id"`
	Title           string  `gorm:"type:varchar(255);not null" json:"title"`
	Amount          float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category        string  `gorm:"type:varchar(100);default:'general'" json:"category"`
	SpentOn         string  `gorm:"type:varchar(10);not null" json:"spent_on"` // 2006-01-02
	ReceiptURL      string  `gorm:"type:text" json:"receipt_url,omitempty"`
	ReceiptPublicID string  `gorm:"type:varchar(255)" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

// AddRequest - POST /expenses (multipart; receipt file optional)
type AddRequest struct {
	Title    string  `form:"title" binding:"required"`
	Amount   float64 `form:"amount" binding:"required,gt=0"`
	Category string  `form:"category"`
	SpentOn  string  `form:"spent_on" binding:"required"` // 2006-01-02
}

// CategoryTotal is one slice of the summary breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// DateTotal is the per-day spend used by the summary chart.
type DateTotal struct {
	SpentOn string  `json:"spent_on"`
	Total   float64 `json:"total"`
}

// Summary - GET /expenses/summary
type Summary struct {
	Total      float64         `json:"total"`
	ByCategory []CategoryTotal `json:"by_category"`
	ByDate     []DateTotal     `json:"by_date"`
}
