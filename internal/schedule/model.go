package schedule

import (
	"time"
)

// Festival length in days. Ganesh utsav schedules run day 1 through day 20
// at most; the day index buckets events for the day-wise view.
const (
	MinDay = 1
	MaxDay = 20
)

// Event is a scheduled activity on a festival day. Datetime combines the
// submitted date and time in the mandapam's local zone and drives both
// intra-day ordering and the overview computation.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	MandapamID  uint      `gorm:"not null;index:idx_events_day" json:"mandapam_id"`
	Day         int       `gorm:"not null;index:idx_events_day" json:"day"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Datetime    time.Time `gorm:"not null;index" json:"datetime"`
	AssignedTo  string    `gorm:"type:varchar(255)" json:"assigned_to"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "schedule_events"
}

// EventRequest - POST/PUT /mandapams/:id/schedule/:day/events. Date and Time
// arrive as separate form values the way the scheduling UI submits them.
type EventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"` // 2006-01-02
	Time        string `json:"time" binding:"required"` // 15:04
	AssignedTo  string `json:"assigned_to"`
}

// Overview - GET /mandapams/:id/schedule/overview
type Overview struct {
	NextEvent       *Event  `json:"next_event"`
	Message         string  `json:"message,omitempty"`
	TotalEvents     int     `json:"total_events"`
	CompletedEvents int     `json:"completed_events"`
	PercentComplete float64 `json:"percent_complete"`
}
