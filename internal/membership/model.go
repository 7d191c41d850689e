package membership

import (
	"time"
)

// Join request status values. Approved/rejected are terminal by convention
// only; an admin can still overwrite them.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// JoinRequest is a prospective member's request to affiliate with a mandapam.
// Duplicate pending requests from the same requester are allowed.
type JoinRequest struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	MandapamID uint   `gorm:"not null;index" json:"mandapam_id"`
	UserID     uint   `gorm:"not null;index" json:"user_id"`
	UserEmail  string `gorm:"type:varchar(255);not null" json:"user_email"`
	FullName   string `gorm:"type:varchar(255);not null" json:"full_name"`
	Mobile     string `gorm:"type:varchar(20);not null" json:"mobile"`
	Status     string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (JoinRequest) TableName() string {
	return "join_requests"
}

// VolunteerAssignment is a role grant to an approved member. One assignment
// per member per mandapam; re-assigning overwrites the role.
type VolunteerAssignment struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	MandapamID uint   `gorm:"not null;uniqueIndex:idx_volunteer_member" json:"mandapam_id"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_volunteer_member" json:"user_id"`
	Email      string `gorm:"type:varchar(255);not null" json:"email"`
	Role       string `gorm:"type:varchar(50);not null" json:"role"` // priest/cook/cleaner/assistant
	AssignedBy uint   `gorm:"not null" json:"assigned_by"`

	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`
}

func (VolunteerAssignment) TableName() string {
	return "volunteer_assignments"
}

// SubmitRequest - POST /mandapams/:id/join-requests
type SubmitRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Mobile   string `json:"mobile" binding:"required"`
}

// StatusRequest - PATCH /mandapams/:id/join-requests/:requestID
type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// AssignRequest - POST /mandapams/:id/volunteers
type AssignRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=priest cook cleaner assistant"`
}

// Event is published to Kafka when a request is decided or a role changes;
// the notification consumer fans it out to in-app notifications.
type Event struct {
	Type         string `json:"type"` // join_request.approved / join_request.rejected / volunteer.assigned / volunteer.revoked
	MandapamID   uint   `json:"mandapam_id"`
	MandapamName string `json:"mandapam_name"`
	UserID       uint   `json:"user_id"`
	UserEmail    string `json:"user_email"`
	Role         string `json:"role,omitempty"`
}
