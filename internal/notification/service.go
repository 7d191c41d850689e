package notification

import (
	"encoding/json"
	"fmt"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/membership"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordMembershipEvent turns a consumed membership event into an in-app
// notification for the affected member.
func (s *Service) RecordMembershipEvent(ev membership.Event, raw []byte) error {
	if ev.UserID == 0 {
		return nil
	}

	var msg string
	switch ev.Type {
	case "join_request.approved":
		msg = fmt.Sprintf("Your request to join %s was approved. Welcome!", ev.MandapamName)
	case "join_request.rejected":
		msg = fmt.Sprintf("Your request to join %s was not approved.", ev.MandapamName)
	case "volunteer.assigned":
		msg = fmt.Sprintf("You have been assigned as %s at %s.", ev.Role, ev.MandapamName)
	case "volunteer.revoked":
		msg = "Your volunteer role has been revoked."
	default:
		return nil
	}

	payload := raw
	if payload == nil {
		payload, _ = json.Marshal(ev)
	}

	return s.repo.Create(&Notification{
		UserID:  ev.UserID,
		Type:    ev.Type,
		Message: msg,
		Payload: payload,
	})
}

// List returns the user's notifications, newest first.
func (s *Service) List(userID uint, unreadOnly bool) ([]Notification, error) {
	ns, err := s.repo.ListByUser(userID, unreadOnly)
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch notifications", err)
	}
	return ns, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *Service) MarkRead(userID, id uint) error {
	if err := s.repo.MarkRead(id, userID); err != nil {
		return apperr.FromDB(err, "notification not found")
	}
	return nil
}

// MarkAllRead flags every unread notification of the user as read.
func (s *Service) MarkAllRead(userID uint) error {
	if err := s.repo.MarkAllRead(userID); err != nil {
		return apperr.Unavailable("failed to mark notifications read", err)
	}
	return nil
}
