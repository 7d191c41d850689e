package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auditlog"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
)

// Festival days run on the mandapam's local clock.
var localZone = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.Local
	}
	return loc
}()

type Service struct {
	repo     Repository
	auditSvc auditlog.Service
	now      func() time.Time // swapped in tests
}

func NewService(repo Repository, auditSvc auditlog.Service) *Service {
	return &Service{repo: repo, auditSvc: auditSvc, now: time.Now}
}

func parseDatetime(date, timeStr string) (time.Time, error) {
	dt, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, localZone)
	if err != nil {
		return time.Time{}, apperr.Validation("date must be YYYY-MM-DD and time must be HH:MM")
	}
	return dt, nil
}

func validateRequest(req *EventRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return apperr.Validation("title is required")
	}
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		return apperr.Validation("date and time are required")
	}
	return nil
}

func validateDay(day int) error {
	if day < MinDay || day > MaxDay {
		return apperr.Validation(fmt.Sprintf("day must be between %d and %d", MinDay, MaxDay))
	}
	return nil
}

// ListByDay returns the events of one festival day, earliest first.
func (s *Service) ListByDay(mandapamID uint, day int) ([]Event, error) {
	if err := validateDay(day); err != nil {
		return nil, err
	}
	evs, err := s.repo.ListByDay(mandapamID, day)
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch schedule", err)
	}
	return evs, nil
}

// Create adds an event to a festival day (admin only).
func (s *Service) Create(ctx context.Context, identity middleware.Identity, mandapamID uint, day int, req *EventRequest, ip string) (*Event, error) {
	if !identity.IsAdmin(mandapamID) {
		return nil, apperr.Forbidden("only the mandapam admin can manage the schedule")
	}
	if err := validateDay(day); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	dt, err := parseDatetime(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	ev := &Event{
		MandapamID:  mandapamID,
		Day:         day,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Datetime:    dt,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   identity.UserID,
	}
	if err := s.repo.Create(ev); err != nil {
		return nil, apperr.Unavailable("failed to create event", err)
	}

	uid := identity.UserID
	_ = s.auditSvc.LogAction(ctx, &uid, &mandapamID, "schedule.event_created", map[string]interface{}{
		"event_id": ev.ID,
		"day":      day,
		"title":    ev.Title,
	}, ip, "success")

	return ev, nil
}

// Update replaces an event's details (admin only). The day bucket stays put;
// moving an event across days is delete-and-recreate.
func (s *Service) Update(ctx context.Context, identity middleware.Identity, mandapamID, eventID uint, req *EventRequest, ip string) (*Event, error) {
	if !identity.IsAdmin(mandapamID) {
		return nil, apperr.Forbidden("only the mandapam admin can manage the schedule")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	dt, err := parseDatetime(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	ev, err := s.repo.GetByID(eventID)
	if err != nil {
		return nil, apperr.FromDB(err, "event not found")
	}
	if ev.MandapamID != mandapamID {
		return nil, apperr.NotFound("event not found")
	}

	ev.Title = strings.TrimSpace(req.Title)
	ev.Description = req.Description
	ev.Datetime = dt
	ev.AssignedTo = req.AssignedTo
	if err := s.repo.Update(ev); err != nil {
		return nil, apperr.Unavailable("failed to update event", err)
	}

	uid := identity.UserID
	_ = s.auditSvc.LogAction(ctx, &uid, &mandapamID, "schedule.event_updated", map[string]interface{}{
		"event_id": ev.ID,
	}, ip, "success")

	return ev, nil
}

// Delete removes an event (admin only).
func (s *Service) Delete(ctx context.Context, identity middleware.Identity, mandapamID, eventID uint, ip string) error {
	if !identity.IsAdmin(mandapamID) {
		return apperr.Forbidden("only the mandapam admin can manage the schedule")
	}

	ev, err := s.repo.GetByID(eventID)
	if err != nil {
		return apperr.FromDB(err, "event not found")
	}
	if ev.MandapamID != mandapamID {
		return apperr.NotFound("event not found")
	}

	if err := s.repo.Delete(eventID); err != nil {
		return apperr.FromDB(err, "event not found")
	}

	uid := identity.UserID
	_ = s.auditSvc.LogAction(ctx, &uid, &mandapamID, "schedule.event_deleted", map[string]interface{}{
		"event_id": eventID,
	}, ip, "success")

	return nil
}

// GetOverview derives the nearest upcoming event and the festival's
// completion percentage from the full event list.
func (s *Service) GetOverview(mandapamID uint) (*Overview, error) {
	evs, err := s.repo.ListAll(mandapamID)
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch schedule", err)
	}

	now := s.now()
	ov := &Overview{TotalEvents: len(evs)}
	for i := range evs {
		if evs[i].Datetime.After(now) {
			if ov.NextEvent == nil {
				ev := evs[i]
				ov.NextEvent = &ev
			}
		} else {
			ov.CompletedEvents++
		}
	}
	if len(evs) > 0 {
		ov.PercentComplete = float64(ov.CompletedEvents) / float64(len(evs)) * 100
	}
	if ov.NextEvent == nil {
		ov.Message = "all events finished"
	}
	return ov, nil
}
