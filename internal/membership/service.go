package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auditlog"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/mandapam"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/utils"
)

type Service struct {
	repo      Repository
	mandapams *mandapam.Service
	auditSvc  auditlog.Service
}

func NewService(repo Repository, mandapams *mandapam.Service, auditSvc auditlog.Service) *Service {
	return &Service{repo: repo, mandapams: mandapams, auditSvc: auditSvc}
}

// SubmitJoinRequest records a join request for the given mandapam. Repeated
// submissions by the same user are accepted; the admin sees every one.
func (s *Service) SubmitJoinRequest(identity middleware.Identity, mandapamID uint, req *SubmitRequest) (*JoinRequest, error) {
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Mobile) == "" {
		return nil, apperr.Validation("full name and mobile are required")
	}
	if _, err := s.mandapams.Get(mandapamID); err != nil {
		return nil, err
	}

	jr := &JoinRequest{
		MandapamID: mandapamID,
		UserID:     identity.UserID,
		UserEmail:  identity.Email,
		FullName:   strings.TrimSpace(req.FullName),
		Mobile:     strings.TrimSpace(req.Mobile),
		Status:     StatusPending,
	}
	if err := s.repo.CreateRequest(jr); err != nil {
		return nil, apperr.Unavailable("failed to submit join request", err)
	}
	return jr, nil
}

// ListJoinRequests returns the mandapam's requests, optionally filtered by status.
func (s *Service) ListJoinRequests(identity middleware.Identity, mandapamID uint, status string) ([]JoinRequest, error) {
	if !identity.IsAdmin(mandapamID) {
		return nil, apperr.Forbidden("only the mandapam admin can view join requests")
	}
	reqs, err := s.repo.ListRequests(mandapamID, status)
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch join requests", err)
	}
	return reqs, nil
}

// SetRequestStatus approves or rejects a join request. The write is an
// unconditional overwrite, so an admin can reverse an earlier decision.
func (s *Service) SetRequestStatus(ctx context.Context, identity middleware.Identity, mandapamID, requestID uint, status string, ip string) (*JoinRequest, error) {
	if !identity.IsAdmin(mandapamID) {
		return nil, apperr.Forbidden("only the mandapam admin can decide join requests")
	}
	if status != StatusApproved && status != StatusRejected {
		return nil, apperr.Validation("status must be approved or rejected")
	}

	jr, err := s.repo.GetRequestByID(requestID)
	if err != nil {
		return nil, apperr.FromDB(err, "join request not found")
	}
	if jr.MandapamID != mandapamID {
		return nil, apperr.NotFound("join request not found")
	}

	if err := s.repo.UpdateRequestStatus(requestID, status); err != nil {
		return nil, apperr.Unavailable("failed to update join request", err)
	}
	jr.Status = status

	mandapamName := s.mandapamName(mandapamID)
	s.publish(ctx, Event{
		Type:         "join_request." + status,
		MandapamID:   mandapamID,
		MandapamName: mandapamName,
		UserID:       jr.UserID,
		UserEmail:    jr.UserEmail,
	})
	utils.SendJoinRequestDecisionEmail(jr.UserEmail, mandapamName, status)

	uid := identity.UserID
	_ = s.auditSvc.LogAction(ctx, &uid, &mandapamID, "join_request."+status, map[string]interface{}{
		"request_id": requestID,
		"user_id":    jr.UserID,
	}, ip, "success")

	return jr, nil
}

// ListApprovedMembers returns the mandapam's approved members (admin only).
func (s *Service) ListApprovedMembers(identity middleware.Identity, mandapamID uint) ([]JoinRequest, error) {
	if !identity.IsAdmin(mandapamID) {
		return nil, apperr.Forbidden("only the mandapam admin can view members")
	}
	reqs, err := s.repo.ListApprovedMembers(mandapamID)
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch members", err)
	}
	return reqs, nil
}

// AssignRole grants a volunteer role to an approved member. A second
// assignment for the same member overwrites the previous role.
func (s *Service) AssignRole(ctx context.Context, identity middleware.Identity, mandapamID uint, req *AssignRequest, ip string) (*VolunteerAssignment, error) {
	if !identity.IsAdmin(mandapamID) {
		return nil, apperr.Forbidden("only the mandapam admin can assign volunteer roles")
	}

	approved, err := s.repo.HasApprovedRequest(mandapamID, req.UserID)
	if err != nil {
		return nil, apperr.Unavailable("failed to verify membership", err)
	}
	if !approved {
		return nil, apperr.Validation(fmt.Sprintf("user %d has no approved join request for this mandapam", req.UserID))
	}

	// Take the member's email from their approved request rather than a
	// second user lookup.
	members, err := s.repo.ListApprovedMembers(mandapamID)
	if err != nil {
		return nil, apperr.Unavailable("failed to verify membership", err)
	}
	email := ""
	for _, m := range members {
		if m.UserID == req.UserID {
			email = m.UserEmail
			break
		}
	}

	a := &VolunteerAssignment{
		MandapamID: mandapamID,
		UserID:     req.UserID,
		Email:      email,
		Role:       req.Role,
		AssignedBy: identity.UserID,
	}
	if err := s.repo.UpsertAssignment(a); err != nil {
		return nil, apperr.Unavailable("failed to assign role", err)
	}

	mandapamName := s.mandapamName(mandapamID)
	s.publish(ctx, Event{
		Type:         "volunteer.assigned",
		MandapamID:   mandapamID,
		MandapamName: mandapamName,
		UserID:       req.UserID,
		UserEmail:    email,
		Role:         req.Role,
	})
	if email != "" {
		utils.SendVolunteerRoleEmail(email, mandapamName, req.Role)
	}

	uid := identity.UserID
	_ = s.auditSvc.LogAction(ctx, &uid, &mandapamID, "volunteer.assigned", map[string]interface{}{
		"user_id": req.UserID,
		"role":    req.Role,
	}, ip, "success")

	return a, nil
}

// RevokeAssignment removes a member's volunteer role.
func (s *Service) RevokeAssignment(ctx context.Context, identity middleware.Identity, mandapamID, userID uint, ip string) error {
	if !identity.IsAdmin(mandapamID) {
		return apperr.Forbidden("only the mandapam admin can revoke volunteer roles")
	}
	if err := s.repo.DeleteAssignment(mandapamID, userID); err != nil {
		return apperr.FromDB(err, "volunteer assignment not found")
	}

	s.publish(ctx, Event{
		Type:       "volunteer.revoked",
		MandapamID: mandapamID,
		UserID:     userID,
	})

	uid := identity.UserID
	_ = s.auditSvc.LogAction(ctx, &uid, &mandapamID, "volunteer.revoked", map[string]interface{}{
		"user_id": userID,
	}, ip, "success")

	return nil
}

// ListVolunteers returns the mandapam's volunteer roster. Public: visitors
// see who serves which role.
func (s *Service) ListVolunteers(mandapamID uint) ([]VolunteerAssignment, error) {
	as, err := s.repo.ListAssignments(mandapamID)
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch volunteers", err)
	}
	return as, nil
}

// IsVolunteer reports whether the user holds any role in the mandapam.
// Gallery uploads use this to extend upload rights beyond the admin.
func (s *Service) IsVolunteer(mandapamID, userID uint) bool {
	_, err := s.repo.GetAssignment(mandapamID, userID)
	return err == nil
}

func (s *Service) mandapamName(mandapamID uint) string {
	m, err := s.mandapams.Get(mandapamID)
	if err != nil {
		return ""
	}
	return m.Name
}

func (s *Service) publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("⚠️ Failed to marshal membership event: %v", err)
		return
	}
	utils.PublishEvent(ctx, fmt.Sprintf("mandapam-%d", ev.MandapamID), payload)
}
