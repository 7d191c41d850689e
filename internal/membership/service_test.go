package membership

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auditlog"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/mandapam"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&JoinRequest{}, &VolunteerAssignment{},
		&mandapam.Mandapam{}, &auditlog.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	// One mandapam to join.
	if err := db.Create(&mandapam.Mandapam{Name: "Shree Ganesh Mandal", City: "Pune", State: "Maharashtra", Country: "India", AdminID: 100}).Error; err != nil {
		t.Fatalf("seed mandapam: %v", err)
	}

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	mandapamSvc := mandapam.NewService(mandapam.NewRepository(db), nil, auditSvc)
	return NewService(NewRepository(db), mandapamSvc, auditSvc), db
}

func requester(id uint, email string) middleware.Identity {
	return middleware.Identity{UserID: id, Email: email, Role: middleware.RoleMember}
}

func adminOf(mandapamID uint) middleware.Identity {
	mid := mandapamID
	return middleware.Identity{UserID: 100, Email: "admin@example.com", Role: middleware.RoleAdmin, MandapamID: &mid}
}

func submit(t *testing.T, svc *Service, identity middleware.Identity) *JoinRequest {
	t.Helper()
	jr, err := svc.SubmitJoinRequest(identity, 1, &SubmitRequest{FullName: "Ramesh Kulkarni", Mobile: "9876543210"})
	if err != nil {
		t.Fatalf("SubmitJoinRequest: %v", err)
	}
	return jr
}

func TestSubmitJoinRequest(t *testing.T) {
	svc, _ := newTestService(t)

	jr := submit(t, svc, requester(1, "ramesh@example.com"))
	if jr.Status != StatusPending {
		t.Errorf("new request status = %q, want pending", jr.Status)
	}
	if jr.UserEmail != "ramesh@example.com" {
		t.Errorf("UserEmail = %q", jr.UserEmail)
	}

	// A repeat submission is stored as its own request.
	submit(t, svc, requester(1, "ramesh@example.com"))
	reqs, err := svc.ListJoinRequests(adminOf(1), 1, "")
	if err != nil {
		t.Fatalf("ListJoinRequests: %v", err)
	}
	if len(reqs) != 2 {
		t.Errorf("expected 2 requests after duplicate submit, got %d", len(reqs))
	}
}

func TestSubmitJoinRequestUnknownMandapam(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.SubmitJoinRequest(requester(1, "x@example.com"), 99, &SubmitRequest{FullName: "X", Mobile: "123"})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListJoinRequestsAdminOnly(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.ListJoinRequests(requester(1, "x@example.com"), 1, ""); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}
}

func TestSetRequestStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	jr := submit(t, svc, requester(1, "ramesh@example.com"))

	// Non-admin may not decide.
	if _, err := svc.SetRequestStatus(ctx, requester(2, "y@example.com"), 1, jr.ID, StatusApproved, ""); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("non-admin decision: expected forbidden, got %v", err)
	}

	// Bad status value.
	if _, err := svc.SetRequestStatus(ctx, adminOf(1), 1, jr.ID, "maybe", ""); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("bad status: expected validation error, got %v", err)
	}

	decided, err := svc.SetRequestStatus(ctx, adminOf(1), 1, jr.ID, StatusApproved, "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Errorf("status = %q, want approved", decided.Status)
	}

	// The decision is an overwrite: the admin can reverse it.
	decided, err = svc.SetRequestStatus(ctx, adminOf(1), 1, jr.ID, StatusRejected, "")
	if err != nil {
		t.Fatalf("reverse decision: %v", err)
	}
	if decided.Status != StatusRejected {
		t.Errorf("status = %q, want rejected", decided.Status)
	}
}

func TestSetRequestStatusWrongMandapam(t *testing.T) {
	svc, db := newTestService(t)
	jr := submit(t, svc, requester(1, "ramesh@example.com"))

	if err := db.Create(&mandapam.Mandapam{Name: "Other Mandal", City: "Mumbai", State: "Maharashtra", Country: "India", AdminID: 200}).Error; err != nil {
		t.Fatalf("seed second mandapam: %v", err)
	}
	otherAdmin := middleware.Identity{UserID: 200, Role: middleware.RoleAdmin}
	mid := uint(2)
	otherAdmin.MandapamID = &mid

	if _, err := svc.SetRequestStatus(context.Background(), otherAdmin, 2, jr.ID, StatusApproved, ""); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("cross-mandapam decision: expected not found, got %v", err)
	}
}

func TestAssignRoleRequiresApprovedRequest(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	jr := submit(t, svc, requester(1, "ramesh@example.com"))

	// Still pending: assignment must be rejected.
	_, err := svc.AssignRole(ctx, adminOf(1), 1, &AssignRequest{UserID: 1, Role: "priest"}, "")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("pending request: expected validation error, got %v", err)
	}

	// Rejected: still no.
	if _, err := svc.SetRequestStatus(ctx, adminOf(1), 1, jr.ID, StatusRejected, ""); err != nil {
		t.Fatalf("reject: %v", err)
	}
	_, err = svc.AssignRole(ctx, adminOf(1), 1, &AssignRequest{UserID: 1, Role: "priest"}, "")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("rejected request: expected validation error, got %v", err)
	}

	// Approved: assignment goes through with the requester's email attached.
	if _, err := svc.SetRequestStatus(ctx, adminOf(1), 1, jr.ID, StatusApproved, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	a, err := svc.AssignRole(ctx, adminOf(1), 1, &AssignRequest{UserID: 1, Role: "priest"}, "")
	if err != nil {
		t.Fatalf("AssignRole: %v", err)
	}
	if a.Role != "priest" || a.Email != "ramesh@example.com" {
		t.Errorf("assignment = %+v", a)
	}

	// Re-assigning overwrites the role instead of stacking a second row.
	a, err = svc.AssignRole(ctx, adminOf(1), 1, &AssignRequest{UserID: 1, Role: "cook"}, "")
	if err != nil {
		t.Fatalf("re-assign: %v", err)
	}
	if a.Role != "cook" {
		t.Errorf("role = %q, want cook", a.Role)
	}
	roster, err := svc.ListVolunteers(1)
	if err != nil {
		t.Fatalf("ListVolunteers: %v", err)
	}
	if len(roster) != 1 || roster[0].Role != "cook" {
		t.Errorf("roster = %+v, want single cook entry", roster)
	}
}

func TestRevokeAssignment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	jr := submit(t, svc, requester(1, "ramesh@example.com"))
	if _, err := svc.SetRequestStatus(ctx, adminOf(1), 1, jr.ID, StatusApproved, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := svc.AssignRole(ctx, adminOf(1), 1, &AssignRequest{UserID: 1, Role: "cleaner"}, ""); err != nil {
		t.Fatalf("AssignRole: %v", err)
	}

	if !svc.IsVolunteer(1, 1) {
		t.Errorf("IsVolunteer should report true after assignment")
	}

	if err := svc.RevokeAssignment(ctx, adminOf(1), 1, 1, ""); err != nil {
		t.Fatalf("RevokeAssignment: %v", err)
	}
	if svc.IsVolunteer(1, 1) {
		t.Errorf("IsVolunteer should report false after revocation")
	}
	if err := svc.RevokeAssignment(ctx, adminOf(1), 1, 1, ""); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("second revoke: expected not found, got %v", err)
	}
}
