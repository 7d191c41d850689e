package mandapam

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auditlog"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auth"
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
	if err := db.AutoMigrate(&Mandapam{}, &auth.User{}, &auditlog.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	return NewService(NewRepository(db), nil, auditSvc), db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *auth.User {
	t.Helper()
	u := &auth.User{FullName: "Nagesh Patil", Email: email, Role: middleware.RoleMember}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestCreatePromotesAdminInOneTransaction(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "nagesh@example.com")

	identity := middleware.Identity{UserID: u.ID, Email: u.Email, FullName: u.FullName, Role: middleware.RoleMember}
	m, err := svc.Create(context.Background(), identity, &CreateRequest{
		Name:    "Shree Ganesh Mandal",
		City:    "Pune",
		State:   "Maharashtra",
		Address: "FC Road",
	}, nil, "127.0.0.1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Country != "India" {
		t.Errorf("Country should default to India, got %q", m.Country)
	}
	if m.AdminID != u.ID {
		t.Errorf("AdminID = %d, want %d", m.AdminID, u.ID)
	}

	// The creator's user row is promoted in the same transaction.
	var after auth.User
	if err := db.First(&after, u.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if after.Role != middleware.RoleAdmin {
		t.Errorf("creator role = %q, want admin", after.Role)
	}
	if after.MandapamID == nil || *after.MandapamID != m.ID {
		t.Errorf("creator mandapam_id = %v, want %d", after.MandapamID, m.ID)
	}
}

func TestCreateRejectsSecondMandapam(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "nagesh@example.com")

	existing := uint(5)
	identity := middleware.Identity{UserID: u.ID, Role: middleware.RoleAdmin, MandapamID: &existing}
	_, err := svc.Create(context.Background(), identity, &CreateRequest{
		Name: "Second Mandal", City: "Pune", State: "Maharashtra", Address: "JM Road",
	}, nil, "")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for second mandapam, got %v", err)
	}
}

func TestGetMissingMandapam(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Get(42); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSearchDirectory(t *testing.T) {
	svc, db := newTestService(t)

	rows := []Mandapam{
		{Name: "Shree Ganesh Mandal", City: "Pune", State: "Maharashtra", Country: "India", AdminID: 1},
		{Name: "Lalbaugcha Raja", City: "Mumbai", State: "Maharashtra", Country: "India", AdminID: 2},
		{Name: "Ganesh Utsav Samiti", City: "Hyderabad", State: "Telangana", Country: "India", AdminID: 3},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := svc.Search(SearchFilter{Name: "ganesh"})
	if err != nil {
		t.Fatalf("Search by name: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("name search matched %d, want 2", len(got))
	}

	got, err = svc.Search(SearchFilter{City: "PUNE"})
	if err != nil {
		t.Fatalf("Search by city: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Shree Ganesh Mandal" {
		t.Errorf("city search = %+v", got)
	}

	got, err = svc.Search(SearchFilter{Name: "ganesh", State: "telangana"})
	if err != nil {
		t.Fatalf("combined search: %v", err)
	}
	if len(got) != 1 || got[0].City != "Hyderabad" {
		t.Errorf("combined search = %+v", got)
	}
}

func TestUpdateAdminOnly(t *testing.T) {
	svc, db := newTestService(t)
	u := seedUser(t, db, "nagesh@example.com")

	identity := middleware.Identity{UserID: u.ID, Email: u.Email, Role: middleware.RoleMember}
	m, err := svc.Create(context.Background(), identity, &CreateRequest{
		Name: "Shree Ganesh Mandal", City: "Pune", State: "Maharashtra", Address: "FC Road",
	}, nil, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// A stranger cannot edit.
	stranger := middleware.Identity{UserID: 99, Role: middleware.RoleMember}
	_, err = svc.Update(context.Background(), stranger, m.ID, &UpdateRequest{
		Name: "Hijacked", City: "X", State: "Y", Address: "Z",
	}, nil, "")
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("stranger update: expected forbidden, got %v", err)
	}

	// The promoted admin can.
	adminIdentity := middleware.Identity{UserID: u.ID, Role: middleware.RoleAdmin, MandapamID: &m.ID}
	updated, err := svc.Update(context.Background(), adminIdentity, m.ID, &UpdateRequest{
		Name: "Shree Ganesh Mandal", City: "Pune", State: "Maharashtra", Address: "JM Road", Description: "Since 1985",
	}, nil, "")
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Address != "JM Road" || updated.Description != "Since 1985" {
		t.Errorf("updated = %+v", updated)
	}
}
