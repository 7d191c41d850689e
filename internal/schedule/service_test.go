package schedule

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auditlog"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&Event{}, &auditlog.AuditLog{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := setupTestDB(t)
	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	return NewService(NewRepository(db), auditSvc)
}

func adminIdentity(mandapamID uint) middleware.Identity {
	mid := mandapamID
	return middleware.Identity{
		UserID:     1,
		Email:      "admin@example.com",
		Role:       middleware.RoleAdmin,
		MandapamID: &mid,
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), adminIdentity(1), 1, 1, &EventRequest{
		Title: "   ",
		Date:  "2025-09-01",
		Time:  "18:00",
	}, "127.0.0.1")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}

	evs, err := svc.ListByDay(1, 1)
	if err != nil {
		t.Fatalf("ListByDay: %v", err)
	}
	if len(evs) != 0 {
		t.Errorf("rejected create must not persist anything, found %d events", len(evs))
	}
}

func TestCreateStoresCombinedDatetime(t *testing.T) {
	svc := newTestService(t)

	ev, err := svc.Create(context.Background(), adminIdentity(1), 1, 1, &EventRequest{
		Title: "Ganesh Puja",
		Date:  "2025-09-01",
		Time:  "18:00",
	}, "127.0.0.1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	want := time.Date(2025, 9, 1, 18, 0, 0, 0, localZone)
	if !ev.Datetime.Equal(want) {
		t.Errorf("Datetime = %v, want %v", ev.Datetime, want)
	}

	evs, err := svc.ListByDay(1, 1)
	if err != nil {
		t.Fatalf("ListByDay: %v", err)
	}
	if len(evs) != 1 || evs[0].Title != "Ganesh Puja" {
		t.Errorf("day 1 should hold exactly the created event, got %+v", evs)
	}
}

func TestCreateRejectsMalformedDate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), adminIdentity(1), 1, 1, &EventRequest{
		Title: "Aarti",
		Date:  "01-09-2025",
		Time:  "18:00",
	}, "127.0.0.1")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for bad date format, got %v", err)
	}
}

func TestCreateRejectsNonAdmin(t *testing.T) {
	svc := newTestService(t)

	member := middleware.Identity{UserID: 7, Role: middleware.RoleMember}
	_, err := svc.Create(context.Background(), member, 1, 1, &EventRequest{
		Title: "Aarti",
		Date:  "2025-09-01",
		Time:  "07:00",
	}, "127.0.0.1")
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}
}

func TestCreateRejectsOutOfRangeDay(t *testing.T) {
	svc := newTestService(t)

	for _, day := range []int{0, 21, -3} {
		_, err := svc.Create(context.Background(), adminIdentity(1), 1, day, &EventRequest{
			Title: "Aarti",
			Date:  "2025-09-01",
			Time:  "07:00",
		}, "127.0.0.1")
		if !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("day %d: expected validation error, got %v", day, err)
		}
	}
}

func TestListByDayOrdersByDatetime(t *testing.T) {
	svc := newTestService(t)
	identity := adminIdentity(1)
	ctx := context.Background()

	// Created out of order on purpose.
	if _, err := svc.Create(ctx, identity, 1, 2, &EventRequest{Title: "Evening Aarti", Date: "2025-09-02", Time: "19:00"}, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, identity, 1, 2, &EventRequest{Title: "Morning Aarti", Date: "2025-09-02", Time: "07:00"}, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, identity, 1, 2, &EventRequest{Title: "Prasad", Date: "2025-09-02", Time: "12:30"}, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	evs, err := svc.ListByDay(1, 2)
	if err != nil {
		t.Fatalf("ListByDay: %v", err)
	}
	want := []string{"Morning Aarti", "Prasad", "Evening Aarti"}
	if len(evs) != len(want) {
		t.Fatalf("got %d events, want %d", len(evs), len(want))
	}
	for i, title := range want {
		if evs[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, evs[i].Title, title)
		}
	}
}

func TestOverviewNextEventAndProgress(t *testing.T) {
	svc := newTestService(t)
	identity := adminIdentity(1)
	ctx := context.Background()

	events := []struct {
		title string
		date  string
		time  string
	}{
		{"Sthapana", "2025-08-27", "09:00"},
		{"Maha Aarti", "2025-09-01", "19:00"},
		{"Visarjan", "2025-09-06", "16:00"},
	}
	for i, e := range events {
		if _, err := svc.Create(ctx, identity, 1, i+1, &EventRequest{Title: e.title, Date: e.date, Time: e.time}, ""); err != nil {
			t.Fatalf("Create %s: %v", e.title, err)
		}
	}

	// Frozen clock between the first and second events.
	svc.now = func() time.Time {
		return time.Date(2025, 8, 30, 12, 0, 0, 0, localZone)
	}

	ov, err := svc.GetOverview(1)
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if ov.NextEvent == nil || ov.NextEvent.Title != "Maha Aarti" {
		t.Fatalf("NextEvent = %+v, want Maha Aarti", ov.NextEvent)
	}
	if ov.TotalEvents != 3 || ov.CompletedEvents != 1 {
		t.Errorf("progress = %d/%d, want 1/3", ov.CompletedEvents, ov.TotalEvents)
	}
	if ov.PercentComplete < 33.2 || ov.PercentComplete > 33.4 {
		t.Errorf("PercentComplete = %f, want ~33.3", ov.PercentComplete)
	}
}

func TestOverviewAllEventsFinished(t *testing.T) {
	svc := newTestService(t)
	identity := adminIdentity(1)

	if _, err := svc.Create(context.Background(), identity, 1, 1, &EventRequest{Title: "Sthapana", Date: "2025-08-27", Time: "09:00"}, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc.now = func() time.Time {
		return time.Date(2025, 9, 10, 0, 0, 0, 0, localZone)
	}

	ov, err := svc.GetOverview(1)
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if ov.NextEvent != nil {
		t.Errorf("expected no next event, got %+v", ov.NextEvent)
	}
	if ov.Message != "all events finished" {
		t.Errorf("Message = %q", ov.Message)
	}
	if ov.PercentComplete != 100 {
		t.Errorf("PercentComplete = %f, want 100", ov.PercentComplete)
	}
}

func TestUpdateAndDeleteScopedToMandapam(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ev, err := svc.Create(ctx, adminIdentity(1), 1, 1, &EventRequest{Title: "Aarti", Date: "2025-09-01", Time: "07:00"}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Admin of a different mandapam must not see it through their own scope.
	_, err = svc.Update(ctx, adminIdentity(2), 2, ev.ID, &EventRequest{Title: "Hijack", Date: "2025-09-01", Time: "08:00"}, "")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("cross-mandapam update: expected not found, got %v", err)
	}

	updated, err := svc.Update(ctx, adminIdentity(1), 1, ev.ID, &EventRequest{Title: "Morning Aarti", Date: "2025-09-01", Time: "07:30"}, "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Morning Aarti" {
		t.Errorf("Title = %q", updated.Title)
	}

	if err := svc.Delete(ctx, adminIdentity(1), 1, ev.ID, ""); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, adminIdentity(1), 1, ev.ID, ""); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("second delete: expected not found, got %v", err)
	}
}
