package expense

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&Expense{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewService(NewRepository(db), nil)
}

func userIdentity(id uint) middleware.Identity {
	return middleware.Identity{UserID: id, Role: middleware.RoleMember}
}

func mustAdd(t *testing.T, svc *Service, identity middleware.Identity, title string, amount float64, category, spentOn string) *Expense {
	t.Helper()
	e, err := svc.Add(context.Background(), identity, &AddRequest{
		Title:    title,
		Amount:   amount,
		Category: category,
		SpentOn:  spentOn,
	}, nil)
	if err != nil {
		t.Fatalf("Add %s: %v", title, err)
	}
	return e
}

func TestAddValidation(t *testing.T) {
	svc := newTestService(t)
	identity := userIdentity(1)
	ctx := context.Background()

	cases := []struct {
		name string
		req  AddRequest
	}{
		{"blank title", AddRequest{Title: "  ", Amount: 100, SpentOn: "2025-09-01"}},
		{"zero amount", AddRequest{Title: "Flowers", Amount: 0, SpentOn: "2025-09-01"}},
		{"negative amount", AddRequest{Title: "Flowers", Amount: -5, SpentOn: "2025-09-01"}},
		{"bad date", AddRequest{Title: "Flowers", Amount: 100, SpentOn: "01/09/2025"}},
	}
	for _, tc := range cases {
		if _, err := svc.Add(ctx, identity, &tc.req, nil); !apperr.IsKind(err, apperr.KindValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestSummaryTotals(t *testing.T) {
	svc := newTestService(t)
	identity := userIdentity(1)

	mustAdd(t, svc, identity, "Flowers", 150.25, "decoration", "2025-08-27")
	mustAdd(t, svc, identity, "Garlands", 100.25, "decoration", "2025-08-27")
	mustAdd(t, svc, identity, "Modak", 100.00, "prasad", "2025-08-28")

	// Another user's spend must stay out of the summary.
	mustAdd(t, svc, userIdentity(2), "Lights", 999, "decoration", "2025-08-27")

	summary, err := svc.GetSummary(identity)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}

	if summary.Total != 350.5 {
		t.Errorf("Total = %f, want 350.5", summary.Total)
	}

	byCat := map[string]float64{}
	for _, c := range summary.ByCategory {
		byCat[c.Category] = c.Total
	}
	if byCat["decoration"] != 250.5 {
		t.Errorf("decoration total = %f, want 250.5", byCat["decoration"])
	}
	if byCat["prasad"] != 100 {
		t.Errorf("prasad total = %f, want 100", byCat["prasad"])
	}

	if len(summary.ByDate) != 2 {
		t.Fatalf("ByDate has %d rows, want 2", len(summary.ByDate))
	}
	if summary.ByDate[0].SpentOn != "2025-08-27" || summary.ByDate[0].Total != 250.5 {
		t.Errorf("first date row = %+v", summary.ByDate[0])
	}
}

func TestListNewestSpendFirst(t *testing.T) {
	svc := newTestService(t)
	identity := userIdentity(1)

	mustAdd(t, svc, identity, "Old", 10, "", "2025-08-20")
	mustAdd(t, svc, identity, "New", 20, "", "2025-09-02")
	mustAdd(t, svc, identity, "Mid", 30, "", "2025-08-28")

	es, err := svc.List(identity)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"New", "Mid", "Old"}
	for i, title := range want {
		if es[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, es[i].Title, title)
		}
	}

	if es[0].Category != "general" {
		t.Errorf("empty category should default to general, got %q", es[0].Category)
	}
}

func TestDeleteOwnershipEnforced(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	e := mustAdd(t, svc, userIdentity(1), "Flowers", 100, "", "2025-08-27")

	if err := svc.Delete(ctx, userIdentity(2), e.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("foreign delete: expected forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, userIdentity(1), e.ID); err != nil {
		t.Fatalf("own delete: %v", err)
	}
	if err := svc.Delete(ctx, userIdentity(1), e.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("second delete: expected not found, got %v", err)
	}
}
