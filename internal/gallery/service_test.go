package gallery

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auditlog"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/mandapam"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/membership"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
)

func newTestService(t *testing.T) (*Service, Repository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&Image{}, &Like{}, &Comment{},
		&membership.JoinRequest{}, &membership.VolunteerAssignment{},
		&mandapam.Mandapam{}, &auditlog.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	mandapamSvc := mandapam.NewService(mandapam.NewRepository(db), nil, auditSvc)
	membershipSvc := membership.NewService(membership.NewRepository(db), mandapamSvc, auditSvc)

	repo := NewRepository(db)
	return NewService(repo, nil, membershipSvc, auditSvc), repo
}

func member(id uint) middleware.Identity {
	return middleware.Identity{UserID: id, FullName: "Test Member", Role: middleware.RoleMember}
}

func admin(mandapamID uint) middleware.Identity {
	mid := mandapamID
	return middleware.Identity{UserID: 100, Role: middleware.RoleAdmin, MandapamID: &mid}
}

func seedImage(t *testing.T, repo Repository, mandapamID, uploadedBy uint) *Image {
	t.Helper()
	img := &Image{MandapamID: mandapamID, URL: "https://cdn.example/img.jpg", UploadedBy: uploadedBy}
	if err := repo.CreateImage(img); err != nil {
		t.Fatalf("seed image: %v", err)
	}
	return img
}

func TestToggleLikeTwoUsers(t *testing.T) {
	svc, repo := newTestService(t)
	img := seedImage(t, repo, 1, 100)

	liked, count, err := svc.ToggleLike(member(1), img.ID)
	if err != nil || !liked || count != 1 {
		t.Fatalf("first like: liked=%v count=%d err=%v", liked, count, err)
	}

	liked, count, err = svc.ToggleLike(member(2), img.ID)
	if err != nil || !liked || count != 2 {
		t.Fatalf("second user like: liked=%v count=%d err=%v", liked, count, err)
	}

	// Same user toggling again removes only their own like.
	liked, count, err = svc.ToggleLike(member(1), img.ID)
	if err != nil || liked || count != 1 {
		t.Fatalf("unlike: liked=%v count=%d err=%v", liked, count, err)
	}

	// And back on.
	liked, count, err = svc.ToggleLike(member(1), img.ID)
	if err != nil || !liked || count != 2 {
		t.Fatalf("re-like: liked=%v count=%d err=%v", liked, count, err)
	}
}

func TestToggleLikeMissingImage(t *testing.T) {
	svc, _ := newTestService(t)
	if _, _, err := svc.ToggleLike(member(1), 999); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	svc, repo := newTestService(t)
	img := seedImage(t, repo, 1, 100)

	if _, err := svc.AddComment(member(1), img.ID, &CommentRequest{Text: "   "}); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for blank comment, got %v", err)
	}

	cm, err := svc.AddComment(member(1), img.ID, &CommentRequest{Text: "Ganpati Bappa Morya!"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if cm.Text != "Ganpati Bappa Morya!" || cm.UserName != "Test Member" {
		t.Errorf("comment = %+v", cm)
	}
}

func TestDeleteCommentAuthorization(t *testing.T) {
	svc, repo := newTestService(t)
	img := seedImage(t, repo, 1, 100)

	cm, err := svc.AddComment(member(1), img.ID, &CommentRequest{Text: "Lovely decoration"})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	// A third user is neither the author nor the admin.
	if err := svc.DeleteComment(member(2), cm.ID); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("foreign delete: expected forbidden, got %v", err)
	}
	cms, err := repo.ListComments(img.ID)
	if err != nil || len(cms) != 1 {
		t.Fatalf("rejected delete must leave the thread unchanged, got %d comments (err=%v)", len(cms), err)
	}

	// The mandapam admin may moderate.
	if err := svc.DeleteComment(admin(1), cm.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	cms, _ = repo.ListComments(img.ID)
	if len(cms) != 0 {
		t.Errorf("comment should be gone, found %d", len(cms))
	}
}

func TestDeleteImageCascades(t *testing.T) {
	svc, repo := newTestService(t)
	img := seedImage(t, repo, 1, 5)

	if _, _, err := svc.ToggleLike(member(1), img.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if _, err := svc.AddComment(member(2), img.ID, &CommentRequest{Text: "Morya!"}); err != nil {
		t.Fatalf("comment: %v", err)
	}

	// Not the uploader, not the admin.
	if err := svc.DeleteImage(context.Background(), member(2), img.ID, ""); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("foreign delete: expected forbidden, got %v", err)
	}

	// The uploader may remove their own photo.
	if err := svc.DeleteImage(context.Background(), member(5), img.ID, ""); err != nil {
		t.Fatalf("uploader delete: %v", err)
	}

	count, err := repo.CountLikes(img.ID)
	if err != nil || count != 0 {
		t.Errorf("likes should cascade, count=%d err=%v", count, err)
	}
	cms, _ := repo.ListComments(img.ID)
	if len(cms) != 0 {
		t.Errorf("comments should cascade, found %d", len(cms))
	}
}

func TestUploadRequiresAdminOrVolunteer(t *testing.T) {
	svc, _ := newTestService(t)

	// A plain member with no volunteer role gets rejected before any
	// storage call happens.
	_, err := svc.Upload(context.Background(), member(1), 1, nil, "", "")
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden for plain member, got %v", err)
	}
}
