package gallery

import (
	"context"
	"log"
	"mime/multipart"
	"strings"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auditlog"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/membership"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/utils"
)

type Service struct {
	repo       Repository
	uploader   *utils.Uploader
	membership *membership.Service
	auditSvc   auditlog.Service
}

func NewService(repo Repository, uploader *utils.Uploader, membershipSvc *membership.Service, auditSvc auditlog.Service) *Service {
	return &Service{repo: repo, uploader: uploader, membership: membershipSvc, auditSvc: auditSvc}
}

func (s *Service) canUpload(identity middleware.Identity, mandapamID uint) bool {
	if identity.IsAdmin(mandapamID) {
		return true
	}
	return s.membership.IsVolunteer(mandapamID, identity.UserID)
}

// Upload stores a photo in Cloudinary and records it. Upload rights extend
// to assigned volunteers so the crew can post photos during the festival.
func (s *Service) Upload(ctx context.Context, identity middleware.Identity, mandapamID uint, file *multipart.FileHeader, caption, ip string) (*Image, error) {
	if !s.canUpload(identity, mandapamID) {
		return nil, apperr.Forbidden("only the admin or an assigned volunteer can upload photos")
	}
	if file == nil {
		return nil, apperr.Validation("image file is required")
	}

	obj, err := s.uploader.Upload(ctx, file, "gallery")
	if err != nil {
		return nil, apperr.Unavailable("failed to upload image", err)
	}

	img := &Image{
		MandapamID: mandapamID,
		URL:        obj.URL,
		PublicID:   obj.PublicID,
		Caption:    caption,
		UploadedBy: identity.UserID,
	}
	if err := s.repo.CreateImage(img); err != nil {
		// Don't leave an orphan asset behind.
		if derr := s.uploader.Destroy(ctx, obj.PublicID); derr != nil {
			log.Printf("⚠️ Failed to clean up orphaned gallery asset %s: %v", obj.PublicID, derr)
		}
		return nil, apperr.Unavailable("failed to save image", err)
	}

	uid := identity.UserID
	_ = s.auditSvc.LogAction(ctx, &uid, &mandapamID, "gallery.image_uploaded", map[string]interface{}{
		"image_id": img.ID,
	}, ip, "success")

	return img, nil
}

// List returns the mandapam's gallery, newest first, with like and comment
// data resolved per image for the requesting user.
func (s *Service) List(mandapamID, viewerID uint) ([]ImageView, error) {
	imgs, err := s.repo.ListImages(mandapamID)
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch gallery", err)
	}

	views := make([]ImageView, 0, len(imgs))
	for _, img := range imgs {
		likeCount, err := s.repo.CountLikes(img.ID)
		if err != nil {
			return nil, apperr.Unavailable("failed to fetch gallery", err)
		}
		likedByMe := false
		if viewerID != 0 {
			likedByMe, err = s.repo.HasLiked(img.ID, viewerID)
			if err != nil {
				return nil, apperr.Unavailable("failed to fetch gallery", err)
			}
		}
		comments, err := s.repo.ListComments(img.ID)
		if err != nil {
			return nil, apperr.Unavailable("failed to fetch gallery", err)
		}
		views = append(views, ImageView{
			Image:        img,
			LikeCount:    int(likeCount),
			LikedByMe:    likedByMe,
			CommentCount: len(comments),
			CommentList:  comments,
		})
	}
	return views, nil
}

// ToggleLike flips the caller's like on an image and returns the new state.
func (s *Service) ToggleLike(identity middleware.Identity, imageID uint) (liked bool, likeCount int, err error) {
	if _, err := s.repo.GetImageByID(imageID); err != nil {
		return false, 0, apperr.FromDB(err, "image not found")
	}

	liked, err = s.repo.ToggleLike(imageID, identity.UserID)
	if err != nil {
		return false, 0, apperr.Unavailable("failed to toggle like", err)
	}
	count, err := s.repo.CountLikes(imageID)
	if err != nil {
		return liked, 0, apperr.Unavailable("failed to count likes", err)
	}
	return liked, int(count), nil
}

// AddComment posts a comment on an image. Blank text is rejected.
func (s *Service) AddComment(identity middleware.Identity, imageID uint, req *CommentRequest) (*Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, apperr.Validation("comment text cannot be empty")
	}
	if _, err := s.repo.GetImageByID(imageID); err != nil {
		return nil, apperr.FromDB(err, "image not found")
	}

	cm := &Comment{
		ImageID:  imageID,
		UserID:   identity.UserID,
		UserName: identity.FullName,
		Text:     text,
	}
	if err := s.repo.CreateComment(cm); err != nil {
		return nil, apperr.Unavailable("failed to add comment", err)
	}
	return cm, nil
}

// DeleteComment removes a comment. Allowed for the comment's author or the
// mandapam admin; anyone else gets a 403 and the thread stays unchanged.
func (s *Service) DeleteComment(identity middleware.Identity, commentID uint) error {
	cm, err := s.repo.GetCommentByID(commentID)
	if err != nil {
		return apperr.FromDB(err, "comment not found")
	}

	img, err := s.repo.GetImageByID(cm.ImageID)
	if err != nil {
		return apperr.FromDB(err, "image not found")
	}
	if cm.UserID != identity.UserID && !identity.IsAdmin(img.MandapamID) {
		return apperr.Forbidden("only the comment author or the mandapam admin can delete this comment")
	}

	if err := s.repo.DeleteComment(commentID); err != nil {
		return apperr.FromDB(err, "comment not found")
	}
	return nil
}

// DeleteImage removes an image, its likes and comments, and the Cloudinary
// asset. Allowed for the uploader or the mandapam admin.
func (s *Service) DeleteImage(ctx context.Context, identity middleware.Identity, imageID uint, ip string) error {
	img, err := s.repo.GetImageByID(imageID)
	if err != nil {
		return apperr.FromDB(err, "image not found")
	}
	if img.UploadedBy != identity.UserID && !identity.IsAdmin(img.MandapamID) {
		return apperr.Forbidden("only the uploader or the mandapam admin can delete this image")
	}

	if err := s.repo.DeleteImage(imageID); err != nil {
		return apperr.FromDB(err, "image not found")
	}
	if err := s.uploader.Destroy(ctx, img.PublicID); err != nil {
		log.Printf("⚠️ Failed to delete gallery asset %s: %v", img.PublicID, err)
	}

	uid := identity.UserID
	mid := img.MandapamID
	_ = s.auditSvc.LogAction(ctx, &uid, &mid, "gallery.image_deleted", map[string]interface{}{
		"image_id": imageID,
	}, ip, "success")

	return nil
}
