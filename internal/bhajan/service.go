package bhajan

import (
	"context"
	"log"
	"mime/multipart"
	"strings"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/utils"
)

type Service struct {
	repo     Repository
	uploader *utils.Uploader
}

func NewService(repo Repository, uploader *utils.Uploader) *Service {
	return &Service{repo: repo, uploader: uploader}
}

// UploadFiles carries the optional multipart assets of a bhajan entry.
type UploadFiles struct {
	Audio  *multipart.FileHeader
	Image  *multipart.FileHeader
	Lyrics *multipart.FileHeader
}

// Create stores a bhajan with whichever assets were supplied. All uploads
// happen before the insert so a DB failure can destroy every stored asset.
func (s *Service) Create(ctx context.Context, identity middleware.Identity, title, lyricsText string, files UploadFiles) (*Bhajan, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}

	b := &Bhajan{
		UserID:     identity.UserID,
		Title:      title,
		LyricsText: lyricsText,
	}

	var stored []string
	cleanup := func() {
		for _, pid := range stored {
			if err := s.uploader.Destroy(ctx, pid); err != nil {
				log.Printf("⚠️ Failed to clean up orphaned bhajan asset %s: %v", pid, err)
			}
		}
	}

	if files.Audio != nil {
		obj, err := s.uploader.Upload(ctx, files.Audio, "bhajans/audio")
		if err != nil {
			cleanup()
			return nil, apperr.Unavailable("failed to upload audio", err)
		}
		b.AudioURL, b.AudioPublicID = obj.URL, obj.PublicID
		stored = append(stored, obj.PublicID)
	}
	if files.Image != nil {
		obj, err := s.uploader.Upload(ctx, files.Image, "bhajans/images")
		if err != nil {
			cleanup()
			return nil, apperr.Unavailable("failed to upload image", err)
		}
		b.ImageURL, b.ImagePublicID = obj.URL, obj.PublicID
		stored = append(stored, obj.PublicID)
	}
	if files.Lyrics != nil {
		obj, err := s.uploader.Upload(ctx, files.Lyrics, "bhajans/lyrics")
		if err != nil {
			cleanup()
			return nil, apperr.Unavailable("failed to upload lyrics", err)
		}
		b.LyricsURL, b.LyricsPublicID = obj.URL, obj.PublicID
		stored = append(stored, obj.PublicID)
	}

	if err := s.repo.Create(b); err != nil {
		cleanup()
		return nil, apperr.Unavailable("failed to save bhajan", err)
	}
	return b, nil
}

// ListMine returns the caller's collection, newest first.
func (s *Service) ListMine(identity middleware.Identity) ([]Bhajan, error) {
	bs, err := s.repo.ListByUser(identity.UserID)
	if err != nil {
		return nil, apperr.Unavailable("failed to fetch bhajans", err)
	}
	return bs, nil
}

// Update edits the title and typed lyrics of one of the caller's bhajans.
// Replacing the uploaded assets is delete-and-recreate.
func (s *Service) Update(identity middleware.Identity, id uint, req *UpdateRequest) (*Bhajan, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("title is required")
	}

	b, err := s.repo.GetByID(id)
	if err != nil {
		return nil, apperr.FromDB(err, "bhajan not found")
	}
	if b.UserID != identity.UserID {
		return nil, apperr.Forbidden("you can only edit your own bhajans")
	}

	b.Title = title
	b.LyricsText = req.LyricsText
	if err := s.repo.Update(b); err != nil {
		return nil, apperr.Unavailable("failed to update bhajan", err)
	}
	return b, nil
}

// Delete removes one of the caller's bhajans and its stored assets.
func (s *Service) Delete(ctx context.Context, identity middleware.Identity, id uint) error {
	b, err := s.repo.GetByID(id)
	if err != nil {
		return apperr.FromDB(err, "bhajan not found")
	}
	if b.UserID != identity.UserID {
		return apperr.Forbidden("you can only delete your own bhajans")
	}

	if err := s.repo.Delete(id); err != nil {
		return apperr.FromDB(err, "bhajan not found")
	}
	for _, pid := range []string{b.AudioPublicID, b.ImagePublicID, b.LyricsPublicID} {
		if pid == "" {
			continue
		}
		if derr := s.uploader.Destroy(ctx, pid); derr != nil {
			log.Printf("⚠️ Failed to delete bhajan asset %s: %v", pid, derr)
		}
	}
	return nil
}
