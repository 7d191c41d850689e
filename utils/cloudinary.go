package utils

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/config"
)

// Uploader wraps the Cloudinary object-storage collaborator:
// upload a binary, get back a durable URL. Nothing resumable or chunked.
type Uploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// StoredObject identifies an uploaded asset. PublicID is kept alongside the
// URL so a failed second phase (record creation) can compensate with a delete.
type StoredObject struct {
	URL      string
	PublicID string
}

func NewUploader(cfg *config.Config) (*Uploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init failed: %v", err)
	}

	folder := cfg.CloudinaryFolder
	if folder == "" {
		folder = "mandapam"
	}

	log.Printf("✅ Cloudinary configured (folder: %s)", folder)
	return &Uploader{cld: cld, folder: folder}, nil
}

// Upload stores a multipart file under the given sub-folder and returns its
// durable URL plus the public ID needed for a compensating delete.
func (u *Uploader) Upload(ctx context.Context, file *multipart.FileHeader, subfolder string) (*StoredObject, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	publicID := strings.TrimSuffix(file.Filename, "."+extOf(file.Filename)) + "_" + uuid.NewString()[:8]

	resp, err := u.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		PublicID: publicID,
		Folder:   u.folder + "/" + subfolder,
	})
	if err != nil {
		return nil, err
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}

	return &StoredObject{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Destroy removes a stored object. Used both for explicit deletes and as the
// compensating action when record creation fails after a successful upload.
func (u *Uploader) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		log.Printf("⚠️ Cloudinary destroy failed for %s: %v", publicID, err)
	}
	return err
}

func extOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return filename[idx+1:]
}
