package mandapam

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"time"

	"gorm.io/gorm"

	"github.com/Nageshwar17/Ganesh-Mandapam-Org/apperr"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/internal/auditlog"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/middleware"
	"github.com/Nageshwar17/Ganesh-Mandapam-Org/utils"
)

const (
	directoryCacheKey = "mandapams:directory"
	directoryCacheTTL = 5 * time.Minute
)

// Service wraps business logic for mandapams
type Service struct {
	Repo     *Repository
	Uploader *utils.Uploader
	AuditSvc auditlog.Service
}

func NewService(r *Repository, uploader *utils.Uploader, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		Uploader: uploader,
		AuditSvc: auditSvc,
	}
}

// ===========================
// 🎯 Create Mandapam
// ===========================
// Logo upload happens first; if the record then fails to persist, the
// uploaded object is destroyed so no orphan is left behind.
func (s *Service) Create(ctx context.Context, identity middleware.Identity, req *CreateRequest, logo *multipart.FileHeader, ip string) (*Mandapam, error) {
	if identity.MandapamID != nil {
		return nil, apperr.Validation("you already belong to a mandapam")
	}

	country := req.Country
	if country == "" {
		country = "India"
	}

	m := &Mandapam{
		Name:        req.Name,
		City:        req.City,
		State:       req.State,
		Country:     country,
		Address:     req.Address,
		Description: req.Description,
		AdminID:     identity.UserID,
		AdminEmail:  identity.Email,
		AdminName:   identity.FullName,
	}

	if logo != nil {
		obj, err := s.Uploader.Upload(ctx, logo, "logos")
		if err != nil {
			return nil, apperr.Unavailable("logo upload failed", err)
		}
		m.LogoURL = obj.URL
		m.LogoPublicID = obj.PublicID
	}

	if err := s.Repo.CreateWithAdmin(m); err != nil {
		// Compensate: the logo made it to storage but the record did not.
		if m.LogoPublicID != "" {
			_ = s.Uploader.Destroy(ctx, m.LogoPublicID)
		}
		s.AuditSvc.LogAction(ctx, &identity.UserID, nil, "MANDAPAM_CREATED",
			map[string]interface{}{"name": req.Name, "error": err.Error()}, ip, "failure")
		return nil, apperr.FromDB(err, "")
	}

	utils.CacheDel(ctx, directoryCacheKey)

	s.AuditSvc.LogAction(ctx, &identity.UserID, &m.ID, "MANDAPAM_CREATED",
		map[string]interface{}{"name": m.Name, "city": m.City, "state": m.State}, ip, "success")

	return m, nil
}

// ===========================
// 🔍 Get / List / Search
// ===========================
func (s *Service) Get(id uint) (*Mandapam, error) {
	m, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, apperr.FromDB(err, "mandapam not found")
	}
	return m, nil
}

// GetByAdmin returns the mandapam owned by the given admin, or NotFound.
func (s *Service) GetByAdmin(adminID uint) (*Mandapam, error) {
	m, err := s.Repo.GetByAdminID(adminID)
	if err != nil {
		return nil, apperr.FromDB(err, "no mandapam found for this admin")
	}
	return m, nil
}

// List returns the public directory, served from cache when warm.
func (s *Service) List(ctx context.Context) ([]Mandapam, error) {
	if cached := utils.CacheGet(ctx, directoryCacheKey); cached != "" {
		var out []Mandapam
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return out, nil
		}
	}

	out, err := s.Repo.List()
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}

	if raw, err := json.Marshal(out); err == nil {
		utils.CacheSet(ctx, directoryCacheKey, string(raw), directoryCacheTTL)
	}

	return out, nil
}

func (s *Service) Search(f SearchFilter) ([]Mandapam, error) {
	out, err := s.Repo.Search(f)
	if err != nil {
		return nil, apperr.FromDB(err, "")
	}
	return out, nil
}

// ===========================
// 🛠 Update Settings (admin only)
// ===========================
func (s *Service) Update(ctx context.Context, identity middleware.Identity, id uint, req *UpdateRequest, logo *multipart.FileHeader, ip string) (*Mandapam, error) {
	m, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("mandapam not found")
		}
		return nil, apperr.FromDB(err, "")
	}

	if !identity.IsAdmin(m.ID) {
		s.AuditSvc.LogAction(ctx, &identity.UserID, &m.ID, "MANDAPAM_UPDATED",
			map[string]interface{}{"error": "admin access required"}, ip, "failure")
		return nil, apperr.Forbidden("only the mandapam admin can edit settings")
	}

	m.Name = req.Name
	m.City = req.City
	m.State = req.State
	if req.Country != "" {
		m.Country = req.Country
	}
	m.Address = req.Address
	m.Description = req.Description

	if logo != nil {
		obj, err := s.Uploader.Upload(ctx, logo, "logos")
		if err != nil {
			return nil, apperr.Unavailable("logo upload failed", err)
		}
		oldPublicID := m.LogoPublicID
		m.LogoURL = obj.URL
		m.LogoPublicID = obj.PublicID

		if err := s.Repo.Update(m); err != nil {
			_ = s.Uploader.Destroy(ctx, obj.PublicID)
			return nil, apperr.FromDB(err, "")
		}
		if oldPublicID != "" {
			_ = s.Uploader.Destroy(ctx, oldPublicID)
		}
	} else if err := s.Repo.Update(m); err != nil {
		return nil, apperr.FromDB(err, "")
	}

	utils.CacheDel(ctx, directoryCacheKey)

	s.AuditSvc.LogAction(ctx, &identity.UserID, &m.ID, "MANDAPAM_UPDATED",
		map[string]interface{}{"name": m.Name}, ip, "success")

	return m, nil
}
