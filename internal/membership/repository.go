package membership

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreateRequest(req *JoinRequest) error
	GetRequestByID(id uint) (*JoinRequest, error)
	ListRequests(mandapamID uint, status string) ([]JoinRequest, error)
	UpdateRequestStatus(id uint, status string) error
	HasApprovedRequest(mandapamID, userID uint) (bool, error)
	ListApprovedMembers(mandapamID uint) ([]JoinRequest, error)

	UpsertAssignment(a *VolunteerAssignment) error
	GetAssignment(mandapamID, userID uint) (*VolunteerAssignment, error)
	DeleteAssignment(mandapamID, userID uint) error
	ListAssignments(mandapamID uint) ([]VolunteerAssignment, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRequest(req *JoinRequest) error {
	return r.db.Create(req).Error
}

func (r *repository) GetRequestByID(id uint) (*JoinRequest, error) {
	var req JoinRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) ListRequests(mandapamID uint, status string) ([]JoinRequest, error) {
	var reqs []JoinRequest
	q := r.db.Where("mandapam_id = ?", mandapamID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *repository) UpdateRequestStatus(id uint, status string) error {
	return r.db.Model(&JoinRequest{}).Where("id = ?", id).Update("status", status).Error
}

func (r *repository) HasApprovedRequest(mandapamID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&JoinRequest{}).
		Where("mandapam_id = ? AND user_id = ? AND status = ?", mandapamID, userID, StatusApproved).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListApprovedMembers(mandapamID uint) ([]JoinRequest, error) {
	var reqs []JoinRequest
	err := r.db.Where("mandapam_id = ? AND status = ?", mandapamID, StatusApproved).
		Order("updated_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *repository) UpsertAssignment(a *VolunteerAssignment) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "mandapam_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "assigned_by"}),
	}).Create(a).Error
}

func (r *repository) GetAssignment(mandapamID, userID uint) (*VolunteerAssignment, error) {
	var a VolunteerAssignment
	err := r.db.Where("mandapam_id = ? AND user_id = ?", mandapamID, userID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) DeleteAssignment(mandapamID, userID uint) error {
	res := r.db.Where("mandapam_id = ? AND user_id = ?", mandapamID, userID).
		Delete(&VolunteerAssignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ListAssignments(mandapamID uint) ([]VolunteerAssignment, error) {
	var as []VolunteerAssignment
	err := r.db.Where("mandapam_id = ?", mandapamID).Order("assigned_at DESC").Find(&as).Error
	return as, err
}
