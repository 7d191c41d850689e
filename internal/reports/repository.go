package reports

import (
	"gorm.io/gorm"
)

type Repository interface {
	ExpenseRows(userID uint) ([]ExpenseReportRow, error)
	VolunteerRows(mandapamID uint) ([]VolunteerReportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ExpenseRows(userID uint) ([]ExpenseReportRow, error) {
	var rows []ExpenseReportRow
	err := r.db.Table("expenses").
		Select("id, title, category, amount, spent_on, created_at AS added_at").
		Where("user_id = ?", userID).
		Order("spent_on ASC, id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) VolunteerRows(mandapamID uint) ([]VolunteerReportRow, error) {
	var rows []VolunteerReportRow
	err := r.db.Table("volunteer_assignments va").
		Select("va.user_id, COALESCE(u.full_name, '') AS full_name, va.email, va.role, va.assigned_at").
		Joins("LEFT JOIN users u ON u.id = va.user_id").
		Where("va.mandapam_id = ?", mandapamID).
		Order("va.role ASC, va.assigned_at ASC").
		Scan(&rows).Error
	return rows, err
}
