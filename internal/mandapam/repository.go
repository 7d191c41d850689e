package mandapam

import (
	"strings"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// 🎯 Create Mandapam + promote its admin (single transaction)
// ===========================
// The mandapam row and the creator's promotion to admin must land together;
// a crash between the two would otherwise leave an ownerless mandapam.
func (r *Repository) CreateWithAdmin(m *Mandapam) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Table("users").
			Where("id = ?", m.AdminID).
			Updates(map[string]interface{}{
				"mandapam_id": m.ID,
				"role":        "admin",
			}).Error
	})
}

// ===========================
// 🔍 Lookups
// ===========================
func (r *Repository) GetByID(id uint) (*Mandapam, error) {
	var m Mandapam
	err := r.DB.First(&m, id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) GetByAdminID(adminID uint) (*Mandapam, error) {
	var m Mandapam
	err := r.DB.Where("admin_id = ?", adminID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) List() ([]Mandapam, error) {
	var out []Mandapam
	err := r.DB.Order("created_at DESC").Find(&out).Error
	return out, err
}

// Search filters the directory: name substring, city/state exact,
// all case-insensitive. Empty filter fields match everything.
func (r *Repository) Search(f SearchFilter) ([]Mandapam, error) {
	query := r.DB.Model(&Mandapam{})

	if f.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(f.Name))+"%")
	}
	if f.City != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(strings.TrimSpace(f.City)))
	}
	if f.State != "" {
		query = query.Where("LOWER(state) = ?", strings.ToLower(strings.TrimSpace(f.State)))
	}

	var out []Mandapam
	err := query.Order("name ASC").Find(&out).Error
	return out, err
}

// ===========================
// 🛠 Update
// ===========================
func (r *Repository) Update(m *Mandapam) error {
	return r.DB.Save(m).Error
}
