package bhajan

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(b *Bhajan) error
	GetByID(id uint) (*Bhajan, error)
	ListByUser(userID uint) ([]Bhajan, error)
	Update(b *Bhajan) error
	Delete(id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(b *Bhajan) error {
	return r.db.Create(b).Error
}

func (r *repository) GetByID(id uint) (*Bhajan, error) {
	var b Bhajan
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) ListByUser(userID uint) ([]Bhajan, error) {
	var bs []Bhajan
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&bs).Error
	return bs, err
}

func (r *repository) Update(b *Bhajan) error {
	return r.db.Save(b).Error
}

func (r *repository) Delete(id uint) error {
	res := r.db.Delete(&Bhajan{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
