package schedule

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(ev *Event) error
	GetByID(id uint) (*Event, error)
	ListByDay(mandapamID uint, day int) ([]Event, error)
	ListAll(mandapamID uint) ([]Event, error)
	Update(ev *Event) error
	Delete(id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ev *Event) error {
	return r.db.Create(ev).Error
}

func (r *repository) GetByID(id uint) (*Event, error) {
	var ev Event
	if err := r.db.First(&ev, id).Error; err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *repository) ListByDay(mandapamID uint, day int) ([]Event, error) {
	var evs []Event
	err := r.db.Where("mandapam_id = ? AND day = ?", mandapamID, day).
		Order("datetime ASC").Find(&evs).Error
	return evs, err
}

func (r *repository) ListAll(mandapamID uint) ([]Event, error) {
	var evs []Event
	err := r.db.Where("mandapam_id = ?", mandapamID).
		Order("datetime ASC").Find(&evs).Error
	return evs, err
}

func (r *repository) Update(ev *Event) error {
	return r.db.Save(ev).Error
}

func (r *repository) Delete(id uint) error {
	res := r.db.Delete(&Event{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
