package expense

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(e *Expense) error
	GetByID(id uint) (*Expense, error)
	ListByUser(userID uint) ([]Expense, error)
	Delete(id uint) error

	TotalByUser(userID uint) (float64, error)
	TotalsByCategory(userID uint) ([]CategoryTotal, error)
	TotalsByDate(userID uint) ([]DateTotal, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(e *Expense) error {
	return r.db.Create(e).Error
}

func (r *repository) GetByID(id uint) (*Expense, error) {
	var e Expense
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListByUser(userID uint) ([]Expense, error) {
	var es []Expense
	err := r.db.Where("user_id = ?", userID).
		Order("spent_on DESC, created_at DESC").Find(&es).Error
	return es, err
}

func (r *repository) Delete(id uint) error {
	res := r.db.Delete(&Expense{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) TotalByUser(userID uint) (float64, error) {
	var total float64
	err := r.db.Model(&Expense{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func (r *repository) TotalsByCategory(userID uint) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := r.db.Model(&Expense{}).
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("category").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) TotalsByDate(userID uint) ([]DateTotal, error) {
	var rows []DateTotal
	err := r.db.Model(&Expense{}).
		Select("spent_on, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group("spent_on").
		Order("spent_on ASC").
		Scan(&rows).Error
	return rows, err
}
