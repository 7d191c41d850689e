package notification

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(n *Notification) error
	ListByUser(userID uint, unreadOnly bool) ([]Notification, error)
	MarkRead(id, userID uint) error
	MarkAllRead(userID uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(n *Notification) error {
	return r.db.Create(n).Error
}

func (r *repository) ListByUser(userID uint, unreadOnly bool) ([]Notification, error) {
	var ns []Notification
	q := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	err := q.Order("created_at DESC").Limit(100).Find(&ns).Error
	return ns, err
}

func (r *repository) MarkRead(id, userID uint) error {
	res := r.db.Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) MarkAllRead(userID uint) error {
	return r.db.Model(&Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
