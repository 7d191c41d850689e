package gallery

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	CreateImage(img *Image) error
	GetImageByID(id uint) (*Image, error)
	ListImages(mandapamID uint) ([]Image, error)
	DeleteImage(id uint) error

	ToggleLike(imageID, userID uint) (liked bool, err error)
	CountLikes(imageID uint) (int64, error)
	HasLiked(imageID, userID uint) (bool, error)

	CreateComment(cm *Comment) error
	GetCommentByID(id uint) (*Comment, error)
	ListComments(imageID uint) ([]Comment, error)
	DeleteComment(id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateImage(img *Image) error {
	return r.db.Create(img).Error
}

func (r *repository) GetImageByID(id uint) (*Image, error) {
	var img Image
	if err := r.db.First(&img, id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *repository) ListImages(mandapamID uint) ([]Image, error) {
	var imgs []Image
	err := r.db.Where("mandapam_id = ?", mandapamID).
		Order("created_at DESC").Find(&imgs).Error
	return imgs, err
}

// DeleteImage removes the image row along with its likes and comments in one
// transaction. The explicit deletes keep sqlite-backed tests honest even
// without FK cascade enforcement.
func (r *repository) DeleteImage(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", id).Delete(&Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("image_id = ?", id).Delete(&Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Image{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ToggleLike flips the user's like inside a transaction: delete the existing
// row if present, otherwise insert one. The unique index on (image_id,
// user_id) makes concurrent toggles collapse to at most one row.
func (r *repository) ToggleLike(imageID, userID uint) (bool, error) {
	var liked bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("image_id = ? AND user_id = ?", imageID, userID).Delete(&Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}
		liked = true
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&Like{ImageID: imageID, UserID: userID}).Error
	})
	return liked, err
}

func (r *repository) CountLikes(imageID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Like{}).Where("image_id = ?", imageID).Count(&count).Error
	return count, err
}

func (r *repository) HasLiked(imageID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&Like{}).
		Where("image_id = ? AND user_id = ?", imageID, userID).Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateComment(cm *Comment) error {
	return r.db.Create(cm).Error
}

func (r *repository) GetCommentByID(id uint) (*Comment, error) {
	var cm Comment
	if err := r.db.First(&cm, id).Error; err != nil {
		return nil, err
	}
	return &cm, nil
}

func (r *repository) ListComments(imageID uint) ([]Comment, error) {
	var cms []Comment
	err := r.db.Where("image_id = ?", imageID).Order("created_at ASC").Find(&cms).Error
	return cms, err
}

func (r *repository) DeleteComment(id uint) error {
	res := r.db.Delete(&Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
