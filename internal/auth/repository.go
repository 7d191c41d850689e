package auth

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	FindByFirebaseUID(uid string) (*User, error)
	Update(user *User) error
	SetMandapam(userID uint, mandapamID uint, role string) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.First(&user, userID).Error
	return user, err
}

func (r *repository) FindByFirebaseUID(uid string) (*User, error) {
	var u User
	err := r.db.Where("firebase_uid = ?", uid).First(&u).Error
	return &u, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

// SetMandapam links a user to a mandapam and sets their role in one update.
// Called inside the mandapam-creation transaction for the owning admin.
func (r *repository) SetMandapam(userID uint, mandapamID uint, role string) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"mandapam_id": mandapamID,
		"role":        role,
	}).Error
}
