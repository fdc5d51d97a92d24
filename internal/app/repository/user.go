package repository

import (
	"errors"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"

	"gorm.io/gorm"
)

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var u ds.User
	if err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetUserByLogin(login string) (*ds.User, error) {
	var u ds.User
	if err := r.db.Where("login = ? AND is_deleted = ?", login, false).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) CreateUser(u *ds.User) error {
	return r.db.Create(u).Error
}

func (r *Repository) UpdateUser(id uint, fields map[string]interface{}) error {
	return r.db.Model(&ds.User{}).Where("id = ?", id).Updates(fields).Error
}
