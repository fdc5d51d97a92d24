package repository

import (
	"errors"
	"strings"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"

	"gorm.io/gorm"
)

func (r *Repository) CreateChild(c *ds.Child) error {
	return r.db.Create(c).Error
}

func (r *Repository) AddGuardian(childID, userID uint, relation string) error {
	link := ds.ChildGuardian{ChildID: childID, UserID: userID, Relation: relation}
	return r.db.Create(&link).Error
}

func (r *Repository) GetChildByID(id uint, includeDeleted bool) (*ds.Child, error) {
	q := r.db.Preload("Guardians").Preload("Guardians.User").Where("id = ?", id)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	var c ds.Child
	if err := q.First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("child not found")
		}
		return nil, err
	}
	return &c, nil
}

// IsGuardian проверка владения: состоит ли пользователь в списке опекунов ребенка.
func (r *Repository) IsGuardian(userID, childID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.ChildGuardian{}).
		Where("user_id = ? AND child_id = ?", userID, childID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) ListChildrenByGuardian(userID uint) ([]ds.Child, error) {
	var children []ds.Child
	err := r.db.
		Joins("JOIN child_guardians ON child_guardians.child_id = children.id").
		Where("child_guardians.user_id = ? AND children.is_deleted = ?", userID, false).
		Order("children.id ASC").
		Find(&children).Error
	return children, err
}

func (r *Repository) CountChildrenByGuardian(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&ds.Child{}).
		Joins("JOIN child_guardians ON child_guardians.child_id = children.id").
		Where("child_guardians.user_id = ? AND children.is_deleted = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *Repository) SearchChildren(search string) ([]ds.Child, error) {
	q := r.db.Where("is_deleted = ?", false)
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var children []ds.Child
	err := q.Order("id ASC").Find(&children).Error
	return children, err
}

func (r *Repository) UpdateChild(id uint, fields map[string]interface{}) error {
	res := r.db.Model(&ds.Child{}).Where("id = ? AND is_deleted = ?", id, false).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("child not found")
	}
	return nil
}

func (r *Repository) SoftDeleteChild(id uint) error {
	res := r.db.Model(&ds.Child{}).Where("id = ? AND is_deleted = ?", id, false).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("child not found")
	}
	return nil
}
