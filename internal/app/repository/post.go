package repository

import (
	"errors"
	"strings"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"

	"gorm.io/gorm"
)

func (r *Repository) CreatePost(p *ds.Post) error {
	return r.db.Create(p).Error
}

func (r *Repository) GetPostByID(id uint) (*ds.Post, error) {
	var p ds.Post
	err := r.db.Preload("Author").Where("id = ? AND is_deleted = ?", id, false).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListPosts(search string, page, size int, orderDesc bool) ([]ds.Post, int64, error) {
	q := r.db.Model(&ds.Post{}).Where("is_deleted = ?", false)
	if search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at ASC"
	if orderDesc {
		order = "created_at DESC"
	}

	var posts []ds.Post
	err := q.Session(&gorm.Session{}).
		Preload("Author").
		Order(order).
		Offset((page - 1) * size).
		Limit(size).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *Repository) SoftDeletePost(id uint) error {
	res := r.db.Model(&ds.Post{}).Where("id = ? AND is_deleted = ?", id, false).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}

func (r *Repository) CreateComment(c *ds.Comment) error {
	return r.db.Create(c).Error
}

func (r *Repository) GetCommentByID(id uint) (*ds.Comment, error) {
	var c ds.Comment
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListCommentsByPost(postID uint) ([]ds.Comment, error) {
	var comments []ds.Comment
	err := r.db.
		Preload("Author").
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *Repository) SoftDeleteComment(id uint) error {
	res := r.db.Model(&ds.Comment{}).Where("id = ? AND is_deleted = ?", id, false).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("comment not found")
	}
	return nil
}
