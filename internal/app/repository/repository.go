package repository

import (
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// InTransaction выполняет fn в одной транзакции: либо все коммитится,
// либо при первой ошибке все откатывается.
func (r *Repository) InTransaction(fn func(tx *Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
