package service

import (
	"math"

	"growthtrack/internal/app/config"
	"growthtrack/internal/app/repository"
)

// Service единственная точка авторизации и бизнес-правил;
// репозиторий о правах ничего не знает.
type Service struct {
	repo *repository.Repository
	cfg  *config.Config
}

func New(repo *repository.Repository, cfg *config.Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// ListQuery общий контракт листинговых запросов.
type ListQuery struct {
	Page      int
	Size      int
	Search    string
	Status    string
	OrderDesc bool
}

// Normalize подставляет дефолты контракта: page=1, size=10.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 10
	}
}

func totalPages(total int64, size int) int {
	return int(math.Ceil(float64(total) / float64(size)))
}
