package repository

import (
	"errors"
	"strings"
	"time"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"

	"gorm.io/gorm"
)

// RequestFilter параметры выборки заявок.
type RequestFilter struct {
	Search         string // подстрока в title, без учета регистра
	Status         string // подстрока в status, без учета регистра
	MemberID       *uint
	DoctorID       *uint
	IncludeDeleted bool
	Page           int
	Size           int
	OrderDesc      bool // сортировка только по created_at
}

// CreateRequest вставляет заявку и привязки детей, порядок childIDs сохраняется.
func (r *Repository) CreateRequest(req *ds.Request, childIDs []uint) error {
	if err := r.db.Create(req).Error; err != nil {
		return err
	}
	for i, childID := range childIDs {
		link := ds.RequestChild{RequestID: req.ID, ChildID: childID, Position: i}
		if err := r.db.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) requestPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Member").
		Preload("Doctor").
		Preload("ChildLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("ChildLinks.Child")
}

func (r *Repository) GetRequestByID(id uint, includeDeleted bool) (*ds.Request, error) {
	q := r.requestPreloads(r.db).Where("id = ?", id)
	if !includeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	var req ds.Request
	if err := q.First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("request not found")
		}
		return nil, err
	}
	return &req, nil
}

// ListRequests возвращает страницу заявок и общее число совпадений.
func (r *Repository) ListRequests(f RequestFilter) ([]ds.Request, int64, error) {
	q := r.db.Model(&ds.Request{})
	if !f.IncludeDeleted {
		q = q.Where("is_deleted = ?", false)
	}
	if f.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.Status != "" {
		q = q.Where("LOWER(status) LIKE ?", "%"+strings.ToLower(f.Status)+"%")
	}
	if f.MemberID != nil {
		q = q.Where("member_id = ?", *f.MemberID)
	}
	if f.DoctorID != nil {
		q = q.Where("doctor_id = ?", *f.DoctorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at ASC"
	if f.OrderDesc {
		order = "created_at DESC"
	}

	var requests []ds.Request
	err := r.requestPreloads(q.Session(&gorm.Session{})).
		Order(order).
		Offset((f.Page - 1) * f.Size).
		Limit(f.Size).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// UpdateRequestStatus условный переход: совпасть должны id и текущий статус,
// проигравший гонку получает 0 затронутых строк.
func (r *Repository) UpdateRequestStatus(id uint, from, to ds.RequestStatus) error {
	res := r.db.Model(&ds.Request{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, from, false).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.BadRequest("request status already changed")
	}
	return nil
}

func (r *Repository) SoftDeleteRequest(id uint) error {
	res := r.db.Model(&ds.Request{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("request not found")
	}
	return nil
}

// CountRequestsCreatedBetween число заявок участника в окне [from, to).
func (r *Repository) CountRequestsCreatedBetween(memberID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&ds.Request{}).
		Where("member_id = ? AND created_at >= ? AND created_at < ?", memberID, from, to).
		Count(&count).Error
	return count, err
}

// StalePendingRequestIDs неудаленные Pending старше olderThan.
func (r *Repository) StalePendingRequestIDs(olderThan time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&ds.Request{}).
		Where("status = ? AND is_deleted = ? AND created_at < ?", ds.StatusPending, false, olderThan).
		Pluck("id", &ids).Error
	return ids, err
}

// CancelRequests массовая отмена по списку id; системное действие,
// фильтр по Pending не дает отменить уже переведенные заявки повторно.
func (r *Repository) CancelRequests(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Model(&ds.Request{}).
		Where("id IN ? AND status = ?", ids, ds.StatusPending).
		Update("status", ds.StatusCanceled)
	return res.RowsAffected, res.Error
}
