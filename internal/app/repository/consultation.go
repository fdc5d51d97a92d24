package repository

import (
	"errors"
	"time"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"

	"gorm.io/gorm"
)

func (r *Repository) CreateConsultation(c *ds.Consultation) error {
	return r.db.Create(c).Error
}

func (r *Repository) GetConsultationByID(id uint) (*ds.Consultation, error) {
	var c ds.Consultation
	err := r.db.
		Preload("Member").
		Preload("Doctor").
		Preload("Request").
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("consultation not found")
		}
		return nil, err
	}
	return &c, nil
}

// ConsultationFilter выборка консультаций; nil-поля не фильтруют.
type ConsultationFilter struct {
	MemberID  *uint
	DoctorID  *uint
	Status    string
	Page      int
	Size      int
	OrderDesc bool
}

func (r *Repository) ListConsultations(f ConsultationFilter) ([]ds.Consultation, int64, error) {
	q := r.db.Model(&ds.Consultation{})
	if f.MemberID != nil {
		q = q.Where("member_id = ?", *f.MemberID)
	}
	if f.DoctorID != nil {
		q = q.Where("doctor_id = ?", *f.DoctorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "started_at ASC"
	if f.OrderDesc {
		order = "started_at DESC"
	}

	var list []ds.Consultation
	err := q.Session(&gorm.Session{}).
		Preload("Member").
		Preload("Doctor").
		Preload("Request").
		Order(order).
		Offset((f.Page - 1) * f.Size).
		Limit(f.Size).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// CompleteConsultation условный переход Active -> Completed.
func (r *Repository) CompleteConsultation(id uint, summary string, completedAt time.Time) error {
	res := r.db.Model(&ds.Consultation{}).
		Where("id = ? AND status = ?", id, ds.ConsultationActive).
		Updates(map[string]interface{}{
			"status":       ds.ConsultationCompleted,
			"summary":      summary,
			"completed_at": completedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.BadRequest("consultation is not active")
	}
	return nil
}

// IdleActiveConsultationIDs активные консультации без изменений дольше порога.
func (r *Repository) IdleActiveConsultationIDs(before time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&ds.Consultation{}).
		Where("status = ? AND updated_at < ?", ds.ConsultationActive, before).
		Pluck("id", &ids).Error
	return ids, err
}

// CompleteConsultations массовое закрытие по списку id (системное действие).
func (r *Repository) CompleteConsultations(ids []uint, completedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Model(&ds.Consultation{}).
		Where("id IN ? AND status = ?", ids, ds.ConsultationActive).
		Updates(map[string]interface{}{
			"status":       ds.ConsultationCompleted,
			"completed_at": completedAt,
		})
	return res.RowsAffected, res.Error
}

// CountConsultationsByRequest используется в тестах и проверках целостности.
func (r *Repository) CountConsultationsByRequest(requestID uint) (int64, error) {
	var count int64
	err := r.db.Model(&ds.Consultation{}).Where("request_id = ?", requestID).Count(&count).Error
	return count, err
}

// DoctorHasActiveConsultationForChild проверяет, ведет ли врач активную
// консультацию, в заявке которой фигурирует ребенок.
func (r *Repository) DoctorHasActiveConsultationForChild(doctorID, childID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Consultation{}).
		Joins("JOIN request_children ON request_children.request_id = consultations.request_id").
		Where("consultations.doctor_id = ? AND consultations.status = ? AND request_children.child_id = ?",
			doctorID, ds.ConsultationActive, childID).
		Count(&count).Error
	return count > 0, err
}
