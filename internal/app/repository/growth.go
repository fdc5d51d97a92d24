package repository

import (
	"growthtrack/internal/app/ds"
)

func (r *Repository) CreateGrowthRecord(rec *ds.GrowthRecord) error {
	return r.db.Create(rec).Error
}

func (r *Repository) ListGrowthByChild(childID uint) ([]ds.GrowthRecord, error) {
	var records []ds.GrowthRecord
	err := r.db.
		Where("child_id = ?", childID).
		Order("measured_at ASC").
		Find(&records).Error
	return records, err
}

// AllGrowthRecords полная выгрузка для административного экспорта.
func (r *Repository) AllGrowthRecords() ([]ds.GrowthRecord, error) {
	var records []ds.GrowthRecord
	err := r.db.
		Preload("Child").
		Preload("RecordedBy").
		Order("child_id ASC, measured_at ASC").
		Find(&records).Error
	return records, err
}
