package ds

import "time"

// GrowthRecord одно измерение роста ребенка.
type GrowthRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ChildID      uint      `gorm:"not null;index" json:"child_id"`
	RecordedByID uint      `gorm:"not null" json:"recorded_by_id"`
	MeasuredAt   time.Time `gorm:"not null" json:"measured_at"`
	HeightCm     float64   `gorm:"type:decimal(5,2);not null" json:"height_cm"`
	WeightKg     float64   `gorm:"type:decimal(5,2);not null" json:"weight_kg"`
	HeadCm       *float64  `gorm:"type:decimal(4,1)" json:"head_cm"`
	Note         string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Child      Child `gorm:"foreignKey:ChildID" json:"child,omitempty"`
	RecordedBy User  `gorm:"foreignKey:RecordedByID" json:"recorded_by,omitempty"`
}
