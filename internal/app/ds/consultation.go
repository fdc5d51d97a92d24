package ds

import (
	"database/sql"
	"time"
)

// ConsultationStatus статус консультации.
type ConsultationStatus string

const (
	ConsultationActive    ConsultationStatus = "Active"
	ConsultationCompleted ConsultationStatus = "Completed"
)

// Consultation создается в той же транзакции, что и перевод заявки в Accepted.
type Consultation struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	RequestID   uint               `gorm:"not null;uniqueIndex" json:"request_id"`
	MemberID    uint               `gorm:"not null;index" json:"member_id"`
	DoctorID    uint               `gorm:"not null;index" json:"doctor_id"`
	Status      ConsultationStatus `gorm:"type:varchar(20);not null;default:Active" json:"status"`
	Summary     sql.NullString     `gorm:"type:text" json:"-"`
	StartedAt   time.Time          `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time         `json:"completed_at"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	Request Request `gorm:"foreignKey:RequestID" json:"request"`
	Member  User    `gorm:"foreignKey:MemberID" json:"member"`
	Doctor  User    `gorm:"foreignKey:DoctorID" json:"doctor"`
}
