package ds

import (
	"strings"
	"time"
)

// RequestStatus статус заявки на консультацию.
type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusAccepted RequestStatus = "Accepted"
	StatusRejected RequestStatus = "Rejected"
	StatusCanceled RequestStatus = "Canceled"
)

// requestTransitions единственная таблица допустимых переходов.
// Accepted/Rejected/Canceled терминальные.
var requestTransitions = map[RequestStatus][]RequestStatus{
	StatusPending: {StatusAccepted, StatusRejected, StatusCanceled},
}

// CanTransitionTo повтор текущего статуса тоже запрещен.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseRequestStatus разбирает статус без учета регистра.
func ParseRequestStatus(s string) (RequestStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, true
	case "accepted":
		return StatusAccepted, true
	case "rejected":
		return StatusRejected, true
	case "canceled":
		return StatusCanceled, true
	}
	return "", false
}

type Request struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	MemberID  uint          `gorm:"not null;index" json:"member_id"`
	DoctorID  uint          `gorm:"not null;index" json:"doctor_id"`
	Title     string        `gorm:"type:varchar(100);not null" json:"title"`
	Status    RequestStatus `gorm:"type:varchar(20);not null;default:Pending" json:"status"`
	IsDeleted bool          `gorm:"type:boolean;default:false" json:"-"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Member     User           `gorm:"foreignKey:MemberID" json:"member"`
	Doctor     User           `gorm:"foreignKey:DoctorID" json:"doctor"`
	ChildLinks []RequestChild `gorm:"foreignKey:RequestID" json:"children"`
}

// RequestChild привязка ребенка к заявке, порядок хранится в Position.
type RequestChild struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	RequestID uint `gorm:"not null;uniqueIndex:idx_request_child" json:"-"`
	ChildID   uint `gorm:"not null;uniqueIndex:idx_request_child" json:"child_id"`
	Position  int  `gorm:"not null" json:"-"`

	Child Child `gorm:"foreignKey:ChildID" json:"child"`
}
