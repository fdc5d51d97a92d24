package ds

import "time"

// SubscriptionStatus статус подписки на тариф.
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "Active"
	SubscriptionExpired  SubscriptionStatus = "Expired"
	SubscriptionCanceled SubscriptionStatus = "Canceled"
)

// MembershipPlan тариф; MaxChildren ограничивает число детей участника.
type MembershipPlan struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);unique;not null" json:"name"`
	MaxChildren  int       `gorm:"not null" json:"max_children"`
	PriceCents   int64     `gorm:"not null" json:"price_cents"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	IsActive     bool      `gorm:"type:boolean;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Subscription оформленная подписка, PaidCents фиксирует списание.
type Subscription struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	UserID    uint               `gorm:"not null;index" json:"user_id"`
	PlanID    uint               `gorm:"not null" json:"plan_id"`
	Status    SubscriptionStatus `gorm:"type:varchar(20);not null;default:Active" json:"status"`
	StartsAt  time.Time          `gorm:"not null" json:"starts_at"`
	ExpiresAt time.Time          `gorm:"not null" json:"expires_at"`
	PaidCents int64              `gorm:"not null" json:"paid_cents"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	Plan MembershipPlan `gorm:"foreignKey:PlanID" json:"plan"`
}
