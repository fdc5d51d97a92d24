package repository

import (
	"errors"
	"time"

	"growthtrack/internal/app/ds"
	"growthtrack/internal/app/pkg/apperr"

	"gorm.io/gorm"
)

func (r *Repository) ListActivePlans() ([]ds.MembershipPlan, error) {
	var plans []ds.MembershipPlan
	err := r.db.Where("is_active = ?", true).Order("price_cents ASC").Find(&plans).Error
	return plans, err
}

func (r *Repository) GetPlanByID(id uint) (*ds.MembershipPlan, error) {
	var p ds.MembershipPlan
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("plan not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) CreatePlan(p *ds.MembershipPlan) error {
	return r.db.Create(p).Error
}

func (r *Repository) UpdatePlan(id uint, fields map[string]interface{}) error {
	res := r.db.Model(&ds.MembershipPlan{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("plan not found")
	}
	return nil
}

func (r *Repository) CreateSubscription(s *ds.Subscription) error {
	return r.db.Create(s).Error
}

// GetActiveSubscription действующая подписка пользователя, если есть.
func (r *Repository) GetActiveSubscription(userID uint, now time.Time) (*ds.Subscription, error) {
	var s ds.Subscription
	err := r.db.
		Preload("Plan").
		Where("user_id = ? AND status = ? AND expires_at > ?", userID, ds.SubscriptionActive, now).
		Order("expires_at DESC").
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // подписки нет, действует базовый лимит
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) ListSubscriptionsByUser(userID uint) ([]ds.Subscription, error) {
	var subs []ds.Subscription
	err := r.db.Preload("Plan").Where("user_id = ?", userID).Order("starts_at DESC").Find(&subs).Error
	return subs, err
}

// OverdueActiveSubscriptionIDs активные подписки с истекшим сроком.
func (r *Repository) OverdueActiveSubscriptionIDs(now time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&ds.Subscription{}).
		Where("status = ? AND expires_at <= ?", ds.SubscriptionActive, now).
		Pluck("id", &ids).Error
	return ids, err
}

// ExpireSubscriptions массовый перевод в Expired (системное действие).
func (r *Repository) ExpireSubscriptions(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.Model(&ds.Subscription{}).
		Where("id IN ? AND status = ?", ids, ds.SubscriptionActive).
		Update("status", ds.SubscriptionExpired)
	return res.RowsAffected, res.Error
}
