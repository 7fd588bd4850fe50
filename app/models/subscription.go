package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusExpired  = "expired"
)

// Subscription mirrors the reader subscription state synced from the
// payment provider. Access decisions only care about HasActiveAccess.
type Subscription struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	UserID                 uint       `gorm:"not null;index" json:"user_id"`
	Provider               string     `gorm:"type:varchar(20);not null;index" json:"provider"`
	ProviderSubscriptionID string     `gorm:"type:varchar(191);not null;index:ux_subscriptions_provider_subid,unique" json:"provider_subscription_id"`
	Status                 string     `gorm:"type:varchar(32);not null;default:'active';index" json:"status"`
	CurrentPeriodStart     *time.Time `gorm:"type:timestamp;default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd       *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	CancelAtPeriodEnd      bool       `gorm:"default:false" json:"cancel_at_period_end"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasActiveAccess reports whether the subscription grants paid access at
// the given time: status active and the current period not yet over.
func (s *Subscription) HasActiveAccess(now time.Time) bool {
	if s == nil || s.Status != SubscriptionStatusActive {
		return false
	}
	if s.CurrentPeriodEnd == nil {
		return false
	}
	return s.CurrentPeriodEnd.After(now)
}
