package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PayoutStatusCalculated = "calculated"
	PayoutStatusPaid       = "paid"
)

// Payout is one monthly entry in a writer's earnings ledger. Amounts are
// stored in pesewas (integer cents of GHS) so accumulation stays exact;
// formatting to cedis happens at presentation time only.
type Payout struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index:ux_payouts_user_month,unique,priority:1" json:"user_id"`
	User           User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Month          string         `gorm:"type:char(7);not null;index:ux_payouts_user_month,unique,priority:2" json:"month"` // YYYY-MM
	AmountPesewas  int64          `gorm:"not null;default:0" json:"amount_pesewas"`
	Points         uint64         `gorm:"not null;default:0" json:"points"`
	Status         string         `gorm:"type:varchar(32);not null;default:'calculated'" json:"status"`
	PaidAt         *time.Time     `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Payout model
func (Payout) TableName() string {
	return "payouts"
}
