package repository

import (
	"time"

	"github.com/PennitApp/Pennit/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// payoutRepository implements the PayoutRepository interface
type payoutRepository struct {
	db *gorm.DB
}

// NewPayoutRepository creates a new payout repository instance
func NewPayoutRepository(db *gorm.DB) PayoutRepository {
	return &payoutRepository{db: db}
}

// Upsert writes one ledger row per writer per month
func (r *payoutRepository) Upsert(payout *models.Payout) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "month"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"amount_pesewas",
			"points",
			"status",
			"updated_at",
		}),
	}).Create(payout).Error; err != nil {
		return err
	}

	return r.db.Where("user_id = ? AND month = ?", payout.UserID, payout.Month).
		First(payout).Error
}

// HistoryByWriter returns the payout ledger for a writer, newest month first
func (r *payoutRepository) HistoryByWriter(writerID uint) ([]models.Payout, error) {
	var payouts []models.Payout
	err := r.db.Where("user_id = ?", writerID).Order("month DESC").Find(&payouts).Error
	return payouts, err
}

// MarkPaid marks a ledger entry as paid out
func (r *payoutRepository) MarkPaid(id uint) error {
	now := time.Now()
	return r.db.Model(&models.Payout{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":  models.PayoutStatusPaid,
		"paid_at": &now,
	}).Error
}
