package models

import (
	"time"

	"gorm.io/gorm"
)

type Clap struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WorkID    uint           `gorm:"index" json:"work_id"`
	Work      Work           `gorm:"foreignKey:WorkID" json:"work,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ToggleClap creates or removes a clap and returns whether the user has
// clapped after the toggle. The denormalized clap_count on the work is
// adjusted in the same transaction so list views stay consistent with the
// clap rows.
func ToggleClap(db *gorm.DB, userID, workID uint) (bool, error) {
	clapped := false
	err := db.Transaction(func(tx *gorm.DB) error {
		var clap Clap
		result := tx.Where("user_id = ? AND work_id = ?", userID, workID).First(&clap)

		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				newClap := Clap{
					UserID: userID,
					WorkID: workID,
				}
				if err := tx.Create(&newClap).Error; err != nil {
					return err
				}
				clapped = true
				return adjustClapCount(tx, workID, +1)
			}
			return result.Error
		}

		// Clap exists, remove it
		if err := tx.Delete(&clap).Error; err != nil {
			return err
		}
		return adjustClapCount(tx, workID, -1)
	})
	return clapped, err
}

func adjustClapCount(tx *gorm.DB, workID uint, delta int) error {
	return tx.Model(&Work{}).Where("id = ?", workID).
		UpdateColumn("clap_count", gorm.Expr("clap_count + ?", delta)).Error
}

// CountClaps returns the number of claps for a work
func CountClaps(db *gorm.DB, workID uint) (int64, error) {
	var count int64
	err := db.Model(&Clap{}).Where("work_id = ?", workID).Count(&count).Error
	return count, err
}
