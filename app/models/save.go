package models

import (
	"time"

	"gorm.io/gorm"
)

// Save is a reader's bookmark of a work for later reading.
type Save struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	WorkID    uint           `gorm:"index" json:"work_id"`
	Work      Work           `gorm:"foreignKey:WorkID" json:"work,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ToggleSave creates or removes a save and returns whether the work is
// saved after the toggle.
func ToggleSave(db *gorm.DB, userID, workID uint) (bool, error) {
	var save Save
	result := db.Where("user_id = ? AND work_id = ?", userID, workID).First(&save)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			newSave := Save{
				UserID: userID,
				WorkID: workID,
			}
			return true, db.Create(&newSave).Error
		}
		return false, result.Error
	}

	return false, db.Delete(&save).Error
}

// ListSavedWorks returns the works a user has saved, newest first
func ListSavedWorks(db *gorm.DB, userID uint, offset, limit int) ([]Work, error) {
	var works []Work
	err := db.Joins("JOIN saves ON saves.work_id = works.id").
		Where("saves.user_id = ? AND saves.deleted_at IS NULL", userID).
		Order("saves.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&works).Error
	return works, err
}
