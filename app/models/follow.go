package models

import (
	"time"

	"gorm.io/gorm"
)

// Follow links a reader to a writer they follow.
type Follow struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FollowerID uint           `gorm:"index" json:"follower_id"`
	Follower   User           `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	WriterID   uint           `gorm:"index" json:"writer_id"`
	Writer     User           `gorm:"foreignKey:WriterID" json:"writer,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// ToggleFollow creates or removes a follow and returns whether the
// follower is following after the toggle.
func ToggleFollow(db *gorm.DB, followerID, writerID uint) (bool, error) {
	var follow Follow
	result := db.Where("follower_id = ? AND writer_id = ?", followerID, writerID).First(&follow)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			newFollow := Follow{
				FollowerID: followerID,
				WriterID:   writerID,
			}
			return true, db.Create(&newFollow).Error
		}
		return false, result.Error
	}

	return false, db.Delete(&follow).Error
}

// CountFollowers returns the number of followers for a writer
func CountFollowers(db *gorm.DB, writerID uint) (int64, error) {
	var count int64
	err := db.Model(&Follow{}).Where("writer_id = ?", writerID).Count(&count).Error
	return count, err
}
