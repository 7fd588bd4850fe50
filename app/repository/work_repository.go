package repository

import (
	"time"

	"github.com/PennitApp/Pennit/app/models"
	"gorm.io/gorm"
)

// workRepository implements the WorkRepository interface
type workRepository struct {
	db *gorm.DB
}

// NewWorkRepository creates a new work repository instance
func NewWorkRepository(db *gorm.DB) WorkRepository {
	return &workRepository{db: db}
}

// Create creates a new work in the database
func (r *workRepository) Create(work *models.Work) error {
	return r.db.Create(work).Error
}

// GetByID retrieves a work by its ID
func (r *workRepository) GetByID(id uint) (*models.Work, error) {
	var work models.Work
	err := r.db.First(&work, id).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

// GetByUUID retrieves a work by its public UUID
func (r *workRepository) GetByUUID(uuid string) (*models.Work, error) {
	var work models.Work
	err := r.db.Preload("User").Where("uuid = ?", uuid).First(&work).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

// GetByShareLink retrieves a work by its short share link
func (r *workRepository) GetByShareLink(shareLink string) (*models.Work, error) {
	var work models.Work
	err := r.db.Preload("User").Where("share_link = ?", shareLink).First(&work).Error
	if err != nil {
		return nil, err
	}
	return &work, nil
}

// GetByUserID retrieves works by author, any status, newest first
func (r *workRepository) GetByUserID(userID uint, offset, limit int) ([]models.Work, error) {
	var works []models.Work
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&works).Error
	return works, err
}

// GetPublished returns published works paginated, newest first
func (r *workRepository) GetPublished(offset, limit int) ([]models.Work, error) {
	var works []models.Work
	err := r.db.Preload("User").Where("status = ?", models.WorkStatusPublished).
		Order("published_at DESC").Offset(offset).Limit(limit).Find(&works).Error
	return works, err
}

// GetPublishedByCategory returns published works in a category
func (r *workRepository) GetPublishedByCategory(category string, offset, limit int) ([]models.Work, error) {
	var works []models.Work
	err := r.db.Preload("User").
		Where("status = ? AND category = ?", models.WorkStatusPublished, category).
		Order("published_at DESC").Offset(offset).Limit(limit).Find(&works).Error
	return works, err
}

// GetPublishedByAuthor returns all published works of one author; this is
// the earnings estimator's input
func (r *workRepository) GetPublishedByAuthor(authorID uint) ([]models.Work, error) {
	var works []models.Work
	err := r.db.Where("user_id = ? AND status = ?", authorID, models.WorkStatusPublished).
		Find(&works).Error
	return works, err
}

// GetPending returns works awaiting moderation, oldest first
func (r *workRepository) GetPending(offset, limit int) ([]models.Work, error) {
	var works []models.Work
	err := r.db.Preload("User").Where("status = ?", models.WorkStatusPending).
		Order("created_at ASC").Offset(offset).Limit(limit).Find(&works).Error
	return works, err
}

// Update updates an existing work in the database
func (r *workRepository) Update(work *models.Work) error {
	return r.db.Save(work).Error
}

// Delete soft-deletes a work by ID
func (r *workRepository) Delete(id uint) error {
	return r.db.Delete(&models.Work{}, id).Error
}

// Count returns the total number of works
func (r *workRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Work{}).Count(&count).Error
	return count, err
}

// CountByUserID returns the number of works by one author
func (r *workRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Work{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountPublishedSince counts works published since the given time
func (r *workRepository) CountPublishedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Work{}).
		Where("status = ? AND published_at >= ?", models.WorkStatusPublished, since).
		Count(&count).Error
	return count, err
}

// Search finds published works by title fragment
func (r *workRepository) Search(query string) ([]models.Work, error) {
	var works []models.Work
	like := "%" + query + "%"
	err := r.db.Preload("User").
		Where("status = ? AND title LIKE ?", models.WorkStatusPublished, like).
		Limit(50).Find(&works).Error
	return works, err
}
