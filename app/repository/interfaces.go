package repository

import (
	"time"

	"github.com/PennitApp/Pennit/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
}

// WorkRepository defines the interface for work-related database operations
type WorkRepository interface {
	Create(work *models.Work) error
	GetByID(id uint) (*models.Work, error)
	GetByUUID(uuid string) (*models.Work, error)
	GetByShareLink(shareLink string) (*models.Work, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Work, error)
	GetPublished(offset, limit int) ([]models.Work, error)
	GetPublishedByCategory(category string, offset, limit int) ([]models.Work, error)
	GetPublishedByAuthor(authorID uint) ([]models.Work, error)
	GetPending(offset, limit int) ([]models.Work, error)
	Update(work *models.Work) error
	Delete(id uint) error
	Count() (int64, error)
	CountByUserID(userID uint) (int64, error)
	CountPublishedSince(since time.Time) (int64, error)
	Search(query string) ([]models.Work, error)
}

// SubscriptionRepository defines the interface for subscription lookups
type SubscriptionRepository interface {
	Upsert(sub *models.Subscription) error
	GetLatestByUser(userID uint) (*models.Subscription, error)
	ListByUser(userID uint) ([]models.Subscription, error)
}

// PayoutRepository defines the interface for the writer payout ledger
type PayoutRepository interface {
	Upsert(payout *models.Payout) error
	HistoryByWriter(writerID uint) ([]models.Payout, error)
	MarkPaid(id uint) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Work         WorkRepository
	Subscription SubscriptionRepository
	Payout       PayoutRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Work:         NewWorkRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Payout:       NewPayoutRepository(db),
	}
}
