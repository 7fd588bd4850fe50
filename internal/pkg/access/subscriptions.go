package access

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/PennitApp/Pennit/app/models"
)

// SubscriptionRepo is the slice of the subscription repository the
// checker needs.
type SubscriptionRepo interface {
	GetLatestByUser(userID uint) (*models.Subscription, error)
}

// RepoSubscriptionChecker answers subscription questions from the
// database. A missing row is simply "no subscription", not an error.
type RepoSubscriptionChecker struct {
	repo SubscriptionRepo
	now  func() time.Time
}

// NewSubscriptionChecker creates a checker over the given repository.
func NewSubscriptionChecker(repo SubscriptionRepo) *RepoSubscriptionChecker {
	return &RepoSubscriptionChecker{repo: repo, now: time.Now}
}

func (c *RepoSubscriptionChecker) HasActiveSubscription(ctx context.Context, userID uint) (bool, error) {
	sub, err := c.repo.GetLatestByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.HasActiveAccess(c.now()), nil
}
