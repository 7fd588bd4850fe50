package earnings

import (
	"context"

	"github.com/PennitApp/Pennit/app/models"
)

// WorksRepo is the slice of the work repository the estimator needs.
type WorksRepo interface {
	GetPublishedByAuthor(authorID uint) ([]models.Work, error)
}

// PayoutsRepo is the slice of the payout repository the estimator needs.
type PayoutsRepo interface {
	HistoryByWriter(writerID uint) ([]models.Payout, error)
}

type repoWorksSource struct {
	repo WorksRepo
}

// NewWorksSource adapts a work repository to the estimator's input.
func NewWorksSource(repo WorksRepo) WorksSource {
	return repoWorksSource{repo: repo}
}

func (s repoWorksSource) PublishedByAuthor(ctx context.Context, authorID uint) ([]models.Work, error) {
	return s.repo.GetPublishedByAuthor(authorID)
}

type repoPayoutSource struct {
	repo PayoutsRepo
}

// NewPayoutSource adapts a payout repository to the estimator's input.
func NewPayoutSource(repo PayoutsRepo) PayoutSource {
	return repoPayoutSource{repo: repo}
}

func (s repoPayoutSource) HistoryByWriter(ctx context.Context, writerID uint) ([]models.Payout, error) {
	return s.repo.HistoryByWriter(writerID)
}
