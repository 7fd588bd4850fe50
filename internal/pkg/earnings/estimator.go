package earnings

import (
	"context"
	"errors"
	"fmt"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/internal/pkg/featuregate"
)

var (
	// ErrNotWriter means the identity has no earnings to estimate; a
	// permission-class precondition violation, not a stats failure.
	ErrNotWriter = errors.New("earnings: identity is not a writer")
	// ErrStatsUnavailable means works or payout data could not be loaded.
	// Callers must show an "unavailable" state, never a fake zero.
	ErrStatsUnavailable = errors.New("earnings: stats unavailable")
)

// WorksSource loads the published works that earn points for a writer.
type WorksSource interface {
	PublishedByAuthor(ctx context.Context, authorID uint) ([]models.Work, error)
}

// PayoutSource loads the historical payout ledger for a writer.
type PayoutSource interface {
	HistoryByWriter(ctx context.Context, writerID uint) ([]models.Payout, error)
}

// Snapshot is the current-period estimate plus the payout history.
type Snapshot struct {
	Points        uint64          `json:"points"`
	Amount        Pesewas         `json:"amount_pesewas"`
	AmountDisplay string          `json:"amount_ghs"`
	History       []models.Payout `json:"history"`
}

// Estimator converts a writer's accumulated reads into a point total and
// a cedi estimate. It assumes the monetization gate was checked for
// display purposes; when invoked with the gate off it still returns a
// structurally valid zeroed snapshot.
type Estimator struct {
	cfg             featuregate.Config
	works           WorksSource
	payouts         PayoutSource
	policy          PointsPolicy
	pesewasPerPoint Pesewas
}

// NewEstimator wires an estimator. A zero rate falls back to the default
// conversion; a nil policy falls back to category weighting.
func NewEstimator(cfg featuregate.Config, works WorksSource, payouts PayoutSource, policy PointsPolicy, rate Pesewas) *Estimator {
	if policy == nil {
		policy = NewCategoryWeightedPolicy()
	}
	if rate <= 0 {
		rate = DefaultPesewasPerPoint
	}
	return &Estimator{
		cfg:             cfg,
		works:           works,
		payouts:         payouts,
		policy:          policy,
		pesewasPerPoint: rate,
	}
}

// Estimate computes the snapshot for a writer. The user must already be
// loaded; a non-writer yields ErrNotWriter, load failures yield
// ErrStatsUnavailable.
func (e *Estimator) Estimate(ctx context.Context, user *models.User) (*Snapshot, error) {
	if user == nil || !user.IsWriter() {
		return nil, ErrNotWriter
	}

	if !e.cfg.MonetizationEnabled {
		return &Snapshot{AmountDisplay: Pesewas(0).Cedis(), History: []models.Payout{}}, nil
	}

	works, err := e.works.PublishedByAuthor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading works for writer %d: %v", ErrStatsUnavailable, user.ID, err)
	}

	var points uint64
	for _, w := range works {
		points += uint64(w.ReadCount) * e.policy.PointsPerRead(w.Category)
	}
	amount := Pesewas(int64(points)) * e.pesewasPerPoint

	history, err := e.payouts.HistoryByWriter(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: loading payout history for writer %d: %v", ErrStatsUnavailable, user.ID, err)
	}
	if history == nil {
		history = []models.Payout{}
	}

	return &Snapshot{
		Points:        points,
		Amount:        amount,
		AmountDisplay: amount.Cedis(),
		History:       history,
	}, nil
}

// WorkAnalytics is the single-work analytics view: reads, impressions,
// the read-through rate and flat-policy points.
type WorkAnalytics struct {
	Reads           uint    `json:"reads"`
	Impressions     uint    `json:"impressions"`
	Points          uint64  `json:"points"`
	ReadThroughRate string  `json:"read_through_rate"`
	RateDefined     bool    `json:"rate_defined"`
	RateValue       float64 `json:"-"`
}

// AnalyzeWork computes the analytics view for one work using the flat
// per-read policy.
func AnalyzeWork(work *models.Work, policy FlatPerReadPolicy) WorkAnalytics {
	rate, ok := ReadThroughRate(work.ReadCount, work.ImpressionCount)
	return WorkAnalytics{
		Reads:           work.ReadCount,
		Impressions:     work.ImpressionCount,
		Points:          uint64(work.ReadCount) * policy.PointsPerRead(work.Category),
		ReadThroughRate: FormatRate(rate, ok),
		RateDefined:     ok,
		RateValue:       rate,
	}
}
