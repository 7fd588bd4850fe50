package earnings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/internal/pkg/featuregate"
)

type stubWorks struct {
	works []models.Work
	err   error
}

func (s stubWorks) PublishedByAuthor(ctx context.Context, authorID uint) ([]models.Work, error) {
	return s.works, s.err
}

type stubPayouts struct {
	history []models.Payout
	err     error
}

func (s stubPayouts) HistoryByWriter(ctx context.Context, writerID uint) ([]models.Payout, error) {
	return s.history, s.err
}

func writer() *models.User {
	return &models.User{ID: 1, Role: models.ROLE_WRITER}
}

func TestEstimateCategoryWeightedRoundTrip(t *testing.T) {
	// One short story read 100 times, one poem read 50 times:
	// 100*3 + 50*1 = 350 points -> GHS 17.50 at 5 pesewas per point.
	works := stubWorks{works: []models.Work{
		{Category: models.CategoryShortStory, ReadCount: 100},
		{Category: models.CategoryPoem, ReadCount: 50},
	}}
	e := NewEstimator(featuregate.FromValue(true), works, stubPayouts{}, nil, 0)

	snap, err := e.Estimate(context.Background(), writer())
	require.NoError(t, err)
	assert.Equal(t, uint64(350), snap.Points)
	assert.Equal(t, Pesewas(1750), snap.Amount)
	assert.Equal(t, "17.50", snap.AmountDisplay)
}

func TestEstimatePointsMonotonicInReads(t *testing.T) {
	policy := NewCategoryWeightedPolicy()
	e := func(reads uint) uint64 {
		est := NewEstimator(featuregate.FromValue(true),
			stubWorks{works: []models.Work{{Category: models.CategoryNovel, ReadCount: reads}}},
			stubPayouts{}, policy, 0)
		snap, err := est.Estimate(context.Background(), writer())
		require.NoError(t, err)
		return snap.Points
	}

	for _, n := range []uint{0, 1, 10, 999} {
		assert.Greater(t, e(n+1), e(n))
	}
}

func TestEstimateGateOffReturnsZeroedSnapshot(t *testing.T) {
	works := stubWorks{works: []models.Work{{Category: models.CategoryNovel, ReadCount: 1000}}}
	e := NewEstimator(featuregate.FromValue(false), works, stubPayouts{}, nil, 0)

	snap, err := e.Estimate(context.Background(), writer())
	require.NoError(t, err)
	assert.Zero(t, snap.Points)
	assert.Zero(t, snap.Amount)
	assert.Equal(t, "0.00", snap.AmountDisplay)
	assert.NotNil(t, snap.History)
	assert.Empty(t, snap.History)
}

func TestEstimateNonWriterIsPermissionError(t *testing.T) {
	e := NewEstimator(featuregate.FromValue(true), stubWorks{}, stubPayouts{}, nil, 0)

	_, err := e.Estimate(context.Background(), &models.User{ID: 2, Role: models.ROLE_READER})
	assert.ErrorIs(t, err, ErrNotWriter)
	assert.NotErrorIs(t, err, ErrStatsUnavailable)

	_, err = e.Estimate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotWriter)
}

func TestEstimateLoadFailureIsStatsUnavailable(t *testing.T) {
	e := NewEstimator(featuregate.FromValue(true),
		stubWorks{err: errors.New("db down")}, stubPayouts{}, nil, 0)

	_, err := e.Estimate(context.Background(), writer())
	assert.ErrorIs(t, err, ErrStatsUnavailable)

	e = NewEstimator(featuregate.FromValue(true),
		stubWorks{}, stubPayouts{err: errors.New("db down")}, nil, 0)
	_, err = e.Estimate(context.Background(), writer())
	assert.ErrorIs(t, err, ErrStatsUnavailable)
}

func TestEstimateZeroWorksIsValidZero(t *testing.T) {
	e := NewEstimator(featuregate.FromValue(true), stubWorks{}, stubPayouts{}, nil, 0)

	snap, err := e.Estimate(context.Background(), writer())
	require.NoError(t, err)
	assert.Zero(t, snap.Points)
	assert.Equal(t, "0.00", snap.AmountDisplay)
}

func TestPolicies(t *testing.T) {
	weighted := NewCategoryWeightedPolicy()
	assert.Equal(t, uint64(1), weighted.PointsPerRead(models.CategoryPoem))
	assert.Equal(t, uint64(3), weighted.PointsPerRead(models.CategoryShortStory))
	assert.Equal(t, uint64(5), weighted.PointsPerRead(models.CategoryNovel))
	assert.Equal(t, uint64(0), weighted.PointsPerRead("unknown"))

	flat := NewFlatPerReadPolicy()
	for _, cat := range []string{models.CategoryPoem, models.CategoryShortStory, models.CategoryNovel} {
		assert.Equal(t, uint64(1), flat.PointsPerRead(cat))
	}
}

func TestReadThroughRate(t *testing.T) {
	rate, ok := ReadThroughRate(25, 100)
	assert.True(t, ok)
	assert.InDelta(t, 0.25, rate, 1e-9)
	assert.Equal(t, "25.0%", FormatRate(rate, ok))

	rate, ok = ReadThroughRate(10, 0)
	assert.False(t, ok)
	assert.Equal(t, "—", FormatRate(rate, ok))
}

func TestAnalyzeWorkUsesFlatPolicy(t *testing.T) {
	work := &models.Work{Category: models.CategoryNovel, ReadCount: 40, ImpressionCount: 80}
	a := AnalyzeWork(work, NewFlatPerReadPolicy())
	assert.Equal(t, uint64(40), a.Points) // flat, not novel-weighted
	assert.Equal(t, "50.0%", a.ReadThroughRate)

	noImpressions := &models.Work{Category: models.CategoryPoem, ReadCount: 3}
	a = AnalyzeWork(noImpressions, NewFlatPerReadPolicy())
	assert.False(t, a.RateDefined)
	assert.Equal(t, "—", a.ReadThroughRate)
}

func TestPesewasCedis(t *testing.T) {
	assert.Equal(t, "0.00", Pesewas(0).Cedis())
	assert.Equal(t, "0.05", Pesewas(5).Cedis())
	assert.Equal(t, "17.50", Pesewas(1750).Cedis())
	assert.Equal(t, "-1.25", Pesewas(-125).Cedis())
}
