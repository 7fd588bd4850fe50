package access

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/internal/pkg/featuregate"
)

type stubSubscriptions struct {
	active bool
	err    error
	calls  int
}

func (s *stubSubscriptions) HasActiveSubscription(ctx context.Context, userID uint) (bool, error) {
	s.calls++
	return s.active, s.err
}

type failingQuotaStore struct{}

func (failingQuotaStore) TryUnlock(ctx context.Context, writerID uint, workID string, limit int) (UnlockResult, error) {
	return UnlockExhausted, errors.New("store down")
}

func (failingQuotaStore) Unlocked(ctx context.Context, writerID uint) ([]string, error) {
	return nil, errors.New("store down")
}

func poem(uuid, body string) *models.Work {
	return &models.Work{UUID: uuid, Category: models.CategoryPoem, Body: body, Status: models.WorkStatusPublished}
}

func TestResolveMonetizationOffGrantsFullAccess(t *testing.T) {
	r := NewResolver(featuregate.FromValue(false), &stubSubscriptions{}, NewMemoryQuotaStore(), 0, 0)
	work := &models.Work{UUID: "w1", Category: models.CategoryNovel, Body: strings.Repeat("a", 5000)}

	for _, id := range []Identity{
		{},
		{UserID: 1, Role: models.ROLE_READER},
		{UserID: 2, Role: models.ROLE_WRITER},
		{UserID: 3, Role: models.ROLE_ADMIN},
	} {
		d := r.Resolve(context.Background(), id, work)
		assert.Equal(t, FullAccess, d.State)
		assert.Equal(t, work.Body, d.Body)
	}
}

func TestResolveActiveSubscriptionGrantsFullAccess(t *testing.T) {
	subs := &stubSubscriptions{active: true}
	r := NewResolver(featuregate.FromValue(true), subs, NewMemoryQuotaStore(), 0, 0)
	work := &models.Work{UUID: "w1", Category: models.CategoryNovel, Body: "full text"}

	d := r.Resolve(context.Background(), Identity{UserID: 7, Role: models.ROLE_READER}, work)
	assert.Equal(t, FullAccess, d.State)
	assert.Equal(t, "full text", d.Body)
}

func TestResolveReaderWithoutSubscriptionIsLocked(t *testing.T) {
	r := NewResolver(featuregate.FromValue(true), &stubSubscriptions{}, NewMemoryQuotaStore(), 0, 0)
	body := "<p>" + strings.Repeat("x", 2000) + "</p>"
	work := &models.Work{UUID: "w1", Category: models.CategoryNovel, Body: body}

	d := r.Resolve(context.Background(), Identity{UserID: 5, Role: models.ROLE_READER}, work)
	require.Equal(t, PreviewLocked, d.State)
	assert.True(t, d.Truncated)

	// 600 characters + ellipsis, and nothing of the body past that point
	runes := []rune(d.Body)
	assert.LessOrEqual(t, len(runes), PreviewCharLimit+1)
	assert.False(t, strings.Contains(d.Body, strings.Repeat("x", PreviewCharLimit+2)))
}

func TestResolveWriterFreePoemQuota(t *testing.T) {
	quota := NewMemoryQuotaStore()
	r := NewResolver(featuregate.FromValue(true), &stubSubscriptions{}, quota, 2, 0)
	writer := Identity{UserID: 9, Role: models.ROLE_WRITER}
	ctx := context.Background()

	first := poem("p1", "first poem")
	second := poem("p2", "second poem")
	third := poem("p3", "third poem")

	// First two distinct poems unlock in full
	d := r.Resolve(ctx, writer, first)
	assert.Equal(t, PreviewUnlockedByQuota, d.State)
	assert.Equal(t, "first poem", d.Body)

	d = r.Resolve(ctx, writer, second)
	assert.Equal(t, PreviewUnlockedByQuota, d.State)

	// Third distinct poem is locked
	d = r.Resolve(ctx, writer, third)
	assert.Equal(t, PreviewLocked, d.State)

	// Re-viewing held ids stays unlocked and never grows the quota
	for i := 0; i < 5; i++ {
		d = r.Resolve(ctx, writer, first)
		assert.Equal(t, PreviewUnlockedByQuota, d.State)
		d = r.Resolve(ctx, writer, second)
		assert.Equal(t, PreviewUnlockedByQuota, d.State)
	}
	ids, err := quota.Unlocked(ctx, writer.UserID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)
}

func TestResolveQuotaOnlyAppliesToWriterPoems(t *testing.T) {
	r := NewResolver(featuregate.FromValue(true), &stubSubscriptions{}, NewMemoryQuotaStore(), 2, 0)
	ctx := context.Background()

	// Writer viewing a novel: no quota path
	novel := &models.Work{UUID: "n1", Category: models.CategoryNovel, Body: "novel body"}
	d := r.Resolve(ctx, Identity{UserID: 9, Role: models.ROLE_WRITER}, novel)
	assert.Equal(t, PreviewLocked, d.State)

	// Reader viewing a poem: no quota path
	d = r.Resolve(ctx, Identity{UserID: 4, Role: models.ROLE_READER}, poem("p1", "poem body"))
	assert.Equal(t, PreviewLocked, d.State)
}

func TestResolveSubscriptionLookupFailureFailsClosed(t *testing.T) {
	subs := &stubSubscriptions{active: true, err: errors.New("network down")}
	r := NewResolver(featuregate.FromValue(true), subs, NewMemoryQuotaStore(), 0, 0)

	d := r.Resolve(context.Background(), Identity{UserID: 3, Role: models.ROLE_READER},
		&models.Work{UUID: "w1", Category: models.CategoryShortStory, Body: "text"})
	assert.Equal(t, PreviewLocked, d.State)
	assert.Equal(t, 1, subs.calls)
}

func TestResolveQuotaStoreFailureFallsBackToLocked(t *testing.T) {
	r := NewResolver(featuregate.FromValue(true), &stubSubscriptions{}, failingQuotaStore{}, 0, 0)

	d := r.Resolve(context.Background(), Identity{UserID: 9, Role: models.ROLE_WRITER}, poem("p1", "poem body"))
	assert.Equal(t, PreviewLocked, d.State)
}

func TestMemoryQuotaStoreConcurrentFirstViews(t *testing.T) {
	quota := NewMemoryQuotaStore()
	ctx := context.Background()

	// Many goroutines race first views of distinct poems; the set must
	// never exceed the limit.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = quota.TryUnlock(ctx, 1, string(rune('a'+n)), 2)
		}(i)
	}
	wg.Wait()

	ids, err := quota.Unlocked(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestMemoryQuotaStoreIdempotentUnlock(t *testing.T) {
	quota := NewMemoryQuotaStore()
	ctx := context.Background()

	res, err := quota.TryUnlock(ctx, 1, "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, UnlockAdded, res)

	res, err = quota.TryUnlock(ctx, 1, "p1", 2)
	require.NoError(t, err)
	assert.Equal(t, UnlockAlreadyHeld, res)
}
