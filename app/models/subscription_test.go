package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionHasActiveAccess(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(10 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	active := &Subscription{Status: SubscriptionStatusActive, CurrentPeriodEnd: &future}
	assert.True(t, active.HasActiveAccess(now))

	lapsed := &Subscription{Status: SubscriptionStatusActive, CurrentPeriodEnd: &past}
	assert.False(t, lapsed.HasActiveAccess(now))

	canceled := &Subscription{Status: SubscriptionStatusCanceled, CurrentPeriodEnd: &future}
	assert.False(t, canceled.HasActiveAccess(now))

	expired := &Subscription{Status: SubscriptionStatusExpired, CurrentPeriodEnd: &future}
	assert.False(t, expired.HasActiveAccess(now))

	noPeriodEnd := &Subscription{Status: SubscriptionStatusActive}
	assert.False(t, noPeriodEnd.HasActiveAccess(now))

	var nilSub *Subscription
	assert.False(t, nilSub.HasActiveAccess(now))
}

func TestWorkCategoryAndStatus(t *testing.T) {
	assert.True(t, IsValidCategory(CategoryPoem))
	assert.True(t, IsValidCategory(CategoryShortStory))
	assert.True(t, IsValidCategory(CategoryNovel))
	assert.False(t, IsValidCategory("essay"))

	w := &Work{Status: WorkStatusPublished}
	assert.True(t, w.IsPublished())
	w.Status = WorkStatusPending
	assert.False(t, w.IsPublished())
}
