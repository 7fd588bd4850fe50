package access

import (
	"context"
	"log"

	"github.com/PennitApp/Pennit/app/models"
	"github.com/PennitApp/Pennit/internal/pkg/featuregate"
)

// State is the outcome of resolving one work view.
type State string

const (
	// FullAccess renders the complete body.
	FullAccess State = "FULL_ACCESS"
	// PreviewLocked renders a truncated plain-text preview behind the paywall.
	PreviewLocked State = "PREVIEW_LOCKED"
	// PreviewUnlockedByQuota is full access granted through the writer
	// free-poem quota rather than a subscription.
	PreviewUnlockedByQuota State = "PREVIEW_UNLOCKED_BY_QUOTA"
)

// DefaultWriterFreePoemLimit is the number of distinct poems a
// non-subscribed writer may read in full.
const DefaultWriterFreePoemLimit = 2

// Identity is the request identity the resolver decides for. Anonymous
// viewers carry a zero UserID and an empty role.
type Identity struct {
	UserID uint
	Role   string
}

// Decision carries the resolved state and the body text the viewer may
// see. For locked decisions Body holds only the preview; the remainder of
// the work never leaves the resolver.
type Decision struct {
	State     State
	Body      string
	Truncated bool
}

// IsFull reports whether the viewer gets the complete body.
func (d Decision) IsFull() bool {
	return d.State == FullAccess || d.State == PreviewUnlockedByQuota
}

// SubscriptionChecker reports whether a user currently holds paid access.
type SubscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, userID uint) (bool, error)
}

// Resolver decides whether a viewer sees a work's full body or a preview,
// charging the writer free-poem quota where the rules allow it.
type Resolver struct {
	cfg           featuregate.Config
	subscriptions SubscriptionChecker
	quota         QuotaStore
	freePoemLimit int
	previewLimit  int
}

// NewResolver wires a resolver from its collaborators. A freePoemLimit or
// previewLimit of zero falls back to the defaults.
func NewResolver(cfg featuregate.Config, subs SubscriptionChecker, quota QuotaStore, freePoemLimit, previewLimit int) *Resolver {
	if freePoemLimit <= 0 {
		freePoemLimit = DefaultWriterFreePoemLimit
	}
	if previewLimit <= 0 {
		previewLimit = PreviewCharLimit
	}
	return &Resolver{
		cfg:           cfg,
		subscriptions: subs,
		quota:         quota,
		freePoemLimit: freePoemLimit,
		previewLimit:  previewLimit,
	}
}

// Resolve evaluates the access rules in order, first match wins:
//
//  1. monetization off            -> full access
//  2. active subscription         -> full access
//  3. writer viewing a poem       -> free quota (atomic check-and-add)
//  4. otherwise                   -> locked preview
//
// Resolve never fails: a subscription lookup error counts as "no
// subscription" and a quota store error counts as "quota unavailable",
// both degrading to the more restrictive state.
func (r *Resolver) Resolve(ctx context.Context, id Identity, work *models.Work) Decision {
	if !r.cfg.MonetizationEnabled {
		return Decision{State: FullAccess, Body: work.Body}
	}

	if id.UserID != 0 && r.subscriptions != nil {
		active, err := r.subscriptions.HasActiveSubscription(ctx, id.UserID)
		if err != nil {
			// Fail to the restrictive state, but keep serving the request
			log.Printf("access: subscription lookup failed for user %d: %v", id.UserID, err)
		} else if active {
			return Decision{State: FullAccess, Body: work.Body}
		}
	}

	if id.Role == models.ROLE_WRITER && work.Category == models.CategoryPoem {
		result, err := r.quota.TryUnlock(ctx, id.UserID, work.UUID, r.freePoemLimit)
		if err != nil {
			// A failed quota write must not hand out unmetered access
			log.Printf("access: free-poem quota store failed for writer %d: %v", id.UserID, err)
			return r.locked(work)
		}
		switch result {
		case UnlockAdded, UnlockAlreadyHeld:
			return Decision{State: PreviewUnlockedByQuota, Body: work.Body}
		}
	}

	return r.locked(work)
}

func (r *Resolver) locked(work *models.Work) Decision {
	preview, truncated := Preview(work.Body, r.previewLimit)
	return Decision{State: PreviewLocked, Body: preview, Truncated: truncated}
}
