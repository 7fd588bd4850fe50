package access

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// UnlockResult is the outcome of one atomic quota attempt.
type UnlockResult int

const (
	// UnlockAdded means the work id was newly charged against the quota.
	UnlockAdded UnlockResult = iota
	// UnlockAlreadyHeld means the id was unlocked earlier; nothing consumed.
	UnlockAlreadyHeld
	// UnlockExhausted means the quota is full and the id is not in it.
	UnlockExhausted
)

// QuotaStore records which work ids a writer has unlocked for free. The
// check-and-add must be atomic: concurrent first views of different poems
// must never push the set past the limit, and re-unlocking a held id must
// never consume quota.
type QuotaStore interface {
	TryUnlock(ctx context.Context, writerID uint, workID string, limit int) (UnlockResult, error)
	Unlocked(ctx context.Context, writerID uint) ([]string, error)
}

const quotaKeyFormat = "access:freepoems:%d"

// tryUnlockScript performs the membership check, size check and add as one
// Redis-side operation. Ids are never evicted, so no TTL is set.
var tryUnlockScript = redis.NewScript(`
if redis.call('SISMEMBER', KEYS[1], ARGV[1]) == 1 then
	return 'held'
end
if redis.call('SCARD', KEYS[1]) < tonumber(ARGV[2]) then
	redis.call('SADD', KEYS[1], ARGV[1])
	return 'added'
end
return 'full'
`)

// RedisQuotaStore keeps the per-writer unlock sets in Redis.
type RedisQuotaStore struct {
	client *redis.Client
}

// NewRedisQuotaStore creates a quota store on the given Redis client.
func NewRedisQuotaStore(client *redis.Client) *RedisQuotaStore {
	return &RedisQuotaStore{client: client}
}

func (s *RedisQuotaStore) TryUnlock(ctx context.Context, writerID uint, workID string, limit int) (UnlockResult, error) {
	key := fmt.Sprintf(quotaKeyFormat, writerID)
	res, err := tryUnlockScript.Run(ctx, s.client, []string{key}, workID, limit).Text()
	if err != nil {
		return UnlockExhausted, err
	}
	switch res {
	case "added":
		return UnlockAdded, nil
	case "held":
		return UnlockAlreadyHeld, nil
	default:
		return UnlockExhausted, nil
	}
}

func (s *RedisQuotaStore) Unlocked(ctx context.Context, writerID uint) ([]string, error) {
	key := fmt.Sprintf(quotaKeyFormat, writerID)
	return s.client.SMembers(ctx, key).Result()
}

// MemoryQuotaStore is an in-process quota store backing the resolver in
// tests; production wiring always uses RedisQuotaStore.
type MemoryQuotaStore struct {
	mu   sync.Mutex
	sets map[uint]map[string]struct{}
}

// NewMemoryQuotaStore creates an empty in-memory quota store.
func NewMemoryQuotaStore() *MemoryQuotaStore {
	return &MemoryQuotaStore{sets: make(map[uint]map[string]struct{})}
}

func (s *MemoryQuotaStore) TryUnlock(ctx context.Context, writerID uint, workID string, limit int) (UnlockResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.sets[writerID]
	if set == nil {
		set = make(map[string]struct{})
		s.sets[writerID] = set
	}
	if _, ok := set[workID]; ok {
		return UnlockAlreadyHeld, nil
	}
	if len(set) < limit {
		set[workID] = struct{}{}
		return UnlockAdded, nil
	}
	return UnlockExhausted, nil
}

func (s *MemoryQuotaStore) Unlocked(ctx context.Context, writerID uint) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.sets[writerID]))
	for id := range s.sets[writerID] {
		ids = append(ids, id)
	}
	return ids, nil
}
