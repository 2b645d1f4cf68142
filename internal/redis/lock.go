package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultImportLockTTL bounds how long one import may hold the lock.
const DefaultImportLockTTL = 2 * time.Minute

const importLockKey = "lock:import"

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireImportLock attempts to take the import lock.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireImportLock(ctx context.Context, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = DefaultImportLockTTL
	}

	ok, err := s.client.SetNX(ctx, importLockKey, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseImportLock releases the import lock.
func (s *LockStore) ReleaseImportLock(ctx context.Context) error {
	return s.client.Del(ctx, importLockKey).Err()
}
