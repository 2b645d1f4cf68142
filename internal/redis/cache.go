package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"taxidash/internal/domain"
)

// DefaultViewCacheTTL bounds how long a computed dashboard view is served.
const DefaultViewCacheTTL = 60 * time.Second

// Key prefixes
const (
	viewCachePrefix = "cache:dashboard:"
	datasetVersion  = "dataset:version"
)

// ViewCache caches computed dashboard views in Redis.
// Keys embed the dataset version, so bumping the version after an import
// orphans every cached view at once.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewCache creates a new ViewCache.
func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	if ttl <= 0 {
		ttl = DefaultViewCacheTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

// Version returns the current dataset version (0 before the first import).
func (s *ViewCache) Version(ctx context.Context) (int64, error) {
	v, err := s.client.Get(ctx, datasetVersion).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}

// GetView retrieves the view cached for req under version. A miss returns nil, nil.
func (s *ViewCache) GetView(ctx context.Context, version int64, req domain.ViewRequest) (*domain.DashboardView, error) {
	data, err := s.client.Get(ctx, ViewKey(version, req)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var view domain.DashboardView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

// SetView stores a view under the version it was computed from.
// A view computed before an import lands under the old version and is never
// read again once the version moves on.
func (s *ViewCache) SetView(ctx context.Context, version int64, view *domain.DashboardView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, ViewKey(version, view.Request), data, s.ttl).Err()
}

// Invalidate bumps the dataset version.
func (s *ViewCache) Invalidate(ctx context.Context) error {
	return s.client.Incr(ctx, datasetVersion).Err()
}

// ViewKey returns the cache key of req under a dataset version.
func ViewKey(version int64, req domain.ViewRequest) string {
	return fmt.Sprintf("%sv%d:%s", viewCachePrefix, version, RequestHash(req))
}

// RequestHash fingerprints a view request.
func RequestHash(req domain.ViewRequest) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:12])
}
