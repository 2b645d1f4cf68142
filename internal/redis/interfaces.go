package redis

import (
	"context"
	"time"

	"taxidash/internal/domain"
)

// ViewCacheInterface defines the interface for dashboard view caching.
type ViewCacheInterface interface {
	Version(ctx context.Context) (int64, error)
	GetView(ctx context.Context, version int64, req domain.ViewRequest) (*domain.DashboardView, error)
	SetView(ctx context.Context, version int64, view *domain.DashboardView) error
	Invalidate(ctx context.Context) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireImportLock(ctx context.Context, ttl time.Duration) (bool, error)
	ReleaseImportLock(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var (
	_ ViewCacheInterface = (*ViewCache)(nil)
	_ LockStoreInterface = (*LockStore)(nil)
)
