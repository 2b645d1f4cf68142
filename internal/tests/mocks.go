package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"taxidash/internal/domain"
	"taxidash/internal/redis"
	"taxidash/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK TRIP REPOSITORY
// ──────────────────────────────────────────────

// MockTripRepository is a mock implementation of TripRepository.
type MockTripRepository struct {
	mu    sync.RWMutex
	trips map[int64]domain.TripRecord

	// Counters for verification
	GetAllCallCount      int32
	CreateBatchCallCount int32

	// Error injection
	GetAllError      error
	CreateBatchError error
}

// NewMockTripRepository creates a new mock trip repository.
func NewMockTripRepository(trips ...domain.TripRecord) *MockTripRepository {
	m := &MockTripRepository{trips: make(map[int64]domain.TripRecord)}
	for _, trip := range trips {
		m.trips[trip.ID] = trip
	}
	return m
}

func (m *MockTripRepository) GetAll(ctx context.Context) ([]domain.TripRecord, error) {
	atomic.AddInt32(&m.GetAllCallCount, 1)
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.TripRecord, 0, len(m.trips))
	for _, trip := range m.trips {
		out = append(out, trip)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockTripRepository) GetByID(ctx context.Context, id int64) (*domain.TripRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	trip, ok := m.trips[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &trip, nil
}

func (m *MockTripRepository) CreateBatch(ctx context.Context, trips []domain.TripRecord) (int, error) {
	atomic.AddInt32(&m.CreateBatchCallCount, 1)
	if m.CreateBatchError != nil {
		return 0, m.CreateBatchError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := 0
	for _, trip := range trips {
		if trip.ID == 0 {
			trip.ID = int64(len(m.trips) + 1)
			for {
				if _, taken := m.trips[trip.ID]; !taken {
					break
				}
				trip.ID++
			}
		}
		if _, exists := m.trips[trip.ID]; exists {
			continue
		}
		m.trips[trip.ID] = trip
		stored++
	}
	return stored, nil
}

func (m *MockTripRepository) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.trips), nil
}

// ──────────────────────────────────────────────
// MOCK VIEW CACHE
// ──────────────────────────────────────────────

// MockViewCache is an in-memory implementation of ViewCacheInterface.
// Like the Redis cache it keys views by dataset version, and Invalidate
// bumps the version without deleting older entries.
type MockViewCache struct {
	mu      sync.Mutex
	version int64
	views   map[viewKey]domain.DashboardView

	// Counters for verification
	HitCount        int32
	MissCount       int32
	InvalidateCount int32

	// Error injection
	VersionError error
	GetError     error
	SetError     error

	// OnMiss runs after a cache miss, outside the lock.
	OnMiss func()
}

type viewKey struct {
	version int64
	req     domain.ViewRequest
}

// NewMockViewCache creates a new mock view cache.
func NewMockViewCache() *MockViewCache {
	return &MockViewCache{views: make(map[viewKey]domain.DashboardView)}
}

func (m *MockViewCache) Version(ctx context.Context) (int64, error) {
	if m.VersionError != nil {
		return 0, m.VersionError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version, nil
}

func (m *MockViewCache) GetView(ctx context.Context, version int64, req domain.ViewRequest) (*domain.DashboardView, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	view, ok := m.views[viewKey{version: version, req: req}]
	m.mu.Unlock()

	if !ok {
		atomic.AddInt32(&m.MissCount, 1)
		if m.OnMiss != nil {
			m.OnMiss()
		}
		return nil, nil
	}
	atomic.AddInt32(&m.HitCount, 1)
	return &view, nil
}

func (m *MockViewCache) SetView(ctx context.Context, version int64, view *domain.DashboardView) error {
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[viewKey{version: version, req: view.Request}] = *view
	return nil
}

func (m *MockViewCache) Invalidate(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version++
	return nil
}

// Size returns the number of views cached under the current version.
func (m *MockViewCache) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for key := range m.views {
		if key.version == m.version {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu     sync.Mutex
	locked bool

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{}
}

// Hold marks the lock as taken by someone else.
func (m *MockLockStore) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = true
}

// IsLocked reports whether the lock is currently held.
func (m *MockLockStore) IsLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locked
}

func (m *MockLockStore) AcquireImportLock(ctx context.Context, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locked {
		return false, nil
	}
	m.locked = true
	return true, nil
}

func (m *MockLockStore) ReleaseImportLock(ctx context.Context) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked = false
	return nil
}

// Ensure mocks implement interfaces.
var (
	_ repository.TripRepository = (*MockTripRepository)(nil)
	_ redis.ViewCacheInterface  = (*MockViewCache)(nil)
	_ redis.LockStoreInterface  = (*MockLockStore)(nil)
)
