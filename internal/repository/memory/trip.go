// Package memory holds an in-process trip store used for the sample dataset.
package memory

import (
	"context"
	"sort"
	"sync"

	"taxidash/internal/domain"
	"taxidash/internal/repository"
)

// TripRepository is an in-memory implementation of repository.TripRepository.
type TripRepository struct {
	mu     sync.RWMutex
	trips  []domain.TripRecord
	byID   map[int64]int
	nextID int64
}

// NewTripRepository creates a store pre-loaded with trips.
func NewTripRepository(trips []domain.TripRecord) *TripRepository {
	r := &TripRepository{byID: make(map[int64]int)}
	_, _ = r.CreateBatch(context.Background(), trips)
	return r
}

// GetAll retrieves every trip, ordered by pickup time.
func (r *TripRepository) GetAll(ctx context.Context) ([]domain.TripRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.TripRecord, len(r.trips))
	copy(out, r.trips)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PickupTime.Before(out[j].PickupTime)
	})
	return out, nil
}

// GetByID retrieves a trip by ID.
func (r *TripRepository) GetByID(ctx context.Context, id int64) (*domain.TripRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	trip := r.trips[idx]
	return &trip, nil
}

// CreateBatch stores trips, skipping IDs that already exist.
func (r *TripRepository) CreateBatch(ctx context.Context, trips []domain.TripRecord) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := 0
	for _, trip := range trips {
		if trip.ID == 0 {
			trip.ID = r.nextID + 1
		}
		if _, exists := r.byID[trip.ID]; exists {
			continue
		}
		r.byID[trip.ID] = len(r.trips)
		r.trips = append(r.trips, trip)
		if trip.ID > r.nextID {
			r.nextID = trip.ID
		}
		stored++
	}
	return stored, nil
}

// Count returns the number of stored trips.
func (r *TripRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trips), nil
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
