package repository

import (
	"context"

	"taxidash/internal/domain"
)

// TripRepository defines the persistence operations for trip records.
type TripRepository interface {
	// GetAll retrieves every trip, ordered by pickup time.
	GetAll(ctx context.Context) ([]domain.TripRecord, error)

	// GetByID retrieves a trip by ID.
	GetByID(ctx context.Context, id int64) (*domain.TripRecord, error)

	// CreateBatch persists trips and returns how many were stored.
	// Trips whose ID already exists are skipped, so replays are harmless.
	// A zero ID asks the store to assign one.
	CreateBatch(ctx context.Context, trips []domain.TripRecord) (int, error)

	// Count returns the number of stored trips.
	Count(ctx context.Context) (int, error)
}
