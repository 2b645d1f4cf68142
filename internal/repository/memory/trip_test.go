package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"taxidash/internal/domain"
	"taxidash/internal/repository"
)

func TestTripRepository_CreateBatch(t *testing.T) {
	base := time.Date(2023, 5, 15, 8, 0, 0, 0, time.UTC)
	repo := NewTripRepository([]domain.TripRecord{
		{ID: 5, PickupTime: base.Add(2 * time.Hour)},
		{ID: 2, PickupTime: base},
	})

	stored, err := repo.CreateBatch(context.Background(), []domain.TripRecord{
		{ID: 2, PickupTime: base},             // duplicate
		{PickupTime: base.Add(time.Hour)},     // assigned 6
		{PickupTime: base.Add(3 * time.Hour)}, // assigned 7
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != 2 {
		t.Errorf("expected 2 stored, got %d", stored)
	}

	all, _ := repo.GetAll(context.Background())
	want := []int64{2, 6, 5, 7}
	if len(all) != len(want) {
		t.Fatalf("expected %d trips, got %d", len(want), len(all))
	}
	for i, id := range want {
		if all[i].ID != id {
			t.Errorf("position %d: expected trip %d, got %d", i, id, all[i].ID)
		}
	}

	if count, _ := repo.Count(context.Background()); count != 4 {
		t.Errorf("expected count 4, got %d", count)
	}
}

func TestTripRepository_ReturnsCopies(t *testing.T) {
	repo := NewTripRepository([]domain.TripRecord{{ID: 1, FareAmount: 10}})

	all, _ := repo.GetAll(context.Background())
	all[0].FareAmount = 99

	trip, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.FareAmount != 10 {
		t.Errorf("expected the stored trip to be unchanged, got %v", trip.FareAmount)
	}

	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
