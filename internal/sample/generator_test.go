package sample

import (
	"reflect"
	"testing"
	"time"

	"taxidash/internal/domain"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(50, 42, time.UTC)
	b := Generate(50, 42, time.UTC)

	if !reflect.DeepEqual(a, b) {
		t.Error("expected the same seed to yield the same trips")
	}
	if reflect.DeepEqual(a, Generate(50, 43, time.UTC)) {
		t.Error("expected different seeds to yield different trips")
	}
}

func TestGenerate_Ranges(t *testing.T) {
	trips := Generate(500, 7, time.UTC)
	if len(trips) != 500 {
		t.Fatalf("expected 500 trips, got %d", len(trips))
	}

	seen := make(map[int64]bool)
	for _, trip := range trips {
		if seen[trip.ID] {
			t.Fatalf("duplicate id %d", trip.ID)
		}
		seen[trip.ID] = true

		if trip.PickupTime.Year() != 2023 || trip.PickupTime.Month() != time.May {
			t.Errorf("trip %d: pickup outside May 2023: %v", trip.ID, trip.PickupTime)
		}
		minutes, ok := trip.DurationMinutes()
		if !ok || minutes < 5 || minutes > 64 {
			t.Errorf("trip %d: duration %v out of range", trip.ID, minutes)
		}
		if trip.TripDistance < 0.5 || trip.TripDistance > 20.5 {
			t.Errorf("trip %d: distance %v out of range", trip.ID, trip.TripDistance)
		}
		if trip.FareAmount < trip.TripDistance*2.5-0.01 || trip.FareAmount > trip.TripDistance*2.5+10.01 {
			t.Errorf("trip %d: fare %v does not follow distance %v", trip.ID, trip.FareAmount, trip.TripDistance)
		}
		if !trip.PaymentType.IsKnown() {
			t.Errorf("trip %d: unexpected payment type %q", trip.ID, trip.PaymentType)
		}
	}
}

func TestSeedTrips(t *testing.T) {
	trips := SeedTrips(nil)

	if len(trips) != 3 {
		t.Fatalf("expected 3 trips, got %d", len(trips))
	}
	if trips[1].PaymentType != domain.PaymentTypeCash {
		t.Errorf("expected the second trip to be cash, got %q", trips[1].PaymentType)
	}
	if trips[2].PickupHour() != 18 {
		t.Errorf("expected the third pickup at 18h, got %d", trips[2].PickupHour())
	}
}
