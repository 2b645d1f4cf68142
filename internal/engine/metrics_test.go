package engine

import (
	"math"
	"testing"
	"time"

	"taxidash/internal/domain"
)

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil)

	want := domain.Metrics{}
	if got != want {
		t.Errorf("expected zero metrics, got %+v", got)
	}
}

func TestAggregate_Scenario(t *testing.T) {
	got := Aggregate(seedTrips())

	if got.Count != 3 {
		t.Errorf("expected count 3, got %d", got.Count)
	}
	if rounded := math.Round(got.AvgFare*100) / 100; rounded != 18.52 {
		t.Errorf("expected avg fare 18.52, got %.4f", got.AvgFare)
	}
	if !approx(got.AvgDistance, 12.5/3) {
		t.Errorf("expected avg distance %.4f, got %.4f", 12.5/3, got.AvgDistance)
	}
	if !approx(got.AvgDurationMinutes, 70.0/3) {
		t.Errorf("expected avg duration %.4f, got %.4f", 70.0/3, got.AvgDurationMinutes)
	}
}

func TestAggregate_UntimedTripsSkipDurationOnly(t *testing.T) {
	trips := []domain.TripRecord{
		newTrip(t, 1, "2023-05-01 10:00:00", 20, 2, 10, domain.PaymentTypeCash),
		newTrip(t, 2, "2023-05-01 11:00:00", 40, 4, 20, domain.PaymentTypeCash),
	}
	untimed := newTrip(t, 3, "2023-05-01 12:00:00", 0, 6, 30, domain.PaymentTypeCash)
	untimed.DropoffTime = time.Time{}
	trips = append(trips, untimed)

	got := Aggregate(trips)

	if got.Count != 3 {
		t.Errorf("expected count 3, got %d", got.Count)
	}
	if !approx(got.AvgFare, 20) {
		t.Errorf("expected avg fare 20, got %f", got.AvgFare)
	}
	if !approx(got.AvgDurationMinutes, 30) {
		t.Errorf("expected avg duration 30 over the timed trips, got %f", got.AvgDurationMinutes)
	}
}

func TestAggregate_InvertedTimestampsCountNegative(t *testing.T) {
	trips := []domain.TripRecord{
		newTrip(t, 1, "2023-05-01 10:00:00", 30, 2, 10, domain.PaymentTypeCash),
		newTrip(t, 2, "2023-05-01 11:00:00", -10, 2, 10, domain.PaymentTypeCash),
	}

	got := Aggregate(trips)

	if !approx(got.AvgDurationMinutes, 10) {
		t.Errorf("expected avg duration 10, got %f", got.AvgDurationMinutes)
	}
}
