package engine

import (
	"testing"

	"taxidash/internal/domain"
)

// Five trips where trip 3 charges far more per mile than the rest.
func farePerMileTrips(t *testing.T) []domain.TripRecord {
	return []domain.TripRecord{
		newTrip(t, 1, "2024-01-01 08:00:00", 30, 10.5, 25.0, domain.PaymentTypeCredit),
		newTrip(t, 2, "2024-01-01 09:15:00", 30, 8.2, 22.0, domain.PaymentTypeCredit),
		newTrip(t, 3, "2024-01-01 10:00:00", 5, 1.2, 18.0, domain.PaymentTypeCash),
		newTrip(t, 4, "2024-01-01 11:00:00", 20, 6.0, 14.0, domain.PaymentTypeCash),
		newTrip(t, 5, "2024-01-01 12:00:00", 35, 12.0, 30.0, domain.PaymentTypeCredit),
	}
}

func TestFarePerMileOutliers(t *testing.T) {
	got := FarePerMileOutliers(farePerMileTrips(t), 1.5)

	if len(got) != 1 {
		t.Fatalf("expected 1 outlier, got %d", len(got))
	}
	if got[0].Trip.ID != 3 {
		t.Errorf("expected trip 3, got %d", got[0].Trip.ID)
	}
	if !approx(got[0].FarePerMile, 15) {
		t.Errorf("expected fare per mile 15, got %f", got[0].FarePerMile)
	}
	if got[0].ZScore <= 1.5 {
		t.Errorf("expected z-score above 1.5, got %f", got[0].ZScore)
	}
}

func TestFarePerMileOutliers_DefaultMultiplierIsStrict(t *testing.T) {
	// With five samples no point can be three population deviations away.
	got := FarePerMileOutliers(farePerMileTrips(t), 0)

	if len(got) != 0 {
		t.Errorf("expected no outliers at 3 sigma, got %d", len(got))
	}
}

func TestFarePerMileOutliers_IgnoresZeroDistance(t *testing.T) {
	trips := append(farePerMileTrips(t), newTrip(t, 6, "2024-01-01 13:00:00", 5, 0, 50, domain.PaymentTypeCash))

	for _, o := range FarePerMileOutliers(trips, 1.5) {
		if o.Trip.ID == 6 {
			t.Error("zero-distance trip must not be reported")
		}
	}
}

func TestFarePerMileOutliers_Empty(t *testing.T) {
	got := FarePerMileOutliers(nil, 3)

	if got == nil || len(got) != 0 {
		t.Errorf("expected a non-nil empty slice, got %v", got)
	}
}
