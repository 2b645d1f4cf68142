package engine

import (
	"math"
	"testing"
	"time"

	"taxidash/internal/domain"
	"taxidash/internal/sample"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation(domain.TimestampLayout, s, time.UTC)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", s, err)
	}
	return ts
}

func newTrip(t *testing.T, id int64, pickup string, minutes int, distance, fare float64, payment domain.PaymentType) domain.TripRecord {
	t.Helper()
	p := mustTime(t, pickup)
	return domain.TripRecord{
		ID:           id,
		PickupTime:   p,
		DropoffTime:  p.Add(time.Duration(minutes) * time.Minute),
		TripDistance: distance,
		FareAmount:   fare,
		TipAmount:    math.Round(fare*20) / 100,
		TotalAmount:  fare + math.Round(fare*20)/100,
		PaymentType:  payment,
	}
}

func seedTrips() []domain.TripRecord {
	return sample.SeedTrips(time.UTC)
}

func ids(trips []domain.TripRecord) []int64 {
	out := make([]int64, 0, len(trips))
	for _, t := range trips {
		out = append(out, t.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
