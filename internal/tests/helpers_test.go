package tests

import (
	"math"
	"time"

	"taxidash/internal/domain"
	"taxidash/internal/sample"
)

// seedRepository returns a mock repository holding the three sample trips.
func seedRepository() *MockTripRepository {
	return NewMockTripRepository(sample.SeedTrips(time.UTC)...)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func pageIDs(page domain.Page) []int64 {
	ids := make([]int64, 0, len(page.Items))
	for _, trip := range page.Items {
		ids = append(ids, trip.ID)
	}
	return ids
}
