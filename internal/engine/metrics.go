package engine

import "taxidash/internal/domain"

// Aggregate computes the summary metrics of trips.
//
// All averages are 0 for an empty collection. Trips without both timestamps
// are left out of the duration average but still counted everywhere else.
func Aggregate(trips []domain.TripRecord) domain.Metrics {
	m := domain.Metrics{Count: len(trips)}
	if m.Count == 0 {
		return m
	}

	var fareSum, distanceSum, durationSum float64
	timed := 0
	for _, trip := range trips {
		fareSum += trip.FareAmount
		distanceSum += trip.TripDistance
		if minutes, ok := trip.DurationMinutes(); ok {
			durationSum += minutes
			timed++
		}
	}

	m.AvgFare = fareSum / float64(m.Count)
	m.AvgDistance = distanceSum / float64(m.Count)
	if timed > 0 {
		m.AvgDurationMinutes = durationSum / float64(timed)
	}

	return m
}
