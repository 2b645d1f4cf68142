package engine

import (
	"strconv"
	"strings"

	"taxidash/internal/domain"
)

// Search returns the trips whose pickup time, fare, distance or payment type
// contains term, ignoring case. Surrounding spaces are part of the term.
// An empty term matches every trip.
func Search(trips []domain.TripRecord, term string) []domain.TripRecord {
	needle := strings.ToLower(term)

	out := make([]domain.TripRecord, 0, len(trips))
	for _, trip := range trips {
		if needle == "" || searchable(trip, needle) {
			out = append(out, trip)
		}
	}
	return out
}

func searchable(trip domain.TripRecord, needle string) bool {
	fields := [...]string{
		trip.PickupTime.Format(domain.TimestampLayout),
		formatNumber(trip.FareAmount),
		formatNumber(trip.TripDistance),
		string(trip.PaymentType),
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// formatNumber renders a float in its shortest decimal form (12.5, not 12.50).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
