// Package engine computes the dashboard's derived views from a trip collection.
//
// Every function here is pure: inputs are never modified and results are
// freshly allocated, so callers may share the base collection freely.
package engine

import "taxidash/internal/domain"

// Filter returns the trips matching the criteria, in their original order.
func Filter(trips []domain.TripRecord, criteria domain.FilterCriteria) []domain.TripRecord {
	out := make([]domain.TripRecord, 0, len(trips))
	for _, trip := range trips {
		if Matches(trip, criteria) {
			out = append(out, trip)
		}
	}
	return out
}

// Matches reports whether a single trip passes the criteria.
// Dates are compared on the zero-padded YYYY-MM-DD pickup date, so a plain
// string comparison orders them correctly.
func Matches(trip domain.TripRecord, criteria domain.FilterCriteria) bool {
	if trip.TripDistance > criteria.MaxDistance {
		return false
	}

	date := trip.PickupDate()
	if criteria.StartDate != "" && date < criteria.StartDate {
		return false
	}
	if criteria.EndDate != "" && date > criteria.EndDate {
		return false
	}

	if criteria.PaymentType != "" && criteria.PaymentType != domain.PaymentTypeAll &&
		trip.PaymentType != criteria.PaymentType {
		return false
	}

	return true
}
