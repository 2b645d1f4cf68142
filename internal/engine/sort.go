package engine

import (
	"sort"

	"taxidash/internal/domain"
)

// Sort returns a copy of trips ordered ascending by field.
// Equal keys keep their input order. An unknown field leaves the order as is.
func Sort(trips []domain.TripRecord, field domain.SortField) []domain.TripRecord {
	out := make([]domain.TripRecord, len(trips))
	copy(out, trips)

	less := lessFunc(field)
	if less == nil {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(field domain.SortField) func(a, b domain.TripRecord) bool {
	switch field {
	case domain.SortByPickupTime:
		return func(a, b domain.TripRecord) bool { return a.PickupTime.Before(b.PickupTime) }
	case domain.SortByTripDistance:
		return func(a, b domain.TripRecord) bool { return a.TripDistance < b.TripDistance }
	case domain.SortByFareAmount:
		return func(a, b domain.TripRecord) bool { return a.FareAmount < b.FareAmount }
	case domain.SortByTipAmount:
		return func(a, b domain.TripRecord) bool { return a.TipAmount < b.TipAmount }
	case domain.SortByTotalAmount:
		return func(a, b domain.TripRecord) bool { return a.TotalAmount < b.TotalAmount }
	}
	return nil
}
