// Package ingest turns external trip data (CSV files, JSON payloads, queue
// messages) into validated domain.TripRecord values.
package ingest

import (
	"fmt"
	"math"
	"strings"
	"time"

	"taxidash/internal/domain"
)

// timestampLayouts are tried in order when parsing trip timestamps.
var timestampLayouts = []string{
	domain.TimestampLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseTimestamp parses a trip timestamp. Values without a zone are read as
// wall-clock time in loc.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			if layout == time.RFC3339 {
				return t.In(loc), nil
			}
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, raw)
}

// Validate checks the invariants every stored trip must satisfy.
// Dropoff before pickup is tolerated.
func Validate(trip domain.TripRecord) error {
	if trip.PickupTime.IsZero() {
		return ErrMissingPickupTime
	}
	if trip.DropoffTime.IsZero() {
		return ErrMissingDropoffTime
	}
	if !validNumber(trip.TripDistance) {
		return fmt.Errorf("%w: %v", ErrInvalidDistance, trip.TripDistance)
	}
	for _, amount := range []float64{trip.FareAmount, trip.TipAmount, trip.TotalAmount} {
		if !validNumber(amount) {
			return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
		}
	}
	for _, c := range []struct {
		name  string
		value float64
		limit float64
	}{
		{"pickup_lat", trip.PickupLat, 90},
		{"pickup_lng", trip.PickupLng, 180},
		{"dropoff_lat", trip.DropoffLat, 90},
		{"dropoff_lng", trip.DropoffLng, 180},
	} {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) || math.Abs(c.value) > c.limit {
			return fmt.Errorf("%w: %s=%v", ErrInvalidCoordinate, c.name, c.value)
		}
	}
	return nil
}

func validNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
