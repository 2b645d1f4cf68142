package domain

import (
	"math"
	"time"

	"github.com/umahmood/haversine"
)

// Layouts used for trip timestamps and pickup dates.
const (
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

// TripRecord represents one completed taxi trip.
type TripRecord struct {
	ID           int64
	PickupTime   time.Time
	DropoffTime  time.Time
	TripDistance float64 // In miles
	FareAmount   float64
	TipAmount    float64
	TotalAmount  float64
	PaymentType  PaymentType
	PickupLat    float64
	PickupLng    float64
	DropoffLat   float64
	DropoffLng   float64
}

// HasTimestamps reports whether both pickup and dropoff times are set.
func (t TripRecord) HasTimestamps() bool {
	return !t.PickupTime.IsZero() && !t.DropoffTime.IsZero()
}

// Duration returns the time between pickup and dropoff.
// The second value is false when either timestamp is missing.
// Inverted timestamps yield a negative duration.
func (t TripRecord) Duration() (time.Duration, bool) {
	if !t.HasTimestamps() {
		return 0, false
	}
	return t.DropoffTime.Sub(t.PickupTime), true
}

// DurationMinutes returns the trip duration in minutes.
func (t TripRecord) DurationMinutes() (float64, bool) {
	d, ok := t.Duration()
	if !ok {
		return 0, false
	}
	return d.Minutes(), true
}

// SpeedMPH returns the average speed in miles per hour.
// A zero duration yields +Inf or NaN; callers decide what to keep.
func (t TripRecord) SpeedMPH() (float64, bool) {
	d, ok := t.Duration()
	if !ok {
		return 0, false
	}
	hours := d.Hours()
	if hours == 0 {
		if t.TripDistance == 0 {
			return math.NaN(), true
		}
		return math.Inf(1), true
	}
	return t.TripDistance / hours, true
}

// FarePerMile returns the fare divided by the trip distance.
// The second value is false for zero-distance trips.
func (t TripRecord) FarePerMile() (float64, bool) {
	if t.TripDistance <= 0 {
		return 0, false
	}
	return t.FareAmount / t.TripDistance, true
}

// PickupDate returns the calendar date of the pickup as YYYY-MM-DD.
func (t TripRecord) PickupDate() string {
	return t.PickupTime.Format(DateLayout)
}

// PickupHour returns the hour of day (0-23) of the pickup.
func (t TripRecord) PickupHour() int {
	return t.PickupTime.Hour()
}

// StraightLineMiles returns the great-circle distance between pickup and dropoff.
func (t TripRecord) StraightLineMiles() float64 {
	mi, _ := haversine.Distance(
		haversine.Coord{Lat: t.PickupLat, Lon: t.PickupLng},
		haversine.Coord{Lat: t.DropoffLat, Lon: t.DropoffLng},
	)
	return mi
}
