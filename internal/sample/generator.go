// Package sample produces synthetic trip collections for demos and tests.
package sample

import (
	"math"
	"math/rand"
	"time"

	"taxidash/internal/domain"
)

// SeedTrips returns the three hand-written trips the dashboard ships with.
func SeedTrips(loc *time.Location) []domain.TripRecord {
	if loc == nil {
		loc = time.UTC
	}
	at := func(day, hour, minute int) time.Time {
		return time.Date(2023, time.May, day, hour, minute, 0, 0, loc)
	}

	return []domain.TripRecord{
		{
			ID:           1,
			PickupTime:   at(15, 8, 30),
			DropoffTime:  at(15, 8, 45),
			TripDistance: 2.5,
			FareAmount:   12.50,
			TipAmount:    2.50,
			TotalAmount:  15.00,
			PaymentType:  domain.PaymentTypeCredit,
			PickupLat:    40.7614,
			PickupLng:    -73.9776,
			DropoffLat:   40.7505,
			DropoffLng:   -73.9934,
		},
		{
			ID:           2,
			PickupTime:   at(15, 12, 15),
			DropoffTime:  at(15, 12, 40),
			TripDistance: 4.2,
			FareAmount:   18.75,
			TipAmount:    3.75,
			TotalAmount:  22.50,
			PaymentType:  domain.PaymentTypeCash,
			PickupLat:    40.6892,
			PickupLng:    -74.0445,
			DropoffLat:   40.7589,
			DropoffLng:   -73.9851,
		},
		{
			ID:           3,
			PickupTime:   at(15, 18, 45),
			DropoffTime:  at(15, 19, 15),
			TripDistance: 5.8,
			FareAmount:   24.30,
			TipAmount:    4.86,
			TotalAmount:  29.16,
			PaymentType:  domain.PaymentTypeCredit,
			PickupLat:    40.7282,
			PickupLng:    -73.9942,
			DropoffLat:   40.6413,
			DropoffLng:   -73.7781,
		},
	}
}

// Generate returns n random but internally consistent trips. The same seed
// always yields the same collection.
//
// Pickups fall in May 2023, trips last 5-64 minutes and cover 0.5-20.5 miles.
// Fares follow distance, tips are 20% of the fare and totals are fare + tip.
func Generate(n int, seed int64, loc *time.Location) []domain.TripRecord {
	if loc == nil {
		loc = time.UTC
	}
	rng := rand.New(rand.NewSource(seed))

	trips := make([]domain.TripRecord, 0, n)
	for i := 0; i < n; i++ {
		day := rng.Intn(30) + 1
		hour := rng.Intn(24)
		minute := rng.Intn(60)
		pickup := time.Date(2023, time.May, day, hour, minute, 0, 0, loc)

		duration := time.Duration(rng.Intn(60)+5) * time.Minute

		distance := round2(rng.Float64()*20 + 0.5)
		fare := round2(distance*2.5 + rng.Float64()*10)
		tip := round2(fare * 0.2)

		payment := domain.KnownPaymentTypes[rng.Intn(len(domain.KnownPaymentTypes))]

		trips = append(trips, domain.TripRecord{
			ID:           int64(i + 1),
			PickupTime:   pickup,
			DropoffTime:  pickup.Add(duration),
			TripDistance: distance,
			FareAmount:   fare,
			TipAmount:    tip,
			TotalAmount:  round2(fare + tip),
			PaymentType:  payment,
			PickupLat:    40.7 + rng.Float64()*0.2,
			PickupLng:    -74.0 + rng.Float64()*0.2,
			DropoffLat:   40.7 + rng.Float64()*0.2,
			DropoffLng:   -74.0 + rng.Float64()*0.2,
		})
	}
	return trips
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
