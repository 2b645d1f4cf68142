package engine

import (
	"math"

	"taxidash/internal/domain"
)

// MaxPlausibleSpeedMPH is the exclusive upper bound for speeds kept in
// SpeedByHour. Faster trips are treated as bad data.
const MaxPlausibleSpeedMPH = 100.0

// BuildCharts computes all four chart datasets.
func BuildCharts(trips []domain.TripRecord) domain.Charts {
	return domain.Charts{
		HourlyCounts:   HourlyCounts(trips),
		FareVsDistance: FareVsDistance(trips),
		PaymentMix:     PaymentMix(trips),
		SpeedByHour:    SpeedByHour(trips),
	}
}

// HourlyCounts returns the number of pickups per hour of day.
func HourlyCounts(trips []domain.TripRecord) [24]int {
	var counts [24]int
	for _, trip := range trips {
		counts[trip.PickupHour()]++
	}
	return counts
}

// FareVsDistance returns one (distance, fare) point per trip.
func FareVsDistance(trips []domain.TripRecord) []domain.Point {
	points := make([]domain.Point, 0, len(trips))
	for _, trip := range trips {
		points = append(points, domain.Point{X: trip.TripDistance, Y: trip.FareAmount})
	}
	return points
}

// PaymentMix counts trips per payment type. Types outside the known set land
// in Other, so the buckets always sum to len(trips).
func PaymentMix(trips []domain.TripRecord) domain.PaymentMix {
	var mix domain.PaymentMix
	for _, trip := range trips {
		switch trip.PaymentType {
		case domain.PaymentTypeCredit:
			mix.Credit++
		case domain.PaymentTypeCash:
			mix.Cash++
		default:
			mix.Other++
		}
	}
	return mix
}

// SpeedByHour returns the mean speed (mph) of trips per pickup hour.
// Hours without a usable speed report 0.
func SpeedByHour(trips []domain.TripRecord) [24]float64 {
	var sums [24]float64
	var counts [24]int

	for _, trip := range trips {
		speed, ok := trip.SpeedMPH()
		if !ok || !plausibleSpeed(speed) {
			continue
		}
		hour := trip.PickupHour()
		sums[hour] += speed
		counts[hour]++
	}

	var avg [24]float64
	for h := range avg {
		if counts[h] > 0 {
			avg[h] = sums[h] / float64(counts[h])
		}
	}
	return avg
}

func plausibleSpeed(speed float64) bool {
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return false
	}
	return speed >= 0 && speed < MaxPlausibleSpeedMPH
}
