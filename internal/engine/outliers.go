package engine

import (
	"math"

	"taxidash/internal/domain"
)

// DefaultOutlierMultiplier is the number of standard deviations a fare per
// mile may stray from the mean before the trip is reported.
const DefaultOutlierMultiplier = 3.0

// FarePerMileOutliers returns the trips whose fare per mile lies outside
// mean ± multiplier·σ (population standard deviation). Zero-distance trips
// have no fare per mile and are ignored.
func FarePerMileOutliers(trips []domain.TripRecord, multiplier float64) []domain.Outlier {
	if multiplier <= 0 {
		multiplier = DefaultOutlierMultiplier
	}

	values := make([]float64, 0, len(trips))
	for _, trip := range trips {
		if v, ok := trip.FarePerMile(); ok {
			values = append(values, v)
		}
	}

	mean, std, ok := meanStd(values)
	if !ok {
		return []domain.Outlier{}
	}

	high := mean + multiplier*std
	low := mean - multiplier*std

	outliers := []domain.Outlier{}
	for _, trip := range trips {
		v, ok := trip.FarePerMile()
		if !ok || (v <= high && v >= low) {
			continue
		}
		z := 0.0
		if std > 0 {
			z = (v - mean) / std
		}
		outliers = append(outliers, domain.Outlier{Trip: trip, FarePerMile: v, ZScore: z})
	}
	return outliers
}

// meanStd returns the arithmetic mean and population standard deviation.
func meanStd(values []float64) (mean, std float64, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}

	var total float64
	for _, v := range values {
		total += v
	}
	mean = total / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(values))), true
}
