package domain

// Dashboard defaults.
const (
	DefaultPageSize    = 10
	DefaultMaxDistance = 50.0
)

// FilterCriteria selects which trips feed the dashboard.
type FilterCriteria struct {
	StartDate   string // YYYY-MM-DD, inclusive; empty means unbounded
	EndDate     string // YYYY-MM-DD, inclusive; empty means unbounded
	MaxDistance float64
	PaymentType PaymentType
}

// DefaultFilter returns the unfiltered dashboard state.
func DefaultFilter() FilterCriteria {
	return FilterCriteria{
		MaxDistance: DefaultMaxDistance,
		PaymentType: PaymentTypeAll,
	}
}

// SortField is a trip attribute the table can be ordered by.
type SortField string

const (
	SortByPickupTime   SortField = "pickup_time"
	SortByTripDistance SortField = "trip_distance"
	SortByFareAmount   SortField = "fare_amount"
	SortByTipAmount    SortField = "tip_amount"
	SortByTotalAmount  SortField = "total_amount"
)

// IsValid reports whether the field is sortable.
func (f SortField) IsValid() bool {
	switch f {
	case SortByPickupTime, SortByTripDistance, SortByFareAmount, SortByTipAmount, SortByTotalAmount:
		return true
	}
	return false
}

// PageRequest selects one page of the trips table.
type PageRequest struct {
	PageSize   int
	PageNumber int // 1-based
}

// ViewRequest carries the complete dashboard state for one recomputation.
type ViewRequest struct {
	Filter FilterCriteria
	Search string
	SortBy SortField
	Page   PageRequest
}

// DefaultViewRequest returns the state the dashboard starts in.
func DefaultViewRequest() ViewRequest {
	return ViewRequest{
		Filter: DefaultFilter(),
		SortBy: SortByPickupTime,
		Page:   PageRequest{PageSize: DefaultPageSize, PageNumber: 1},
	}
}

// Metrics holds the summary cards of the dashboard.
type Metrics struct {
	Count              int     `json:"count"`
	AvgFare            float64 `json:"avg_fare"`
	AvgDistance        float64 `json:"avg_distance"`
	AvgDurationMinutes float64 `json:"avg_duration_minutes"`
}

// Point is one (x, y) pair of a scatter dataset.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PaymentMix counts trips per payment type.
type PaymentMix struct {
	Credit int `json:"credit"`
	Cash   int `json:"cash"`
	Other  int `json:"other"`
}

// Total returns the number of trips across all buckets.
func (m PaymentMix) Total() int {
	return m.Credit + m.Cash + m.Other
}

// Charts holds the four chart datasets.
type Charts struct {
	HourlyCounts   [24]int     `json:"hourly_counts"`
	FareVsDistance []Point     `json:"fare_vs_distance"`
	PaymentMix     PaymentMix  `json:"payment_mix"`
	SpeedByHour    [24]float64 `json:"speed_by_hour"`
}

// Page is one slice of the trips table.
type Page struct {
	Items       []TripRecord
	TotalItems  int
	TotalPages  int
	ClampedPage int
	HasPrev     bool
	HasNext     bool
}

// DashboardView is every derived view for one ViewRequest.
type DashboardView struct {
	Request ViewRequest
	Metrics Metrics
	Charts  Charts
	Table   Page
}

// Outlier is a trip whose fare per mile deviates from the mean.
type Outlier struct {
	Trip        TripRecord
	FarePerMile float64
	ZScore      float64
}

// ZoneCount is the number of pickups in one geohash cell.
type ZoneCount struct {
	Geohash string  `json:"geohash"`
	Count   int     `json:"count"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}
