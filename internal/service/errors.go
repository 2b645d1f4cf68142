package service

import (
	"errors"

	"taxidash/internal/ingest"
)

var (
	// ErrInvalidDate is returned when a filter date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidDistance is returned when the max distance is negative or not a number.
	ErrInvalidDistance = errors.New("invalid max distance")

	// ErrInvalidPaymentType is returned when the payment filter is not a known type.
	ErrInvalidPaymentType = errors.New("invalid payment type")

	// ErrInvalidSortField is returned when the table cannot be sorted by the field.
	ErrInvalidSortField = errors.New("invalid sort field")

	// ErrInvalidPage is returned when the page number or page size is out of bounds.
	ErrInvalidPage = errors.New("invalid page")

	// ErrInvalidTripID is returned when a trip ID is not positive.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrInvalidMultiplier is returned when the outlier multiplier is not positive.
	ErrInvalidMultiplier = errors.New("invalid outlier multiplier")

	// ErrInvalidPrecision is returned when the geohash precision is out of range.
	ErrInvalidPrecision = errors.New("invalid geohash precision")

	// ErrInvalidLimit is returned when a result limit is negative.
	ErrInvalidLimit = errors.New("invalid limit")

	// ErrNoValidTrips is returned when an import contains no usable records.
	ErrNoValidTrips = errors.New("no valid trips in import")

	// ErrImportInProgress is returned when another import holds the lock.
	// It is ingest.ErrImportBusy so the queue consumer can back off.
	ErrImportInProgress = ingest.ErrImportBusy
)
