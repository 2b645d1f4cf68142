package ingest

import "errors"

var (
	// ErrMissingPickupTime is returned when a record has no pickup timestamp.
	ErrMissingPickupTime = errors.New("missing pickup time")

	// ErrMissingDropoffTime is returned when a record has no dropoff timestamp.
	ErrMissingDropoffTime = errors.New("missing dropoff time")

	// ErrInvalidTimestamp is returned when a timestamp cannot be parsed.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidDistance is returned when the trip distance is negative or not a number.
	ErrInvalidDistance = errors.New("invalid trip distance")

	// ErrInvalidAmount is returned when a fare, tip or total is negative or not a number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCoordinate is returned when a latitude or longitude is not finite or out of range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrNonPositiveTrip is returned by CSV cleaning for zero-distance or zero-fare rows.
	ErrNonPositiveTrip = errors.New("non-positive distance or fare")

	// ErrMissingColumn is returned when a CSV header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrImportBusy is returned by an Importer while another import holds the lock.
	ErrImportBusy = errors.New("another import is in progress")

	// ErrEmptyBatch is returned when an import contains no records.
	ErrEmptyBatch = errors.New("empty batch")
)
