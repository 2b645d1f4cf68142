package ingest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"taxidash/internal/domain"
)

func TestCSVParser_Parse(t *testing.T) {
	input := `id,pickup_time,dropoff_time,trip_distance,fare_amount,tip_amount,total_amount,payment_type,pickup_lat,pickup_lng,dropoff_lat,dropoff_lng
1,2023-05-15 08:30:00,2023-05-15 08:45:00,2.5,12.50,2.50,15.00,credit,40.7614,-73.9776,40.7505,-73.9934
2,2023-05-15 12:15:00,2023-05-15 12:40:00,4.2,18.75,3.75,,CASH,40.6892,-74.0445,40.7589,-73.9851
`

	result, err := NewCSVParser(time.UTC).Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Rows != 2 || result.Skipped != 0 {
		t.Fatalf("expected 2 rows and 0 skipped, got %d rows, %d skipped (%v)", result.Rows, result.Skipped, result.Errors)
	}

	first := result.Trips[0]
	if first.ID != 1 || first.FareAmount != 12.5 || first.PaymentType != domain.PaymentTypeCredit {
		t.Errorf("unexpected first trip: %+v", first)
	}
	if first.PickupHour() != 8 || first.PickupDate() != "2023-05-15" {
		t.Errorf("unexpected pickup %v", first.PickupTime)
	}

	second := result.Trips[1]
	if second.PaymentType != domain.PaymentTypeCash {
		t.Errorf("expected payment type to be normalized to cash, got %q", second.PaymentType)
	}
	if second.TotalAmount != 22.5 {
		t.Errorf("expected missing total to default to fare + tip, got %v", second.TotalAmount)
	}
}

func TestCSVParser_TLCHeadersAndCodes(t *testing.T) {
	input := `VendorID,tpep_pickup_datetime,tpep_dropoff_datetime,trip_distance,fare_amount,tip_amount,payment_type
2,2025-08-01 00:10:11,2025-08-01 00:30:00,3.1,17.7,4,1
2,2025-08-01 01:00:00,2025-08-01 01:10:00,1.0,7.2,0,2
`

	result, err := NewCSVParser(time.UTC).Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Trips) != 2 {
		t.Fatalf("expected 2 trips, got %d (%v)", len(result.Trips), result.Errors)
	}
	if result.Trips[0].PaymentType != domain.PaymentTypeCredit || result.Trips[1].PaymentType != domain.PaymentTypeCash {
		t.Errorf("expected TLC codes 1/2 to map to credit/cash, got %q/%q", result.Trips[0].PaymentType, result.Trips[1].PaymentType)
	}
	if result.Trips[0].ID != 0 {
		t.Errorf("expected no id without an id column, got %d", result.Trips[0].ID)
	}
}

func TestCSVParser_SkipsBadRows(t *testing.T) {
	input := `pickup_time,dropoff_time,trip_distance,fare_amount
2023-05-15 08:30:00,2023-05-15 08:45:00,2.5,12.50
not-a-date,2023-05-15 08:45:00,2.5,12.50
2023-05-15 08:30:00,,2.5,12.50
2023-05-15 08:30:00,2023-05-15 08:45:00,0,12.50
2023-05-15 08:30:00,2023-05-15 08:45:00,2.5,0
2023-05-15 08:30:00,2023-05-15 08:45:00,abc,12.50
2023-05-15 08:30:00,2023-05-15 08:45:00,-1,12.50
`

	result, err := NewCSVParser(time.UTC).Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Rows != 7 {
		t.Errorf("expected 7 rows, got %d", result.Rows)
	}
	if len(result.Trips) != 1 {
		t.Errorf("expected 1 clean trip, got %d", len(result.Trips))
	}
	if result.Skipped != 6 || len(result.Errors) != 6 {
		t.Errorf("expected 6 skipped rows with errors, got %d skipped, %d errors", result.Skipped, len(result.Errors))
	}
}

func TestCSVParser_RejectsInvalidCoordinates(t *testing.T) {
	header := "pickup_time,dropoff_time,trip_distance,fare_amount,pickup_lat,pickup_lng,dropoff_lat,dropoff_lng\n"
	prefix := "2023-05-15 08:30:00,2023-05-15 08:45:00,2.5,12.5,"

	testCases := []struct {
		name   string
		coords string
	}{
		{"nan latitude", "NaN,-73.9,40.75,-73.99"},
		{"infinite longitude", "40.76,+Inf,40.75,-73.99"},
		{"latitude out of range", "40.76,-73.9,91,-73.99"},
		{"longitude out of range", "40.76,-73.9,40.75,-181"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := header + prefix + tc.coords + "\n"

			result, err := NewCSVParser(time.UTC).Parse(strings.NewReader(input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(result.Trips) != 0 || result.Skipped != 1 {
				t.Fatalf("expected the row to be skipped, got %d trips, %d skipped", len(result.Trips), result.Skipped)
			}
			if !strings.Contains(result.Errors[0], ErrInvalidCoordinate.Error()) {
				t.Errorf("expected a coordinate error, got %v", result.Errors[0])
			}
		})
	}
}

func TestCSVParser_MissingColumn(t *testing.T) {
	input := "pickup_time,dropoff_time,fare_amount\n2023-05-15 08:30:00,2023-05-15 08:45:00,12.5\n"

	_, err := NewCSVParser(nil).Parse(strings.NewReader(input))

	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}
}

func TestCSVParser_Empty(t *testing.T) {
	_, err := NewCSVParser(nil).Parse(strings.NewReader(""))

	if !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestCSVParser_UsesLocation(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	input := "pickup_time,dropoff_time,trip_distance,fare_amount\n2023-05-15 23:30:00,2023-05-16 00:10:00,2,10\n"

	result, err := NewCSVParser(loc).Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trip := result.Trips[0]
	if trip.PickupDate() != "2023-05-15" || trip.PickupHour() != 23 {
		t.Errorf("expected wall-clock pickup kept in location, got %s hour %d", trip.PickupDate(), trip.PickupHour())
	}
}
