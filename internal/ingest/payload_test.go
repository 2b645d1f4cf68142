package ingest

import (
	"errors"
	"testing"
	"time"

	"taxidash/internal/domain"
)

func TestTripPayload_ToRecord(t *testing.T) {
	p := TripPayload{
		ID:           7,
		PickupTime:   "2023-05-15 08:30:00",
		DropoffTime:  "2023-05-15T08:45:00",
		TripDistance: 2.5,
		FareAmount:   12.5,
		TipAmount:    2.5,
		PaymentType:  "Credit Card",
	}

	trip, err := p.ToRecord(time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trip.PaymentType != domain.PaymentTypeCredit {
		t.Errorf("expected credit, got %q", trip.PaymentType)
	}
	if trip.TotalAmount != 15 {
		t.Errorf("expected derived total 15, got %v", trip.TotalAmount)
	}
	if minutes, _ := trip.DurationMinutes(); minutes != 15 {
		t.Errorf("expected 15 minute trip, got %v", minutes)
	}
}

func TestTripPayload_ToRecordErrors(t *testing.T) {
	base := TripPayload{
		PickupTime:   "2023-05-15 08:30:00",
		DropoffTime:  "2023-05-15 08:45:00",
		TripDistance: 2.5,
		FareAmount:   12.5,
	}

	testCases := []struct {
		name   string
		mutate func(p *TripPayload)
		want   error
	}{
		{"missing pickup", func(p *TripPayload) { p.PickupTime = "" }, ErrMissingPickupTime},
		{"missing dropoff", func(p *TripPayload) { p.DropoffTime = "" }, ErrMissingDropoffTime},
		{"bad pickup", func(p *TripPayload) { p.PickupTime = "yesterday" }, ErrInvalidTimestamp},
		{"negative distance", func(p *TripPayload) { p.TripDistance = -1 }, ErrInvalidDistance},
		{"negative tip", func(p *TripPayload) { p.TipAmount = -2 }, ErrInvalidAmount},
		{"latitude out of range", func(p *TripPayload) { p.PickupLat = 95 }, ErrInvalidCoordinate},
		{"longitude out of range", func(p *TripPayload) { p.DropoffLng = -200 }, ErrInvalidCoordinate},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.mutate(&p)

			_, err := p.ToRecord(time.UTC)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestTripPayload_InvertedTimestampsAreTolerated(t *testing.T) {
	p := TripPayload{
		PickupTime:   "2023-05-15 09:00:00",
		DropoffTime:  "2023-05-15 08:00:00",
		TripDistance: 1,
		FareAmount:   5,
	}

	if _, err := p.ToRecord(time.UTC); err != nil {
		t.Errorf("expected inverted timestamps to be accepted, got %v", err)
	}
}

func TestDecodePayloads(t *testing.T) {
	single, err := DecodePayloads([]byte(` {"id": 1, "pickup_time": "2023-05-15 08:30:00"}`))
	if err != nil || len(single) != 1 || single[0].ID != 1 {
		t.Errorf("single object: got %v, %v", single, err)
	}

	many, err := DecodePayloads([]byte(`[{"id": 1}, {"id": 2}]`))
	if err != nil || len(many) != 2 {
		t.Errorf("array: got %v, %v", many, err)
	}

	if _, err := DecodePayloads([]byte("  ")); !errors.Is(err, ErrEmptyBatch) {
		t.Errorf("expected ErrEmptyBatch, got %v", err)
	}

	if _, err := DecodePayloads([]byte("{not json")); err == nil {
		t.Error("expected a decode error")
	}
}
