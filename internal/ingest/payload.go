package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"taxidash/internal/domain"
)

// TripPayload is the JSON shape of a trip record exchanged with clients and
// published on the ingestion queue.
type TripPayload struct {
	ID           int64   `json:"id"`
	PickupTime   string  `json:"pickup_time"`
	DropoffTime  string  `json:"dropoff_time"`
	TripDistance float64 `json:"trip_distance"`
	FareAmount   float64 `json:"fare_amount"`
	TipAmount    float64 `json:"tip_amount"`
	TotalAmount  float64 `json:"total_amount"`
	PaymentType  string  `json:"payment_type"`
	PickupLat    float64 `json:"pickup_lat"`
	PickupLng    float64 `json:"pickup_lng"`
	DropoffLat   float64 `json:"dropoff_lat"`
	DropoffLng   float64 `json:"dropoff_lng"`
}

// ToRecord parses and validates the payload.
func (p TripPayload) ToRecord(loc *time.Location) (domain.TripRecord, error) {
	if p.PickupTime == "" {
		return domain.TripRecord{}, ErrMissingPickupTime
	}
	if p.DropoffTime == "" {
		return domain.TripRecord{}, ErrMissingDropoffTime
	}

	pickup, err := ParseTimestamp(p.PickupTime, loc)
	if err != nil {
		return domain.TripRecord{}, err
	}
	dropoff, err := ParseTimestamp(p.DropoffTime, loc)
	if err != nil {
		return domain.TripRecord{}, err
	}

	total := p.TotalAmount
	if total == 0 {
		total = p.FareAmount + p.TipAmount
	}

	trip := domain.TripRecord{
		ID:           p.ID,
		PickupTime:   pickup,
		DropoffTime:  dropoff,
		TripDistance: p.TripDistance,
		FareAmount:   p.FareAmount,
		TipAmount:    p.TipAmount,
		TotalAmount:  total,
		PaymentType:  domain.ParsePaymentType(p.PaymentType),
		PickupLat:    p.PickupLat,
		PickupLng:    p.PickupLng,
		DropoffLat:   p.DropoffLat,
		DropoffLng:   p.DropoffLng,
	}

	if err := Validate(trip); err != nil {
		return domain.TripRecord{}, err
	}
	return trip, nil
}

// DecodePayloads accepts either a single JSON object or an array of them.
func DecodePayloads(body []byte) ([]TripPayload, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, ErrEmptyBatch
	}

	if trimmed[0] == '[' {
		var payloads []TripPayload
		if err := json.Unmarshal(trimmed, &payloads); err != nil {
			return nil, fmt.Errorf("decode trip array: %w", err)
		}
		return payloads, nil
	}

	var p TripPayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("decode trip: %w", err)
	}
	return []TripPayload{p}, nil
}

// ConvertPayloads turns payloads into records, collecting per-record errors
// instead of failing the whole batch.
func ConvertPayloads(payloads []TripPayload, loc *time.Location) ([]domain.TripRecord, []error) {
	trips := make([]domain.TripRecord, 0, len(payloads))
	var errs []error
	for i, p := range payloads {
		trip, err := p.ToRecord(loc)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		trips = append(trips, trip)
	}
	return trips, errs
}
