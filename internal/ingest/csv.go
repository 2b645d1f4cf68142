package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"taxidash/internal/domain"
)

// maxReportedErrors caps how many row errors a CSV import reports back.
const maxReportedErrors = 20

// columnAliases maps each trip field to the CSV headers that may carry it.
// Raw TLC exports, the cleaned CSVs and the dashboard's own exports all work.
var columnAliases = map[string][]string{
	"id":            {"id", "trip_id"},
	"pickup_time":   {"pickup_time", "pickup_datetime", "tpep_pickup_datetime"},
	"dropoff_time":  {"dropoff_time", "dropoff_datetime", "tpep_dropoff_datetime"},
	"trip_distance": {"trip_distance", "distance"},
	"fare_amount":   {"fare_amount", "fare"},
	"tip_amount":    {"tip_amount", "tip"},
	"total_amount":  {"total_amount", "total"},
	"payment_type":  {"payment_type", "payment"},
	"pickup_lat":    {"pickup_lat", "pickup_latitude"},
	"pickup_lng":    {"pickup_lng", "pickup_lon", "pickup_longitude"},
	"dropoff_lat":   {"dropoff_lat", "dropoff_latitude"},
	"dropoff_lng":   {"dropoff_lng", "dropoff_lon", "dropoff_longitude"},
}

var requiredColumns = []string{"pickup_time", "dropoff_time", "trip_distance", "fare_amount"}

// CSVResult is the outcome of parsing one CSV document.
type CSVResult struct {
	Trips   []domain.TripRecord
	Rows    int
	Skipped int
	Errors  []string
}

// CSVParser reads trip records from CSV with a header row.
type CSVParser struct {
	// Location interprets timestamps that carry no zone.
	Location *time.Location
}

// NewCSVParser creates a parser reading timestamps in loc.
func NewCSVParser(loc *time.Location) *CSVParser {
	if loc == nil {
		loc = time.UTC
	}
	return &CSVParser{Location: loc}
}

// Parse reads every row of r. Rows that fail to parse or validate are
// skipped and counted. Rows with a non-positive distance or fare are dropped
// as well, matching how the raw TLC data is cleaned.
func (p *CSVParser) Parse(r io.Reader) (*CSVResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBatch
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	result := &CSVResult{Trips: []domain.TripRecord{}}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Rows++
				result.skip(fmt.Errorf("line %d: %w", line, err))
				continue
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		result.Rows++

		trip, err := p.parseRow(record, index)
		if err != nil {
			result.skip(fmt.Errorf("line %d: %w", line, err))
			continue
		}
		result.Trips = append(result.Trips, trip)
	}

	return result, nil
}

func (r *CSVResult) skip(err error) {
	r.Skipped++
	if len(r.Errors) < maxReportedErrors {
		r.Errors = append(r.Errors, err.Error())
	}
}

func resolveColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		positions[strings.ToLower(strings.TrimSpace(h))] = i
	}

	index := make(map[string]int, len(columnAliases))
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := positions[alias]; ok {
				index[field] = i
				break
			}
		}
	}

	for _, field := range requiredColumns {
		if _, ok := index[field]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, field)
		}
	}
	return index, nil
}

func (p *CSVParser) parseRow(record []string, index map[string]int) (domain.TripRecord, error) {
	get := func(field string) string {
		i, ok := index[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var err error
	var trip domain.TripRecord

	if raw := get("id"); raw != "" {
		if trip.ID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return trip, fmt.Errorf("invalid id %q: %w", raw, err)
		}
	}

	if raw := get("pickup_time"); raw == "" {
		return trip, ErrMissingPickupTime
	} else if trip.PickupTime, err = ParseTimestamp(raw, p.Location); err != nil {
		return trip, err
	}

	if raw := get("dropoff_time"); raw == "" {
		return trip, ErrMissingDropoffTime
	} else if trip.DropoffTime, err = ParseTimestamp(raw, p.Location); err != nil {
		return trip, err
	}

	numbers := []struct {
		field string
		dest  *float64
	}{
		{"trip_distance", &trip.TripDistance},
		{"fare_amount", &trip.FareAmount},
		{"tip_amount", &trip.TipAmount},
		{"total_amount", &trip.TotalAmount},
		{"pickup_lat", &trip.PickupLat},
		{"pickup_lng", &trip.PickupLng},
		{"dropoff_lat", &trip.DropoffLat},
		{"dropoff_lng", &trip.DropoffLng},
	}
	for _, n := range numbers {
		raw := get(n.field)
		if raw == "" {
			continue
		}
		if *n.dest, err = strconv.ParseFloat(raw, 64); err != nil {
			return trip, fmt.Errorf("invalid %s %q: %w", n.field, raw, err)
		}
	}

	if trip.TotalAmount == 0 {
		trip.TotalAmount = trip.FareAmount + trip.TipAmount
	}
	trip.PaymentType = domain.ParsePaymentType(get("payment_type"))

	if err := Validate(trip); err != nil {
		return trip, err
	}
	if trip.TripDistance <= 0 || trip.FareAmount <= 0 {
		return trip, ErrNonPositiveTrip
	}

	return trip, nil
}
