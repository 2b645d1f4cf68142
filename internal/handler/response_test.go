package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"taxidash/internal/domain"
	"taxidash/internal/ingest"
	"taxidash/internal/render"
	"taxidash/internal/repository"
	"taxidash/internal/service"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", repository.ErrNotFound), http.StatusNotFound},
		{"unknown chart", render.ErrUnknownChart, http.StatusNotFound},
		{"bad query", ErrInvalidQuery, http.StatusBadRequest},
		{"bad date", service.ErrInvalidDate, http.StatusBadRequest},
		{"bad sort", fmt.Errorf("%w: %q", service.ErrInvalidSortField, "x"), http.StatusBadRequest},
		{"missing column", ingest.ErrMissingColumn, http.StatusBadRequest},
		{"import locked", service.ErrImportInProgress, http.StatusConflict},
		{"empty chart", render.ErrEmptyChart, http.StatusUnprocessableEntity},
		{"body too large", &http.MaxBytesError{Limit: 1}, http.StatusRequestEntityTooLarge},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestToTripRow(t *testing.T) {
	pickup := time.Date(2023, 5, 15, 8, 30, 0, 0, time.UTC)
	trip := domain.TripRecord{
		ID:           7,
		PickupTime:   pickup,
		DropoffTime:  pickup.Add(14*time.Minute + 40*time.Second),
		TripDistance: 2.5,
		FareAmount:   12.5,
		PaymentType:  domain.PaymentType("dispute"),
	}

	row := toTripRow(trip)

	if row.DurationMinutes == nil || *row.DurationMinutes != 15 {
		t.Errorf("expected duration rounded to 15, got %v", row.DurationMinutes)
	}
	if row.Payment != "Other" || row.PaymentType != "dispute" {
		t.Errorf("unexpected payment formatting %q / %q", row.Payment, row.PaymentType)
	}

	row = toTripRow(domain.TripRecord{ID: 8})
	if row.DurationMinutes != nil || row.PickupTime != "" {
		t.Errorf("expected missing timestamps to stay empty, got %+v", row)
	}
}
