package handler

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"taxidash/internal/domain"
	"taxidash/internal/ingest"
	"taxidash/internal/middleware"
	"taxidash/internal/render"
	"taxidash/internal/repository"
	"taxidash/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(code, ErrorResponse{Error: err.Error(), RequestID: middleware.RequestID(c)})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var tooLarge *http.MaxBytesError

	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, render.ErrUnknownChart):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, ErrInvalidQuery),
		errors.Is(err, service.ErrInvalidDate),
		errors.Is(err, service.ErrInvalidDistance),
		errors.Is(err, service.ErrInvalidPaymentType),
		errors.Is(err, service.ErrInvalidSortField),
		errors.Is(err, service.ErrInvalidPage),
		errors.Is(err, service.ErrInvalidTripID),
		errors.Is(err, service.ErrInvalidMultiplier),
		errors.Is(err, service.ErrInvalidPrecision),
		errors.Is(err, service.ErrInvalidLimit),
		errors.Is(err, service.ErrNoValidTrips),
		errors.Is(err, ingest.ErrEmptyBatch),
		errors.Is(err, ingest.ErrMissingColumn),
		errors.As(err, &syntaxErr),
		errors.As(err, &typeErr):
		return http.StatusBadRequest

	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge

	// Conflict errors
	case errors.Is(err, service.ErrImportInProgress):
		return http.StatusConflict

	case errors.Is(err, render.ErrEmptyChart):
		return http.StatusUnprocessableEntity

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

// TripRow is one row of the trips table.
type TripRow struct {
	ID                int64   `json:"id"`
	PickupTime        string  `json:"pickup_time"`
	DropoffTime       string  `json:"dropoff_time"`
	TripDistance      float64 `json:"trip_distance"`
	DurationMinutes   *int64  `json:"duration_minutes"`
	FareAmount        float64 `json:"fare_amount"`
	TipAmount         float64 `json:"tip_amount"`
	TotalAmount       float64 `json:"total_amount"`
	PaymentType       string  `json:"payment_type"`
	Payment           string  `json:"payment"`
	StraightLineMiles float64 `json:"straight_line_miles"`
}

// PaginationResponse mirrors the table's prev/next controls.
type PaginationResponse struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	PageSize    int  `json:"page_size"`
	HasPrev     bool `json:"has_prev"`
	HasNext     bool `json:"has_next"`
}

// TableResponse is one page of the trips table.
type TableResponse struct {
	Rows       []TripRow          `json:"rows"`
	Pagination PaginationResponse `json:"pagination"`
}

func toTripRow(trip domain.TripRecord) TripRow {
	row := TripRow{
		ID:                trip.ID,
		PickupTime:        formatTime(trip.PickupTime),
		DropoffTime:       formatTime(trip.DropoffTime),
		TripDistance:      trip.TripDistance,
		FareAmount:        trip.FareAmount,
		TipAmount:         trip.TipAmount,
		TotalAmount:       trip.TotalAmount,
		PaymentType:       string(trip.PaymentType),
		Payment:           trip.PaymentType.Label(),
		StraightLineMiles: math.Round(trip.StraightLineMiles()*100) / 100,
	}
	if minutes, ok := trip.DurationMinutes(); ok {
		rounded := int64(math.Round(minutes))
		row.DurationMinutes = &rounded
	}
	return row
}

func toTableResponse(page domain.Page, pageSize int) TableResponse {
	rows := make([]TripRow, 0, len(page.Items))
	for _, trip := range page.Items {
		rows = append(rows, toTripRow(trip))
	}
	return TableResponse{
		Rows: rows,
		Pagination: PaginationResponse{
			CurrentPage: page.ClampedPage,
			TotalPages:  page.TotalPages,
			TotalItems:  page.TotalItems,
			PageSize:    pageSize,
			HasPrev:     page.HasPrev,
			HasNext:     page.HasNext,
		},
	}
}
