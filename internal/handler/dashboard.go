package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taxidash/internal/domain"
	"taxidash/internal/service"
)

// DashboardHandler handles HTTP requests for dashboard views and trips.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// FilterResponse echoes the filter the view was computed with.
type FilterResponse struct {
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	MaxDistance float64 `json:"max_distance"`
	PaymentType string  `json:"payment_type"`
	Search      string  `json:"search,omitempty"`
	SortBy      string  `json:"sort_by"`
}

// DashboardResponse is the HTTP response for the full dashboard.
type DashboardResponse struct {
	Filters FilterResponse `json:"filters"`
	Metrics domain.Metrics `json:"metrics"`
	Charts  domain.Charts  `json:"charts"`
	Table   TableResponse  `json:"table"`
}

// OutlierResponse is one trip with an unusual fare per mile.
type OutlierResponse struct {
	Trip        TripRow `json:"trip"`
	FarePerMile float64 `json:"fare_per_mile"`
	ZScore      float64 `json:"z_score"`
}

// GetDashboard handles GET /v1/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	req := view.Request
	respondJSON(c, http.StatusOK, DashboardResponse{
		Filters: FilterResponse{
			StartDate:   req.Filter.StartDate,
			EndDate:     req.Filter.EndDate,
			MaxDistance: req.Filter.MaxDistance,
			PaymentType: string(req.Filter.PaymentType),
			Search:      req.Search,
			SortBy:      string(req.SortBy),
		},
		Metrics: view.Metrics,
		Charts:  view.Charts,
		Table:   toTableResponse(view.Table, req.Page.PageSize),
	})
}

// GetSummary handles GET /v1/metrics/summary
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	respondJSON(c, http.StatusOK, view.Metrics)
}

// GetTrips handles GET /v1/trips
func (h *DashboardHandler) GetTrips(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	respondJSON(c, http.StatusOK, toTableResponse(view.Table, view.Request.Page.PageSize))
}

// GetTrip handles GET /v1/trips/:id
func (h *DashboardHandler) GetTrip(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, service.ErrInvalidTripID)
		return
	}

	trip, err := h.dashboardService.Trip(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripRow(*trip))
}

// GetOutliers handles GET /v1/analytics/outliers
func (h *DashboardHandler) GetOutliers(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	multiplier, _, err := floatQuery(c, "multiplier")
	if err != nil {
		respondError(c, err)
		return
	}

	outliers, err := h.dashboardService.Outliers(c.Request.Context(), filter, multiplier)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]OutlierResponse, 0, len(outliers))
	for _, o := range outliers {
		response = append(response, OutlierResponse{
			Trip:        toTripRow(o.Trip),
			FarePerMile: o.FarePerMile,
			ZScore:      o.ZScore,
		})
	}

	respondJSON(c, http.StatusOK, gin.H{
		"count":    len(response),
		"outliers": response,
	})
}

// GetZones handles GET /v1/analytics/zones
func (h *DashboardHandler) GetZones(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	precision, _, err := intQuery(c, "precision")
	if err != nil {
		respondError(c, err)
		return
	}
	limit, _, err := intQuery(c, "limit")
	if err != nil {
		respondError(c, err)
		return
	}

	zones, err := h.dashboardService.Zones(c.Request.Context(), filter, precision, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"zones": zones})
}

// view parses the query and computes the dashboard view, writing the error
// response itself when it fails.
func (h *DashboardHandler) view(c *gin.Context) (*domain.DashboardView, bool) {
	req, err := parseViewRequest(c)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	view, err := h.dashboardService.View(c.Request.Context(), req)
	if err != nil {
		respondError(c, fmt.Errorf("dashboard view: %w", err))
		return nil, false
	}
	return view, true
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.TimestampLayout)
}
