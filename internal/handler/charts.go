package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taxidash/internal/domain"
	"taxidash/internal/render"
	"taxidash/internal/service"
)

// ChartHandler serves individual chart datasets as JSON or PNG.
type ChartHandler struct {
	dashboardService *service.DashboardService
	renderer         *render.Renderer
}

// NewChartHandler creates a new ChartHandler.
func NewChartHandler(dashboardService *service.DashboardService, renderer *render.Renderer) *ChartHandler {
	return &ChartHandler{
		dashboardService: dashboardService,
		renderer:         renderer,
	}
}

// ChartResponse is one chart dataset.
type ChartResponse struct {
	Name   string   `json:"name"`
	Labels []string `json:"labels,omitempty"`
	Data   any      `json:"data"`
}

// GetChart handles GET /v1/charts/:name and GET /v1/charts/:name.png
func (h *ChartHandler) GetChart(c *gin.Context) {
	raw := c.Param("name")
	asPNG := strings.HasSuffix(raw, ".png")
	name, err := render.ParseChartName(strings.TrimSuffix(raw, ".png"))
	if err != nil {
		respondError(c, err)
		return
	}

	req, err := parseViewRequest(c)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.dashboardService.View(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	if asPNG {
		var buf bytes.Buffer
		if err := h.renderer.Render(&buf, name, view.Charts); err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
		return
	}

	respondJSON(c, http.StatusOK, chartResponse(name, view.Charts))
}

func chartResponse(name render.ChartName, charts domain.Charts) ChartResponse {
	switch name {
	case render.ChartHourly:
		return ChartResponse{Name: string(name), Labels: hourLabels(), Data: charts.HourlyCounts}
	case render.ChartSpeed:
		return ChartResponse{Name: string(name), Labels: hourLabels(), Data: charts.SpeedByHour}
	case render.ChartPayment:
		return ChartResponse{
			Name:   string(name),
			Labels: []string{domain.PaymentTypeCredit.Label(), domain.PaymentTypeCash.Label(), "Other"},
			Data:   []int{charts.PaymentMix.Credit, charts.PaymentMix.Cash, charts.PaymentMix.Other},
		}
	}

	points := charts.FareVsDistance
	if points == nil {
		points = []domain.Point{}
	}
	return ChartResponse{Name: string(name), Data: points}
}

func hourLabels() []string {
	labels := make([]string, 24)
	for hour := range labels {
		labels[hour] = fmt.Sprintf("%d:00", hour)
	}
	return labels
}
