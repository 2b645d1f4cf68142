// Package render draws dashboard chart datasets as PNG images.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"taxidash/internal/domain"
)

// ChartName identifies one of the dashboard charts.
type ChartName string

const (
	ChartHourly       ChartName = "hourly"
	ChartFareDistance ChartName = "fare-distance"
	ChartPayment      ChartName = "payment"
	ChartSpeed        ChartName = "speed"
)

// ChartNames lists every renderable chart.
var ChartNames = []ChartName{ChartHourly, ChartFareDistance, ChartPayment, ChartSpeed}

var (
	// ErrUnknownChart is returned for a chart name outside ChartNames.
	ErrUnknownChart = errors.New("unknown chart")

	// ErrEmptyChart is returned when a dataset has nothing to draw.
	ErrEmptyChart = errors.New("no data to render")
)

// ParseChartName validates a chart name.
func ParseChartName(raw string) (ChartName, error) {
	name := ChartName(strings.ToLower(strings.TrimSpace(raw)))
	for _, n := range ChartNames {
		if n == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChart, raw)
}

var (
	creditColor = drawing.ColorFromHex("36a2eb")
	cashColor   = drawing.ColorFromHex("ff6384")
	otherColor  = drawing.ColorFromHex("c9cbcf")
)

// Renderer draws charts at a fixed size.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a Renderer. Non-positive sizes fall back to 800x400.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = 800
	}
	if height <= 0 {
		height = 400
	}
	return &Renderer{Width: width, Height: height}
}

// Render writes the named chart as PNG.
func (r *Renderer) Render(w io.Writer, name ChartName, charts domain.Charts) error {
	switch name {
	case ChartHourly:
		return r.hourly(w, charts.HourlyCounts)
	case ChartFareDistance:
		return r.fareDistance(w, charts.FareVsDistance)
	case ChartPayment:
		return r.payment(w, charts.PaymentMix)
	case ChartSpeed:
		return r.speed(w, charts.SpeedByHour)
	}
	return fmt.Errorf("%w: %q", ErrUnknownChart, name)
}

func (r *Renderer) hourly(w io.Writer, counts [24]int) error {
	bars := make([]chart.Value, 0, len(counts))
	maxCount := 0
	for hour, n := range counts {
		bars = append(bars, chart.Value{Value: float64(n), Label: strconv.Itoa(hour)})
		if n > maxCount {
			maxCount = n
		}
	}
	if maxCount == 0 {
		return ErrEmptyChart
	}

	graph := chart.BarChart{
		Title:      "Trips per Hour",
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   r.Width / 40,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

func (r *Renderer) fareDistance(w io.Writer, points []domain.Point) error {
	if len(points) == 0 {
		return ErrEmptyChart
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	var maxX, maxY float64
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	graph := chart.Chart{
		Title:  "Fare vs Distance",
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{Name: "Distance (miles)", Range: paddedRange(maxX)},
		YAxis: chart.YAxis{Name: "Fare ($)", Range: paddedRange(maxY)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Trips",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3,
					DotColor:    creditColor,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

func (r *Renderer) payment(w io.Writer, mix domain.PaymentMix) error {
	if mix.Total() == 0 {
		return ErrEmptyChart
	}

	slices := []struct {
		label string
		count int
		color drawing.Color
	}{
		{domain.PaymentTypeCredit.Label(), mix.Credit, creditColor},
		{domain.PaymentTypeCash.Label(), mix.Cash, cashColor},
		{"Other", mix.Other, otherColor},
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		if s.count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: float64(s.count),
			Label: fmt.Sprintf("%s (%d)", s.label, s.count),
			Style: chart.Style{FillColor: s.color},
		})
	}

	graph := chart.PieChart{
		Title:  "Payment Types",
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}
	return graph.Render(chart.PNG, w)
}

func (r *Renderer) speed(w io.Writer, speeds [24]float64) error {
	xs := make([]float64, len(speeds))
	ys := make([]float64, len(speeds))
	var maxY float64
	for hour, v := range speeds {
		xs[hour] = float64(hour)
		ys[hour] = v
		maxY = max(maxY, v)
	}
	if maxY == 0 {
		return ErrEmptyChart
	}

	graph := chart.Chart{
		Title:  "Average Speed by Hour",
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{Name: "Hour", Range: &chart.ContinuousRange{Min: 0, Max: 23}},
		YAxis: chart.YAxis{Name: "Speed (mph)", Range: paddedRange(maxY)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Speed",
				Style: chart.Style{
					StrokeColor: cashColor,
					StrokeWidth: 2,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

// paddedRange returns [0, 1.1*maxValue], never a zero-width range.
func paddedRange(maxValue float64) *chart.ContinuousRange {
	upper := maxValue * 1.1
	if upper <= 0 {
		upper = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: upper}
}
