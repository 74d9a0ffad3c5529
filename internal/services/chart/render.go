package chart

import (
	"bytes"
	"fmt"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/folio/internal/models"
)

// RenderPNG renders a performance series as a PNG line chart.
// Two series: Portfolio (blue solid) and Benchmark (gray dashed).
// Returns raw PNG bytes.
func RenderPNG(points []models.ChartPoint, title string) ([]byte, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	var portX, benchX []time.Time
	var portY, benchY []float64
	for _, p := range points {
		if p.Portfolio != nil {
			portX = append(portX, p.Date)
			portY = append(portY, *p.Portfolio)
		}
		if p.Benchmark != nil {
			benchX = append(benchX, p.Date)
			benchY = append(benchY, *p.Benchmark)
		}
	}

	var series []gochart.Series
	if len(portY) >= 2 {
		series = append(series, gochart.TimeSeries{
			Name: "Portfolio",
			Style: gochart.Style{
				StrokeColor: drawing.ColorFromHex("2563eb"), // blue-600
				StrokeWidth: 2.5,
			},
			XValues: portX,
			YValues: portY,
		})
	}
	if len(benchY) >= 2 {
		series = append(series, gochart.TimeSeries{
			Name: "Benchmark",
			Style: gochart.Style{
				StrokeColor:     drawing.ColorFromHex("9ca3af"), // gray-400
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 3.0},
			},
			XValues: benchX,
			YValues: benchY,
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no plottable series")
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  900,
		Height: 400,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: gochart.XAxis{
			TickPosition: gochart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return gochart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		YAxis: gochart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.1f%%", f)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []gochart.Renderable{
		gochart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
