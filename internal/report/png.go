package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tinytelemetry/outbreak/internal/format"
	"github.com/tinytelemetry/outbreak/internal/model"
	"github.com/tinytelemetry/outbreak/internal/series"
)

// WritePNG renders the history chart as a static PNG line chart.
func WritePNG(w io.Writer, h model.HistoryChart) error {
	if len(h.Labels) < 2 {
		return fmt.Errorf("render png report: need at least 2 points, have %d", len(h.Labels))
	}

	graph := chart.Chart{
		Title: "Worldwide",
		TitleStyle: chart.Style{
			FontSize:  16,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  1000,
		Height: 450,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return format.Compact(f)
				}
				return ""
			},
		},
	}

	for _, ds := range h.Datasets {
		if len(ds.Points) < 2 {
			return fmt.Errorf("render png report: %s needs at least 2 points, has %d", ds.Label, len(ds.Points))
		}
		stroke, err := strokeColor(ds.Color)
		if err != nil {
			return fmt.Errorf("render png report: %s: %w", ds.Label, err)
		}
		ts := chart.TimeSeries{
			Name: ds.Label,
			Style: chart.Style{
				StrokeColor: stroke,
				StrokeWidth: 2,
			},
			XValues: make([]time.Time, 0, len(ds.Points)),
			YValues: make([]float64, 0, len(ds.Points)),
		}
		for _, p := range ds.Points {
			day, err := series.ParseDate(p.Date)
			if err != nil {
				return fmt.Errorf("render png report: %s date %q: %w", ds.Label, p.Date, err)
			}
			ts.XValues = append(ts.XValues, day)
			ts.YValues = append(ts.YValues, float64(p.Value))
		}
		graph.Series = append(graph.Series, ts)
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render png report: %w", err)
	}
	return nil
}

// strokeColor parses a "#rgb" or "#rrggbb" color. An empty color leaves the
// zero value so go-chart picks a series color from its default palette.
func strokeColor(hex string) (drawing.Color, error) {
	if hex == "" {
		return drawing.Color{}, nil
	}
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 3 && len(h) != 6 {
		return drawing.Color{}, fmt.Errorf("invalid color %q", hex)
	}
	for _, r := range h {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return drawing.Color{}, fmt.Errorf("invalid color %q", hex)
		}
	}
	return drawing.ColorFromHex(h), nil
}
