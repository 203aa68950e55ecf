// Package series reshapes raw API records into chart- and table-ready
// structures. Every function is pure and reports absent fields as
// *model.SchemaError instead of panicking.
package series

import (
	"time"

	"github.com/tinytelemetry/outbreak/internal/model"
)

// Decimate keeps the elements whose zero-based position is a multiple of
// stride. It is a positional stride, not a time-window aggregate: the
// retained dates are irregular near the tail when len(in) is not a multiple
// of stride, and everything in between is dropped.
func Decimate[T any](in []T, stride int) []T {
	if stride <= 1 {
		return append([]T(nil), in...)
	}
	out := make([]T, 0, (len(in)+stride-1)/stride)
	for i := 0; i < len(in); i += stride {
		out = append(out, in[i])
	}
	return out
}

// ToTimeSeries converts a dated mapping into ordered points. With decimate
// set, only every model.DecimationStride-th point is kept, yielding
// ceil(k/30) points for k inputs.
func ToTimeSeries(raw model.DatedCounts, decimate bool) ([]model.TimeSeriesPoint, error) {
	if raw == nil {
		return nil, model.MissingField("series")
	}

	points := make([]model.TimeSeriesPoint, len(raw))
	for i, dc := range raw {
		points[i] = model.TimeSeriesPoint{Date: dc.Date, Value: dc.Value}
	}

	if decimate {
		points = Decimate(points, model.DecimationStride)
	}
	return points, nil
}

// HistoryChart builds the three-line chart for a historical record. Both the
// flat and the "timeline"-nested shapes are accepted.
func HistoryChart(rec model.HistoryRecord, decimate bool) (model.HistoryChart, error) {
	tl := rec.Series()

	specs := []struct {
		field string
		label string
		color string
		raw   model.DatedCounts
	}{
		{"cases", model.LabelCases, model.ColorCases, tl.Cases},
		{"recovered", model.LabelRecovered, model.ColorRecovered, tl.Recovered},
		{"deaths", model.LabelDeaths, model.ColorDeaths, tl.Deaths},
	}

	chart := model.HistoryChart{Datasets: make([]model.ChartDataset, 0, len(specs))}
	for _, s := range specs {
		points, err := ToTimeSeries(s.raw, decimate)
		if err != nil {
			return model.HistoryChart{}, model.MissingField(timelineField(rec, s.field))
		}
		chart.Datasets = append(chart.Datasets, model.ChartDataset{
			Label:  s.label,
			Color:  s.color,
			Points: points,
		})
	}

	cases := chart.Datasets[0].Points
	chart.Labels = make([]string, len(cases))
	for i, p := range cases {
		chart.Labels[i] = p.Date
	}
	return chart, nil
}

func timelineField(rec model.HistoryRecord, field string) string {
	if rec.Nested != nil {
		return "timeline." + field
	}
	return field
}

// dateLayout is the API's date key format, e.g. "1/22/20".
const dateLayout = "1/2/06"

// ParseDate parses an API date key.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
