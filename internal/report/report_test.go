package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/outbreak/internal/model"
)

func ptr[T any](v T) *T { return &v }

func days(n int) model.DatedCounts {
	out := make(model.DatedCounts, n)
	start := time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = model.DatedCount{Date: start.AddDate(0, 0, i).Format("1/2/06"), Value: int64(i * i)}
	}
	return out
}

type fakeSource struct {
	calls   atomic.Int32
	failing string
}

func (f *fakeSource) check(view string) error {
	f.calls.Add(1)
	if view == f.failing {
		return &model.HTTPStatusError{URL: view, Code: 500}
	}
	return nil
}

func (f *fakeSource) WorldHistory(context.Context) (model.HistoryRecord, error) {
	return model.HistoryRecord{Cases: days(90), Recovered: days(90), Deaths: days(90)}, f.check("history")
}

func (f *fakeSource) WorldSummary(context.Context) (model.SummaryRecord, error) {
	one := ptr(int64(1))
	return model.SummaryRecord{
		StatsRecord: model.StatsRecord{
			Cases: ptr(int64(1234567)), TodayCases: one, Recovered: one, TodayRecovered: one,
			Deaths: one, TodayDeaths: one, Active: one, Critical: one,
		},
		AffectedCountries: ptr(int64(231)),
	}, f.check("summary")
}

func (f *fakeSource) Countries(context.Context) ([]model.CountryRecord, error) {
	return []model.CountryRecord{
		{Country: ptr("Atlantis"), StatsRecord: model.StatsRecord{Cases: ptr(int64(5))}},
		{Country: ptr("Lemuria"), StatsRecord: model.StatsRecord{Cases: ptr(int64(10))}},
	}, f.check("countries")
}

func (f *fakeSource) Continents(context.Context) ([]model.ContinentRecord, error) {
	return []model.ContinentRecord{{
		Continent:   ptr("Europe"),
		StatsRecord: model.StatsRecord{Cases: ptr(int64(3)), Recovered: ptr(int64(2)), Deaths: ptr(int64(1))},
	}}, f.check("continents")
}

func (f *fakeSource) Country(context.Context, string) (model.CountryRecord, error) {
	return model.CountryRecord{}, errors.New("not used")
}

func (f *fakeSource) CountryHistory(context.Context, string) (model.HistoryRecord, error) {
	return model.HistoryRecord{}, errors.New("not used")
}

func TestCollect(t *testing.T) {
	src := &fakeSource{}

	d, err := Collect(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, int32(4), src.calls.Load())
	assert.Equal(t, int64(231), d.Summary.AffectedCountries)
	assert.Len(t, d.History.Labels, 3)
	assert.Equal(t, []string{"Europe"}, d.Continents.Labels)
	require.Len(t, d.Countries.Rows, 2)
	assert.Equal(t, "Lemuria", d.Countries.Rows[0].Country)
}

func TestCollect_FailureIsReported(t *testing.T) {
	src := &fakeSource{failing: "continents"}

	_, err := Collect(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "continents")

	var statusErr *model.HTTPStatusError
	assert.True(t, errors.As(err, &statusErr))
}

func TestWriteHTML(t *testing.T) {
	d, err := Collect(context.Background(), &fakeSource{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, d, "en-US"))

	html := buf.String()
	assert.True(t, strings.Contains(html, "echarts"), "page should load echarts")
	for _, want := range []string{"Worldwide", "Continents", "Lemuria", "Affected Countries: 231", "1,234,567"} {
		assert.Contains(t, html, want)
	}
}

func TestWritePNG(t *testing.T) {
	d, err := Collect(context.Background(), &fakeSource{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, d.History))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "output should be a PNG")
}

func TestWritePNG_RejectsBadInput(t *testing.T) {
	two := func(a, b string) []model.TimeSeriesPoint {
		return []model.TimeSeriesPoint{{Date: a, Value: 1}, {Date: b, Value: 2}}
	}
	labels := []string{"1/22/20", "1/23/20"}

	tests := []struct {
		name string
		in   model.HistoryChart
	}{
		{"one label", model.HistoryChart{Labels: []string{"1/22/20"}}},
		{"bad dates", model.HistoryChart{Labels: []string{"a", "b"}, Datasets: []model.ChartDataset{{Label: "Cases", Points: two("a", "b")}}}},
		{"one point", model.HistoryChart{Labels: labels, Datasets: []model.ChartDataset{{Label: "Cases", Points: two("1/22/20", "1/23/20")[:1]}}}},
		{"bad color", model.HistoryChart{Labels: labels, Datasets: []model.ChartDataset{{Label: "Cases", Color: "#12", Points: two("1/22/20", "1/23/20")}}}},
		{"non-hex color", model.HistoryChart{Labels: labels, Datasets: []model.ChartDataset{{Label: "Cases", Color: "#zzzzzz", Points: two("1/22/20", "1/23/20")}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Error(t, WritePNG(&buf, tt.in))
		})
	}
}

func TestWritePNG_EmptyColorUsesDefaultPalette(t *testing.T) {
	in := model.HistoryChart{
		Labels: []string{"1/22/20", "1/23/20"},
		Datasets: []model.ChartDataset{{
			Label:  "Cases",
			Points: []model.TimeSeriesPoint{{Date: "1/22/20", Value: 1}, {Date: "1/23/20", Value: 2}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, in))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}
