package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tinytelemetry/outbreak/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ptr[T any](v T) *T { return &v }

func stats(cases int64) model.StatsRecord {
	return model.StatsRecord{
		Cases: ptr(cases), TodayCases: ptr(int64(1)),
		Recovered: ptr(int64(0)), TodayRecovered: ptr(int64(0)),
		Deaths: ptr(int64(0)), TodayDeaths: ptr(int64(0)),
		Active: ptr(int64(0)), Critical: ptr(int64(0)),
	}
}

func datedSeries(n int) model.DatedCounts {
	out := make(model.DatedCounts, n)
	for i := range out {
		out[i] = model.DatedCount{Date: fmt.Sprintf("d%d", i), Value: int64(i)}
	}
	return out
}

// stubSource serves canned records; err, when set, is returned by every call.
type stubSource struct {
	countries int
	err       error
}

func (s stubSource) WorldHistory(context.Context) (model.HistoryRecord, error) {
	return model.HistoryRecord{Cases: datedSeries(61), Recovered: datedSeries(61), Deaths: datedSeries(61)}, s.err
}

func (s stubSource) WorldSummary(context.Context) (model.SummaryRecord, error) {
	return model.SummaryRecord{StatsRecord: stats(10), AffectedCountries: ptr(int64(2))}, s.err
}

func (s stubSource) Countries(context.Context) ([]model.CountryRecord, error) {
	out := make([]model.CountryRecord, s.countries)
	for i := range out {
		out[i] = model.CountryRecord{Country: ptr(fmt.Sprintf("c%d", i)), StatsRecord: model.StatsRecord{Cases: ptr(int64(i % 3))}}
	}
	return out, s.err
}

func (s stubSource) Continents(context.Context) ([]model.ContinentRecord, error) {
	return []model.ContinentRecord{{
		Continent:   ptr("Europe"),
		StatsRecord: model.StatsRecord{Cases: ptr(int64(3)), Recovered: ptr(int64(2)), Deaths: ptr(int64(1))},
	}}, s.err
}

func (s stubSource) Country(_ context.Context, name string) (model.CountryRecord, error) {
	if s.err != nil {
		return model.CountryRecord{}, s.err
	}
	if name != "usa" {
		return model.CountryRecord{}, &model.HTTPStatusError{URL: name, Code: http.StatusNotFound}
	}
	return model.CountryRecord{
		Country: ptr("USA"), Continent: ptr("North America"),
		CountryInfo: &model.CountryInfo{Flag: ptr("url")},
		StatsRecord: stats(100),
	}, nil
}

func (s stubSource) CountryHistory(context.Context, string) (model.HistoryRecord, error) {
	return model.HistoryRecord{Nested: &model.Timeline{Cases: datedSeries(3), Recovered: datedSeries(3), Deaths: datedSeries(3)}}, s.err
}

func get(t *testing.T, src model.StatsSource, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	reg := prometheus.NewRegistry()
	srv := NewServer("", src, reg)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	var body map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal %s: %v", path, err)
		}
	}
	return w, body
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	w, body := get(t, stubSource{}, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d, want %d", w.Code, http.StatusOK)
	}
	if body["status"] != "ok" {
		t.Errorf("health status = %v, want ok", body["status"])
	}
}

func TestSummaryEndpoint(t *testing.T) {
	t.Parallel()

	w, body := get(t, stubSource{}, "/api/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("summary status = %d", w.Code)
	}
	if body["cases"] != float64(10) || body["affectedCountries"] != float64(2) {
		t.Errorf("summary body = %v", body)
	}
}

func TestHistoryEndpoint_Decimates(t *testing.T) {
	t.Parallel()

	_, body := get(t, stubSource{}, "/api/history")
	labels, _ := body["labels"].([]any)
	if len(labels) != 3 {
		t.Fatalf("labels = %d, want 3 for 61 days", len(labels))
	}

	_, body = get(t, stubSource{}, "/api/history?full=true")
	labels, _ = body["labels"].([]any)
	if len(labels) != 61 {
		t.Fatalf("full labels = %d, want 61", len(labels))
	}
}

func TestCountriesEndpoint_Pages(t *testing.T) {
	t.Parallel()

	w, body := get(t, stubSource{countries: 23}, "/api/countries?page=2")
	if w.Code != http.StatusOK {
		t.Fatalf("countries status = %d", w.Code)
	}
	if body["pages"] != float64(3) || body["total"] != float64(23) {
		t.Errorf("pagination = %v/%v, want 3/23", body["pages"], body["total"])
	}
	rows, _ := body["rows"].([]any)
	if len(rows) != 3 {
		t.Fatalf("last page rows = %d, want 3", len(rows))
	}

	w, _ = get(t, stubSource{countries: 23}, "/api/countries?page=-1")
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative page status = %d, want 400", w.Code)
	}
}

func TestCountryEndpoint(t *testing.T) {
	t.Parallel()

	w, body := get(t, stubSource{}, "/api/countries/usa")
	if w.Code != http.StatusOK {
		t.Fatalf("country status = %d", w.Code)
	}
	identity, _ := body["identity"].(map[string]any)
	if identity["name"] != "USA" {
		t.Errorf("identity = %v", identity)
	}

	w, _ = get(t, stubSource{}, "/api/countries/xx")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown country status = %d, want 404", w.Code)
	}
}

func TestCountryHistoryEndpoint(t *testing.T) {
	t.Parallel()

	w, body := get(t, stubSource{}, "/api/countries/usa/history")
	if w.Code != http.StatusOK {
		t.Fatalf("country history status = %d", w.Code)
	}
	datasets, _ := body["datasets"].([]any)
	if len(datasets) != 3 {
		t.Errorf("datasets = %d, want 3", len(datasets))
	}
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	t.Parallel()

	src := stubSource{err: &model.NetworkError{URL: "x", Err: errors.New("refused")}}
	for _, path := range []string{"/api/summary", "/api/history", "/api/continents", "/api/countries"} {
		w, body := get(t, src, path)
		if w.Code != http.StatusBadGateway {
			t.Errorf("%s status = %d, want 502", path, w.Code)
		}
		if body["error"] == nil {
			t.Errorf("%s should report the error", path)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	w, _ := get(t, stubSource{}, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
}

func TestStartStop(t *testing.T) {
	t.Parallel()

	srv := NewServer("127.0.0.1:0", stubSource{}, prometheus.NewRegistry())
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	resp, err := http.Get("http://" + srv.Addr() + "/api/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}
	if err := srv.Stop(); err != nil {
		t.Errorf("Stop: %v", err)
	}
}
