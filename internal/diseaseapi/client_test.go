package diseaseapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinytelemetry/outbreak/internal/model"
)

const usaBody = `{"country":"USA","continent":"North America","countryInfo":{"flag":"url"},` +
	`"cases":100,"todayCases":1,"recovered":90,"todayRecovered":1,"deaths":2,"todayDeaths":0,"active":8,"critical":1}`

func newTestAPI(t *testing.T, handler http.HandlerFunc) (*Client, *Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := NewMetrics(prometheus.NewRegistry())
	return New(srv.URL, WithMetrics(m)), m
}

func TestEndpoints(t *testing.T) {
	e := NewEndpoints("https://disease.sh/")

	assert.Equal(t, "https://disease.sh/v3/covid-19/historical/all?lastdays=all", e.WorldHistory())
	assert.Equal(t, "https://disease.sh/v3/covid-19/all", e.WorldSummary())
	assert.Equal(t, "https://disease.sh/v3/covid-19/countries", e.Countries())
	assert.Equal(t, "https://disease.sh/v3/covid-19/continents", e.Continents())
	assert.Equal(t, "https://disease.sh/v3/covid-19/countries/usa", e.Country("usa"))
	assert.Equal(t, "https://disease.sh/v3/covid-19/historical/usa?lastdays=all", e.CountryHistory("usa"))
	assert.Equal(t, "https://disease.sh/v3/covid-19/countries/south%20africa", e.Country("south africa"))
}

func TestCountry_OK(t *testing.T) {
	var gotPath string
	c, m := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(usaBody))
	})

	rec, err := c.Country(context.Background(), "usa")
	require.NoError(t, err)

	assert.Equal(t, "/v3/covid-19/countries/usa", gotPath)
	require.NotNil(t, rec.Country)
	assert.Equal(t, "USA", *rec.Country)
	require.NotNil(t, rec.CountryInfo)
	assert.Equal(t, "url", *rec.CountryInfo.Flag)
	assert.Equal(t, int64(100), *rec.Cases)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(EndpointCountry, outcomeOK)))
}

func TestCountry_NotFoundIsHTTPStatusError(t *testing.T) {
	c, m := newTestAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Country not found or doesn't have any cases"}`))
	})

	_, err := c.Country(context.Background(), "xx")
	require.Error(t, err)

	var statusErr *model.HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.True(t, model.IsNotFound(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(EndpointCountry, outcomeStatus)))
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(url)
	_, err := c.WorldSummary(context.Background())
	require.Error(t, err)

	var netErr *model.NetworkError
	assert.True(t, errors.As(err, &netErr), "got %T", err)
}

func TestFetch_CancelledContextIsNetworkError(t *testing.T) {
	c, _ := newTestAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.WorldSummary(ctx)
	var netErr *model.NetworkError
	assert.True(t, errors.As(err, &netErr), "got %v", err)
}

func TestGetJSON_MalformedBodyIsSchemaError(t *testing.T) {
	c, m := newTestAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	})

	_, err := c.Countries(context.Background())
	var schemaErr *model.SchemaError
	assert.True(t, errors.As(err, &schemaErr), "got %v", err)

	// One request, one outcome.
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(EndpointCountries, outcomeSchema)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.InFlight))
}

func TestFetch_NoRetry(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Continents(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWorldHistory_PreservesOrder(t *testing.T) {
	c, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all", r.URL.Query().Get("lastdays"))
		_, _ = w.Write([]byte(`{"cases":{"12/31/20":3,"1/1/21":4},"recovered":{"12/31/20":1,"1/1/21":1},"deaths":{"12/31/20":0,"1/1/21":1}}`))
	})

	rec, err := c.WorldHistory(context.Background())
	require.NoError(t, err)
	series := rec.Series()
	require.Len(t, series.Cases, 2)
	assert.Equal(t, "12/31/20", series.Cases[0].Date)
	assert.Equal(t, "1/1/21", series.Cases[1].Date)
}
