package diseaseapi

import (
	"context"

	"github.com/tinytelemetry/outbreak/internal/model"
)

var _ model.StatsSource = (*Client)(nil)

// WorldHistory fetches the global all-time series.
func (c *Client) WorldHistory(ctx context.Context) (model.HistoryRecord, error) {
	var rec model.HistoryRecord
	err := c.getJSON(ctx, EndpointWorldHistory, c.endpoints.WorldHistory(), &rec)
	return rec, err
}

// WorldSummary fetches the global current snapshot.
func (c *Client) WorldSummary(ctx context.Context) (model.SummaryRecord, error) {
	var rec model.SummaryRecord
	err := c.getJSON(ctx, EndpointWorldSummary, c.endpoints.WorldSummary(), &rec)
	return rec, err
}

// Countries fetches the per-country current list.
func (c *Client) Countries(ctx context.Context) ([]model.CountryRecord, error) {
	var recs []model.CountryRecord
	err := c.getJSON(ctx, EndpointCountries, c.endpoints.Countries(), &recs)
	return recs, err
}

// Continents fetches the per-continent current list.
func (c *Client) Continents(ctx context.Context) ([]model.ContinentRecord, error) {
	var recs []model.ContinentRecord
	err := c.getJSON(ctx, EndpointContinents, c.endpoints.Continents(), &recs)
	return recs, err
}

// Country fetches a single country's snapshot. Unknown names surface as a
// 404 HTTPStatusError from the server; no local validation is done.
func (c *Client) Country(ctx context.Context, name string) (model.CountryRecord, error) {
	var rec model.CountryRecord
	err := c.getJSON(ctx, EndpointCountry, c.endpoints.Country(name), &rec)
	return rec, err
}

// CountryHistory fetches a single country's all-time series.
func (c *Client) CountryHistory(ctx context.Context, name string) (model.HistoryRecord, error) {
	var rec model.HistoryRecord
	err := c.getJSON(ctx, EndpointCountryHistory, c.endpoints.CountryHistory(name), &rec)
	return rec, err
}
