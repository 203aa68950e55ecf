package model

import "context"

// StatsSource provides read-only access to the statistics API. Every call
// is exactly one upstream request.
type StatsSource interface {
	WorldHistory(ctx context.Context) (HistoryRecord, error)
	WorldSummary(ctx context.Context) (SummaryRecord, error)
	Countries(ctx context.Context) ([]CountryRecord, error)
	Continents(ctx context.Context) ([]ContinentRecord, error)
	Country(ctx context.Context, name string) (CountryRecord, error)
	CountryHistory(ctx context.Context, name string) (HistoryRecord, error)
}
