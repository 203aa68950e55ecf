// Package report renders a one-shot snapshot of the worldwide views to
// files: an interactive HTML page and a PNG of the history chart.
package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tinytelemetry/outbreak/internal/logger"
	"github.com/tinytelemetry/outbreak/internal/model"
	"github.com/tinytelemetry/outbreak/internal/series"
)

// Data is everything a report shows, already transformed.
type Data struct {
	GeneratedAt time.Time
	Summary     model.Summary
	History     model.HistoryChart
	Continents  model.ContinentChart
	Countries   model.CountryTable
}

// Collect fetches the four worldwide views concurrently. The first failure
// cancels the others and is returned.
func Collect(ctx context.Context, src model.StatsSource) (Data, error) {
	log := logger.Get().Component("report")
	start := time.Now()

	d := Data{GeneratedAt: start}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rec, err := src.WorldSummary(ctx)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		d.Summary, err = series.Summary(rec)
		return wrap("summary", err)
	})
	g.Go(func() error {
		rec, err := src.WorldHistory(ctx)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}
		d.History, err = series.HistoryChart(rec, true)
		return wrap("history", err)
	})
	g.Go(func() error {
		recs, err := src.Continents(ctx)
		if err != nil {
			return fmt.Errorf("continents: %w", err)
		}
		d.Continents, err = series.ContinentChart(recs)
		return wrap("continents", err)
	})
	g.Go(func() error {
		recs, err := src.Countries(ctx)
		if err != nil {
			return fmt.Errorf("countries: %w", err)
		}
		d.Countries, err = series.CountryTable(recs)
		return wrap("countries", err)
	})

	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("report collection failed")
		return Data{}, err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("report data collected")
	return d, nil
}

func wrap(view string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", view, err)
}
