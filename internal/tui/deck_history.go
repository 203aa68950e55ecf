package tui

import (
	"context"
	"strings"
	"time"

	"github.com/tinytelemetry/outbreak/internal/format"
	"github.com/tinytelemetry/outbreak/internal/model"
	"github.com/tinytelemetry/outbreak/internal/series"

	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HistoryDeck plots a decimated cumulative history as three lines.
type HistoryDeck struct {
	title   string
	binding fetchBinding[model.HistoryChart]
}

// NewWorldHistoryDeck charts the global all-time series.
func NewWorldHistoryDeck() *HistoryDeck {
	return newHistoryDeck("world-history", "Worldwide History", func(ctx context.Context, src model.StatsSource) (model.HistoryChart, error) {
		rec, err := src.WorldHistory(ctx)
		if err != nil {
			return model.HistoryChart{}, err
		}
		return series.HistoryChart(rec, true)
	})
}

// NewCountryHistoryDeck charts one country's all-time series.
func NewCountryHistoryDeck(id, country string) *HistoryDeck {
	return newHistoryDeck(id, "History", func(ctx context.Context, src model.StatsSource) (model.HistoryChart, error) {
		rec, err := src.CountryHistory(ctx, country)
		if err != nil {
			return model.HistoryChart{}, err
		}
		return series.HistoryChart(rec, true)
	})
}

func newHistoryDeck(id, title string, fetch fetchFunc[model.HistoryChart]) *HistoryDeck {
	return &HistoryDeck{
		title:   title,
		binding: fetchBinding[model.HistoryChart]{id: id, fetch: fetch},
	}
}

func (d *HistoryDeck) ID() string    { return d.binding.id }
func (d *HistoryDeck) Title() string { return d.title }

func (d *HistoryDeck) Mount(src model.StatsSource) tea.Cmd { return d.binding.mount(src) }

func (d *HistoryDeck) Apply(msg DeckDataMsg) (bool, tea.Cmd) {
	return d.binding.apply(msg), nil
}

func (d *HistoryDeck) Unmount() { d.binding.view.Unmount() }

func (d *HistoryDeck) Loading() bool { return d.binding.loading() }

func (d *HistoryDeck) Owns(deckID string) bool { return deckID == d.binding.id }

func (d *HistoryDeck) State() model.FetchState[model.HistoryChart] { return d.binding.state() }

func (d *HistoryDeck) ContentLines(ctx ViewContext) int {
	if ctx.ContentWidth < 80 {
		return 10
	}
	return 14
}

func (d *HistoryDeck) ItemCount() int { return 0 }

// OnSelect shows the failure behind an unavailable deck.
func (d *HistoryDeck) OnSelect(_ ViewContext, _ int) tea.Cmd {
	return failureDetail(d.title, d.binding.state())
}

func (d *HistoryDeck) Render(ctx ViewContext, width, height int, active bool, _ int) string {
	body := d.renderBody(ctx, width-4, height-3)
	return renderDeckFrame(ctx, deckTitleWithBadges(d.title, ctx), body, width, height, active)
}

// renderBody renders the chart without a frame, for embedding.
func (d *HistoryDeck) renderBody(ctx ViewContext, width, height int) string {
	width = max(width, 10)
	height = max(height, 3)

	state := d.binding.state()
	switch state.Status() {
	case model.StatusReady:
		chart, _ := state.Payload()
		return renderHistoryChart(ctx.Theme, chart, width, height)
	case model.StatusFailed:
		return renderUnavailable(ctx.Theme, width, height, state.Err())
	default:
		return renderLoadingPlaceholder(ctx.Theme, width, height)
	}
}

// renderHistoryChart draws each dataset in its own color over a shared
// date axis, with a legend on the first line.
func renderHistoryChart(theme Theme, chart model.HistoryChart, width, height int) string {
	legend := renderLegend(chart)

	type dated struct {
		at    time.Time
		value float64
	}
	sets := make([][]dated, len(chart.Datasets))
	var minT, maxT time.Time
	var maxV float64
	for i, ds := range chart.Datasets {
		for _, p := range ds.Points {
			at, err := series.ParseDate(p.Date)
			if err != nil {
				continue
			}
			if minT.IsZero() || at.Before(minT) {
				minT = at
			}
			if at.After(maxT) {
				maxT = at
			}
			maxV = max(maxV, float64(p.Value))
			sets[i] = append(sets[i], dated{at: at, value: float64(p.Value)})
		}
	}

	if minT.IsZero() {
		return lipgloss.JoinVertical(lipgloss.Left, legend, theme.Help.Render("No data available"))
	}
	if !maxT.After(minT) {
		maxT = minT.Add(24 * time.Hour)
	}
	if maxV <= 0 {
		maxV = 1
	}

	lc := timeserieslinechart.New(width, max(height-1, 2),
		timeserieslinechart.WithTimeRange(minT, maxT),
		timeserieslinechart.WithYRange(0, maxV),
		timeserieslinechart.WithYLabelFormatter(compactLabel),
		timeserieslinechart.WithAxesStyles(theme.Help, theme.Help),
	)
	for i, ds := range chart.Datasets {
		lc.SetDataSetStyle(ds.Label, lipgloss.NewStyle().Foreground(lipgloss.Color(ds.Color)))
		for _, p := range sets[i] {
			lc.PushDataSet(ds.Label, timeserieslinechart.TimePoint{Time: p.at, Value: p.value})
		}
	}
	lc.DrawBrailleAll()

	return lipgloss.JoinVertical(lipgloss.Left, legend, lc.View())
}

func renderLegend(chart model.HistoryChart) string {
	parts := make([]string, 0, len(chart.Datasets))
	for _, ds := range chart.Datasets {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(ds.Color)).Render("■")
		parts = append(parts, swatch+" "+ds.Label)
	}
	return strings.Join(parts, "  ")
}

var _ linechart.LabelFormatter = compactLabel

// compactLabel shortens axis values: 1500000 -> "1.5M".
func compactLabel(_ int, v float64) string {
	return format.Compact(v)
}
