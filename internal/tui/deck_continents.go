package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/tinytelemetry/outbreak/internal/format"
	"github.com/tinytelemetry/outbreak/internal/model"
	"github.com/tinytelemetry/outbreak/internal/series"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ContinentsDeck shows cases, recovered and deaths per continent as grouped
// bars. The selected continent's figures are listed in the legend.
type ContinentsDeck struct {
	binding fetchBinding[model.ContinentChart]
}

// NewContinentsDeck creates the continent breakdown deck.
func NewContinentsDeck() *ContinentsDeck {
	return &ContinentsDeck{binding: fetchBinding[model.ContinentChart]{
		id: "continents",
		fetch: func(ctx context.Context, src model.StatsSource) (model.ContinentChart, error) {
			recs, err := src.Continents(ctx)
			if err != nil {
				return model.ContinentChart{}, err
			}
			return series.ContinentChart(recs)
		},
	}}
}

func (d *ContinentsDeck) ID() string    { return d.binding.id }
func (d *ContinentsDeck) Title() string { return "Continents" }

func (d *ContinentsDeck) Mount(src model.StatsSource) tea.Cmd { return d.binding.mount(src) }

func (d *ContinentsDeck) Apply(msg DeckDataMsg) (bool, tea.Cmd) {
	return d.binding.apply(msg), nil
}

func (d *ContinentsDeck) Unmount() { d.binding.view.Unmount() }

func (d *ContinentsDeck) Loading() bool { return d.binding.loading() }

func (d *ContinentsDeck) Owns(deckID string) bool { return deckID == d.binding.id }

func (d *ContinentsDeck) ContentLines(ctx ViewContext) int {
	if ctx.ContentWidth < 80 {
		return 8
	}
	return 12
}

func (d *ContinentsDeck) ItemCount() int {
	chart, _ := d.binding.state().Payload()
	return len(chart.Labels)
}

// OnSelect shows the failure behind an unavailable deck.
func (d *ContinentsDeck) OnSelect(_ ViewContext, _ int) tea.Cmd {
	return failureDetail(d.Title(), d.binding.state())
}

func (d *ContinentsDeck) Render(ctx ViewContext, width, height int, active bool, selIdx int) string {
	inner, innerH := width-4, height-3

	var body string
	state := d.binding.state()
	switch state.Status() {
	case model.StatusReady:
		chart, _ := state.Payload()
		body = renderContinentChart(ctx, chart, inner, innerH, selIdx)
	case model.StatusFailed:
		body = renderUnavailable(ctx.Theme, inner, innerH, state.Err())
	default:
		body = renderLoadingPlaceholder(ctx.Theme, inner, innerH)
	}
	return renderDeckFrame(ctx, deckTitleWithBadges("Continents", ctx), body, width, height, active)
}

func renderContinentChart(ctx ViewContext, chart model.ContinentChart, width, height, selIdx int) string {
	if len(chart.Labels) == 0 {
		return ctx.Theme.Help.Render("No data available")
	}

	legendWidth := 30
	chartWidth := max(width-legendWidth-2, 12)
	chartHeight := max(height, 4)

	groups := len(chart.Labels)
	// Each continent gets one bar per dataset plus a spacer bar.
	barWidth := max(1, chartWidth/(groups*(len(chart.Datasets)+1)))

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(0),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)

	spacer := barchart.BarData{Values: []barchart.BarValue{{Name: "", Value: 0}}}
	for i := range chart.Labels {
		for _, ds := range chart.Datasets {
			color := lipgloss.Color(ds.Color)
			style := lipgloss.NewStyle().Foreground(color).Background(color)
			if i != selIdx && selIdx >= 0 {
				style = style.Faint(true)
			}
			bc.Push(barchart.BarData{Values: []barchart.BarValue{{
				Name:  ds.Label,
				Value: float64(ds.Values[i]),
				Style: style,
			}}})
		}
		bc.Push(spacer)
	}
	bc.Draw()

	sel := min(max(selIdx, 0), groups-1)
	legend := []string{ctx.Theme.DeckTitle.Render(chart.Labels[sel]), ""}
	for _, ds := range chart.Datasets {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(ds.Color)).Render("■")
		legend = append(legend, fmt.Sprintf("%s %-10s %s", swatch, ds.Label, format.Number(ds.Values[sel], ctx.Locale)))
	}
	legend = append(legend, "", ctx.Theme.Help.Render(strings.Join(chart.Labels, " · ")))

	legendBlock := lipgloss.NewStyle().Width(legendWidth).Render(strings.Join(legend, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, bc.View(), "  ", legendBlock)
}
