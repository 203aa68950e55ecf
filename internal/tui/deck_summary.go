package tui

import (
	"context"
	"strings"

	"github.com/tinytelemetry/outbreak/internal/format"
	"github.com/tinytelemetry/outbreak/internal/model"
	"github.com/tinytelemetry/outbreak/internal/series"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SummaryDeck shows the worldwide snapshot.
type SummaryDeck struct {
	binding fetchBinding[model.Summary]
}

// NewSummaryDeck creates the worldwide summary deck.
func NewSummaryDeck() *SummaryDeck {
	return &SummaryDeck{binding: fetchBinding[model.Summary]{
		id: "world-summary",
		fetch: func(ctx context.Context, src model.StatsSource) (model.Summary, error) {
			rec, err := src.WorldSummary(ctx)
			if err != nil {
				return model.Summary{}, err
			}
			return series.Summary(rec)
		},
	}}
}

func (d *SummaryDeck) ID() string    { return d.binding.id }
func (d *SummaryDeck) Title() string { return "Worldwide" }

func (d *SummaryDeck) Mount(src model.StatsSource) tea.Cmd { return d.binding.mount(src) }

func (d *SummaryDeck) Apply(msg DeckDataMsg) (bool, tea.Cmd) {
	return d.binding.apply(msg), nil
}

func (d *SummaryDeck) Unmount() { d.binding.view.Unmount() }

func (d *SummaryDeck) Loading() bool { return d.binding.loading() }

func (d *SummaryDeck) Owns(deckID string) bool { return deckID == d.binding.id }

func (d *SummaryDeck) ContentLines(_ ViewContext) int { return 9 }

func (d *SummaryDeck) ItemCount() int { return 0 }

// OnSelect shows the failure behind an unavailable deck.
func (d *SummaryDeck) OnSelect(_ ViewContext, _ int) tea.Cmd {
	return failureDetail(d.Title(), d.binding.state())
}

func (d *SummaryDeck) Render(ctx ViewContext, width, height int, active bool, _ int) string {
	inner, innerH := width-4, height-3

	var body string
	state := d.binding.state()
	switch state.Status() {
	case model.StatusReady:
		s, _ := state.Payload()
		body = renderStatLines(ctx.Theme, format.SummaryLines(s, ctx.Locale), inner)
	case model.StatusFailed:
		body = renderUnavailable(ctx.Theme, inner, innerH, state.Err())
	default:
		body = renderLoadingPlaceholder(ctx.Theme, inner, innerH)
	}
	return renderDeckFrame(ctx, deckTitleWithBadges("Worldwide", ctx), body, width, height, active)
}

// renderStatLines renders "Label: value" lines with the value right-aligned.
func renderStatLines(theme Theme, lines []format.StatLine, width int) string {
	labelWidth := 0
	for _, l := range lines {
		labelWidth = max(labelWidth, lipgloss.Width(l.Label)+1)
	}

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		valueStyle := theme.Value
		if l.Delta {
			valueStyle = theme.Delta
		}
		label := theme.Label.Render(l.Label + ":")
		pad := max(1, min(width, labelWidth+20)-lipgloss.Width(l.Label)-1-lipgloss.Width(l.Value))
		out = append(out, label+strings.Repeat(" ", pad)+valueStyle.Render(l.Value))
	}
	return strings.Join(out, "\n")
}
