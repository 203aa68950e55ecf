package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/tinytelemetry/outbreak/internal/format"
	"github.com/tinytelemetry/outbreak/internal/lifecycle"
	"github.com/tinytelemetry/outbreak/internal/model"
	"github.com/tinytelemetry/outbreak/internal/series"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	trackerDeckID        = "tracker"
	trackerHistoryPrefix = "tracker-history-"
)

// TrackerDeck looks up a single country on demand. Typing edits the input;
// Enter commits it. A successful lookup mounts a history chart for that
// country, replacing the previous one.
type TrackerDeck struct {
	tracker *lifecycle.Tracker
	input   textinput.Model
	src     model.StatsSource

	history    *HistoryDeck
	historySeq int
}

// NewTrackerDeck creates an idle tracker deck.
func NewTrackerDeck() *TrackerDeck {
	in := textinput.New()
	in.Placeholder = "Country name, e.g. usa"
	in.Prompt = "Country: "
	in.CharLimit = 64

	return &TrackerDeck{
		tracker: lifecycle.NewTracker(),
		input:   in,
	}
}

func (d *TrackerDeck) ID() string    { return trackerDeckID }
func (d *TrackerDeck) Title() string { return "Tracker" }

// FullRow keeps the lookup form and its chart at full width.
func (d *TrackerDeck) FullRow() bool { return true }

// Tracker exposes the lookup state machine.
func (d *TrackerDeck) Tracker() *lifecycle.Tracker { return d.tracker }

// Mount records the source; nothing is fetched until a commit.
func (d *TrackerDeck) Mount(src model.StatsSource) tea.Cmd {
	d.src = src
	return nil
}

func (d *TrackerDeck) Owns(deckID string) bool {
	return deckID == trackerDeckID || strings.HasPrefix(deckID, trackerHistoryPrefix)
}

// Focus puts the cursor in the input.
func (d *TrackerDeck) Focus() tea.Cmd { return d.input.Focus() }

func (d *TrackerDeck) Blur() { d.input.Blur() }

func (d *TrackerDeck) Focused() bool { return d.input.Focused() }

// SetInput replaces the input text. It is ignored while a lookup runs.
func (d *TrackerDeck) SetInput(s string) {
	if d.tracker.SetInput(s) {
		d.input.SetValue(s)
	}
}

// UpdateInput feeds a key to the text input.
func (d *TrackerDeck) UpdateInput(msg tea.Msg) tea.Cmd {
	if d.tracker.Loading() {
		return nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	d.tracker.SetInput(d.input.Value())
	return cmd
}

// Commit starts a lookup for the input if it differs from the last
// committed country.
func (d *TrackerDeck) Commit() tea.Cmd {
	ticket, country, ok := d.tracker.Commit()
	if !ok {
		return nil
	}
	d.input.Blur()

	src := d.src
	return func() tea.Msg {
		var snap model.CountrySnapshot
		rec, err := src.Country(context.Background(), country)
		if err == nil {
			snap, err = series.Snapshot(rec)
		}
		return DeckDataMsg{DeckID: trackerDeckID, Ticket: ticket, Data: snap, Err: err}
	}
}

// Apply resolves the lookup or routes a result to the current country
// history. Results for a superseded lookup or history are not applied.
func (d *TrackerDeck) Apply(msg DeckDataMsg) (bool, tea.Cmd) {
	if msg.DeckID != trackerDeckID {
		if d.history != nil && d.history.Owns(msg.DeckID) {
			return d.history.Apply(msg)
		}
		return false, nil
	}

	snap, _ := msg.Data.(model.CountrySnapshot)
	if !d.tracker.Resolve(msg.Ticket, snap, msg.Err) {
		return false, nil
	}

	d.dropHistory()
	if d.tracker.State().Status() != model.StatusReady {
		return true, nil
	}
	d.historySeq++
	d.history = NewCountryHistoryDeck(fmt.Sprintf("%s%d", trackerHistoryPrefix, d.historySeq), d.tracker.Committed())
	return true, d.history.Mount(d.src)
}

func (d *TrackerDeck) dropHistory() {
	if d.history != nil {
		d.history.Unmount()
		d.history = nil
	}
}

// Loading reports whether the lookup or the country history is in flight.
func (d *TrackerDeck) Loading() bool {
	return d.tracker.Loading() || (d.history != nil && d.history.Loading())
}

func (d *TrackerDeck) Unmount() {
	d.tracker.Unmount()
	d.dropHistory()
}

func (d *TrackerDeck) ContentLines(_ ViewContext) int { return 24 }

func (d *TrackerDeck) ItemCount() int { return 0 }

func (d *TrackerDeck) OnSelect(_ ViewContext, _ int) tea.Cmd {
	return actionMsg(ActionMsg{Action: ActionFocusTracker})
}

func (d *TrackerDeck) Render(ctx ViewContext, width, height int, active bool, _ int) string {
	inner := max(width-4, 20)
	form := d.renderForm(ctx.Theme, inner)
	bodyHeight := max(height-3-lipgloss.Height(form)-1, 3)

	var body string
	switch d.tracker.Display() {
	case lifecycle.DisplayProgress:
		body = renderLoadingPlaceholder(ctx.Theme, inner, bodyHeight)
	case lifecycle.DisplayCountry:
		snap, _ := d.tracker.State().Payload()
		body = d.renderCountry(ctx, snap, inner, bodyHeight)
	default:
		body = lipgloss.Place(inner, bodyHeight, lipgloss.Center, lipgloss.Center,
			ctx.Theme.Help.Italic(true).Render(lifecycle.NothingToShow))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, form, "", body)
	return renderDeckFrame(ctx, deckTitleWithBadges("Track a Country", ctx), content, width, height, active)
}

// renderForm draws the input with its track button. The input border turns
// red when the last lookup failed; the button is dimmed when disabled.
func (d *TrackerDeck) renderForm(theme Theme, width int) string {
	border := theme.Border
	switch {
	case d.tracker.ErrorFlag():
		border = theme.Error
	case d.input.Focused():
		border = theme.Primary
	}

	buttonText := " Track "
	button := lipgloss.NewStyle().Foreground(theme.Muted).Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border).Render(buttonText)
	if d.tracker.CanCommit() {
		button = lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Border(lipgloss.RoundedBorder()).BorderForeground(theme.Primary).Render(buttonText)
	}

	inputWidth := max(width-lipgloss.Width(button)-3, 10)
	d.input.Width = inputWidth - len(d.input.Prompt) - 3
	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(inputWidth).
		Render(d.input.View())

	row := lipgloss.JoinHorizontal(lipgloss.Top, field, " ", button)
	if d.tracker.ErrorFlag() {
		row = lipgloss.JoinVertical(lipgloss.Left, row, theme.ErrorText.Render("Country not found or lookup failed"))
	}
	return row
}

func (d *TrackerDeck) renderCountry(ctx ViewContext, snap model.CountrySnapshot, width, height int) string {
	theme := ctx.Theme
	card := lipgloss.JoinVertical(lipgloss.Left,
		theme.Value.Render(snap.Identity.Name),
		theme.Label.Render(snap.Identity.Continent),
		theme.Help.Render("Flag: "+snap.Identity.FlagURL),
		"",
		renderStatLines(theme, format.StatLines(snap.Stats, ctx.Locale), 36),
	)

	if d.history == nil {
		return card
	}

	cardWidth := lipgloss.Width(card)
	if width >= cardWidth+40 {
		chart := d.history.renderBody(ctx, width-cardWidth-3, height)
		return lipgloss.JoinHorizontal(lipgloss.Top, card, "   ", chart)
	}
	chartHeight := max(height-lipgloss.Height(card)-1, 4)
	return lipgloss.JoinVertical(lipgloss.Left, card, "", d.history.renderBody(ctx, width, chartHeight))
}
