package tui

import (
	"context"
	"fmt"

	"github.com/tinytelemetry/outbreak/internal/format"
	"github.com/tinytelemetry/outbreak/internal/model"
	"github.com/tinytelemetry/outbreak/internal/series"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// cellWidth converts a column width in pixels to terminal cells.
const cellWidth = 8

// CountriesDeck is the per-country table, sorted by cases and paged
// client-side.
type CountriesDeck struct {
	binding fetchBinding[model.CountryTable]
	pager   paginator.Model
}

// NewCountriesDeck creates the country table deck.
func NewCountriesDeck() *CountriesDeck {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = model.TablePageSize
	p.ArabicFormat = "Page %d of %d"

	return &CountriesDeck{
		pager: p,
		binding: fetchBinding[model.CountryTable]{
			id: "countries",
			fetch: func(ctx context.Context, src model.StatsSource) (model.CountryTable, error) {
				recs, err := src.Countries(ctx)
				if err != nil {
					return model.CountryTable{}, err
				}
				return series.CountryTable(recs)
			},
		},
	}
}

func (d *CountriesDeck) ID() string    { return d.binding.id }
func (d *CountriesDeck) Title() string { return "Countries" }

func (d *CountriesDeck) Mount(src model.StatsSource) tea.Cmd { return d.binding.mount(src) }

func (d *CountriesDeck) Apply(msg DeckDataMsg) (bool, tea.Cmd) {
	if !d.binding.apply(msg) {
		return false, nil
	}
	if tbl, ok := d.binding.state().Payload(); ok {
		d.pager.SetTotalPages(len(tbl.Rows))
		d.pager.Page = 0
	}
	return true, nil
}

func (d *CountriesDeck) Unmount() { d.binding.view.Unmount() }

func (d *CountriesDeck) Loading() bool { return d.binding.loading() }

func (d *CountriesDeck) Owns(deckID string) bool { return deckID == d.binding.id }

func (d *CountriesDeck) ContentLines(_ ViewContext) int { return model.TablePageSize + 3 }

// pageRows returns the rows on the current page.
func (d *CountriesDeck) pageRows() []model.CountryRow {
	tbl, ok := d.binding.state().Payload()
	if !ok {
		return nil
	}
	return series.Page(tbl.Rows, d.pager.Page, d.pager.PerPage)
}

func (d *CountriesDeck) ItemCount() int { return len(d.pageRows()) }

func (d *CountriesDeck) NextPage() { d.pager.NextPage() }
func (d *CountriesDeck) PrevPage() { d.pager.PrevPage() }

// OnSelect tracks the selected country.
func (d *CountriesDeck) OnSelect(_ ViewContext, selIdx int) tea.Cmd {
	if cmd := failureDetail(d.Title(), d.binding.state()); cmd != nil {
		return cmd
	}
	rows := d.pageRows()
	if selIdx < 0 || selIdx >= len(rows) {
		return nil
	}
	return actionMsg(ActionMsg{Action: ActionTrackCountry, Payload: rows[selIdx].Country})
}

func (d *CountriesDeck) Render(ctx ViewContext, width, height int, active bool, selIdx int) string {
	inner, innerH := width-4, height-3

	var body string
	state := d.binding.state()
	switch state.Status() {
	case model.StatusReady:
		tbl, _ := state.Payload()
		body = d.renderTable(ctx, tbl.Columns, active, selIdx)
	case model.StatusFailed:
		body = renderUnavailable(ctx.Theme, inner, innerH, state.Err())
	default:
		body = renderLoadingPlaceholder(ctx.Theme, inner, innerH)
	}
	return renderDeckFrame(ctx, deckTitleWithBadges("Countries", ctx), body, width, height, active)
}

func (d *CountriesDeck) renderTable(ctx ViewContext, cols []model.Column, active bool, selIdx int) string {
	columns := make([]table.Column, len(cols))
	for i, c := range cols {
		columns[i] = table.Column{Title: c.Header, Width: max(c.Width/cellWidth, len(c.Header))}
	}

	pageRows := d.pageRows()
	rows := make([]table.Row, len(pageRows))
	for i, r := range pageRows {
		row := make(table.Row, len(cols))
		for j, c := range cols {
			var cell string
			switch c.Field {
			case "country":
				cell = r.Country
			case "cases":
				cell = format.Number(r.Cases, ctx.Locale)
			}
			if c.AlignRight {
				cell = fmt.Sprintf("%*s", columns[j].Width, cell)
			}
			row[j] = cell
		}
		rows[i] = row
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ctx.Theme.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(ctx.Theme.Primary)
	styles.Selected = styles.Selected.Foreground(ctx.Theme.Accent).Bold(true)
	if !active {
		styles.Selected = lipgloss.NewStyle()
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(active),
		table.WithStyles(styles),
	)
	if selIdx >= 0 && selIdx < len(rows) {
		t.SetCursor(selIdx)
	}

	return lipgloss.JoinVertical(lipgloss.Left, t.View(), ctx.Theme.Help.Render(d.pager.View()))
}
