package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minDeckHeight = 4
	deckBorder    = 2 // left + right border around a deck's Width
	deckGap       = 1
	decksPerRow   = 2
)

// fullRowDeck is implemented by decks that always take a whole grid row.
type fullRowDeck interface {
	FullRow() bool
}

// deckCell is one deck's outer box inside the deck area.
type deckCell struct {
	idx        int
	x, y, w, h int
}

func (c deckCell) contains(x, y int) bool {
	return x >= c.x && x < c.x+c.w && y >= c.y && y < c.y+c.h
}

// deckRows packs deck indexes into rows of at most decksPerRow. A full-row
// deck closes the row being filled and sits alone.
func (m *DashboardModel) deckRows() [][]int {
	var rows [][]int
	var cur []int
	for i, d := range m.decks {
		if fr, ok := d.(fullRowDeck); ok && fr.FullRow() {
			if len(cur) > 0 {
				rows = append(rows, cur)
				cur = nil
			}
			rows = append(rows, []int{i})
			continue
		}
		cur = append(cur, i)
		if len(cur) == decksPerRow {
			rows = append(rows, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		rows = append(rows, cur)
	}
	return rows
}

// requiredRowHeights is the tallest deck of each row, title and border
// included.
func (m *DashboardModel) requiredRowHeights(rows [][]int) []int {
	ctx := m.viewContext()
	heights := make([]int, len(rows))
	for r, row := range rows {
		heights[r] = minDeckHeight
		for _, idx := range row {
			heights[r] = max(heights[r], m.decks[idx].ContentLines(ctx)+3)
		}
	}
	return heights
}

// fitRowHeights scales the required heights to fill height lines. Rows grow
// or shrink in proportion to what they asked for, never below minDeckHeight.
func fitRowHeights(required []int, height int) []int {
	total := 0
	for _, h := range required {
		total += h
	}
	if total <= 0 {
		return nil
	}

	out := make([]int, len(required))
	used := 0
	for i, h := range required {
		out[i] = max(h*height/total, minDeckHeight)
		used += out[i]
	}
	last := len(out) - 1
	out[last] = max(out[last]+height-used, minDeckHeight)
	return out
}

// deckPlan places the active decks in a width x height area. Decks sharing
// a row split its width; the last one absorbs the rounding.
func (m *DashboardModel) deckPlan(width, height int) []deckCell {
	rows := m.deckRows()
	heights := fitRowHeights(m.requiredRowHeights(rows), height)

	cells := make([]deckCell, 0, len(m.decks))
	y := 0
	for r, row := range rows {
		colW := (width - deckGap*(len(row)-1)) / len(row)
		x := 0
		for i, idx := range row {
			w := colW
			if i == len(row)-1 {
				w = width - x
			}
			cells = append(cells, deckCell{idx: idx, x: x, y: y, w: w, h: heights[r]})
			x += w + deckGap
		}
		y += heights[r]
	}
	return cells
}

// deckAreaHeight is the height the decks ask for before fitting.
func (m *DashboardModel) deckAreaHeight() int {
	total := 0
	for _, h := range m.requiredRowHeights(m.deckRows()) {
		total += h
	}
	return total
}

func (m *DashboardModel) deckAt(width, height, x, y int) (int, bool) {
	for _, c := range m.deckPlan(width, height) {
		if c.contains(x, y) {
			return c.idx, true
		}
	}
	return 0, false
}

// deckTitleWithBadges marks a deck title while its fetch is in flight or
// after it failed.
func deckTitleWithBadges(title string, ctx ViewContext) string {
	switch {
	case ctx.DeckLoading:
		return title + " ⟳"
	case ctx.DeckLastError != "":
		return title + " ⚠"
	}
	return title
}

// renderDeckFrame draws the bordered deck box with its title line.
func renderDeckFrame(ctx ViewContext, title, content string, width, height int, active bool) string {
	style := ctx.Theme.Section
	if active {
		style = ctx.Theme.ActiveSection
	}
	body := lipgloss.JoinVertical(lipgloss.Left, ctx.Theme.DeckTitle.Render(title), content)
	return style.Width(width).Height(max(height-2, 1)).Render(body)
}

func (m *DashboardModel) renderDeckCell(c deckCell, ctx ViewContext) string {
	d := m.decks[c.idx]
	if st, ok := m.deckStates[d.ID()]; ok {
		ctx.DeckLastError = st.LastError
		ctx.DeckLoading = st.FetchInFlight
	}
	active := m.activeSection != SectionSidebar && m.activeDeckIdx == c.idx
	return d.Render(ctx, max(c.w-deckBorder, 1), c.h, active, m.deckSelIdx[c.idx])
}

func (m *DashboardModel) renderDecksGrid(width, height int) string {
	if width < 20 {
		return "Terminal too narrow"
	}
	if len(m.decks) == 0 {
		return "No decks registered"
	}

	ctx := m.viewContext()
	gap := strings.Repeat(" ", deckGap)

	var rows, line []string
	rowY := 0
	flush := func() {
		if len(line) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = nil
		}
	}
	for _, c := range m.deckPlan(width, height) {
		if c.y != rowY {
			flush()
			rowY = c.y
		}
		if len(line) > 0 {
			line = append(line, gap)
		}
		line = append(line, m.renderDeckCell(c, ctx))
	}
	flush()

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxHeight(height).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
