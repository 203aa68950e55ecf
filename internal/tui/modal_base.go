package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal owns the screen while it is on top of the dashboard's modal stack.
// Update returns pop=true to close it.
type Modal interface {
	ID() string
	Update(msg tea.Msg) (pop bool, cmd tea.Cmd)
	View(width, height int) string
}

// textModal is a centered, scrollable block of text. The help, detail and
// fetch statistics modals differ only in their title, body and the keys
// that close them.
type textModal struct {
	id        string
	title     string
	ctx       ModalContext
	viewport  viewport.Model
	closeKeys []string
	// body renders the content at the given width; it runs on every View
	// so live data stays current.
	body func(width int) string
}

func newTextModal(m *DashboardModel, id, title string, body func(int) string, closeKeys ...string) *textModal {
	return &textModal{
		id:        id,
		title:     title,
		ctx:       m.modalContext(),
		viewport:  viewport.New(80, 20),
		closeKeys: append([]string{"esc", "q"}, closeKeys...),
		body:      body,
	}
}

func staticBody(s string) func(int) string {
	return func(int) string { return s }
}

func (t *textModal) ID() string { return t.id }

func (t *textModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch {
		case slices.Contains(t.closeKeys, key):
			return true, nil
		case key == "up" || key == "k":
			t.viewport.ScrollUp(1)
		case key == "down" || key == "j":
			t.viewport.ScrollDown(1)
		case key == "pgup":
			t.viewport.HalfPageUp()
		case key == "pgdown":
			t.viewport.HalfPageDown()
		default:
			var cmd tea.Cmd
			t.viewport, cmd = t.viewport.Update(msg)
			return false, cmd
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return false, nil
		}
		if msg.Button != tea.MouseButtonWheelUp && msg.Button != tea.MouseButtonWheelDown {
			return false, nil
		}
		up := msg.Button == tea.MouseButtonWheelUp
		if t.ctx.ReverseScrollWheel {
			up = !up
		}
		if up {
			t.viewport.ScrollUp(1)
		} else {
			t.viewport.ScrollDown(1)
		}
	}
	return false, nil
}

func (t *textModal) View(width, height int) string {
	modalWidth := width - 8   // 4 chars margin on each side
	modalHeight := height - 6 // 3 lines margin top and bottom

	contentWidth := modalWidth - 4   // modal borders
	contentHeight := modalHeight - 4 // header + status

	theme := t.ctx.Theme
	t.viewport.Width = contentWidth
	t.viewport.Height = contentHeight
	t.viewport.SetContent(lipgloss.NewStyle().Width(contentWidth).Render(t.body(contentWidth)))

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		Render(t.viewport.View())

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Primary).
		Bold(true).
		Render(t.title)

	modal := lipgloss.JoinVertical(lipgloss.Left, header, contentPane, t.statusBar())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().
			Width(modalWidth).
			Height(modalHeight).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Render(modal))
}

func (t *textModal) statusBar() string {
	closers := make([]string, 0, len(t.closeKeys))
	for _, k := range t.closeKeys {
		closers = append(closers, strings.ToUpper(k))
	}
	items := []string{"up/down/Wheel: Scroll", "PgUp/PgDn: Page", strings.Join(closers, "/") + ": Close"}
	return t.ctx.Theme.Help.Render(strings.Join(items, " | "))
}
