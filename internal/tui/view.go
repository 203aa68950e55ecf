package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	appBarHeight     = 1
	statusLineHeight = 1
)

// contentWidth returns the width available for main content, accounting for sidebar.
func (m *DashboardModel) contentWidth() int {
	if m.sidebarVisible {
		w := m.width - sidebarWidth
		if w < 40 {
			w = 40
		}
		return w
	}
	return m.width
}

// decksHeight is the height of the deck grid between the app bar and the
// status line.
func (m *DashboardModel) decksHeight() int {
	return max(m.height-appBarHeight-statusLineHeight, 0)
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Initializing dashboard..."
	}

	// If a modal is on the stack, render it full-screen.
	if modal := m.TopModal(); modal != nil {
		return modal.View(m.width, m.height)
	}

	return m.renderDashboard()
}

// renderDashboard renders the main dashboard layout
func (m *DashboardModel) renderDashboard() string {
	if m.height < 20 || m.width < 60 {
		return "Terminal too small. Resize to at least 60x20."
	}

	contentWidth := m.contentWidth()
	decksHeight := m.decksHeight()

	var main string
	if len(m.decks) == 0 {
		main = renderEmptyViewPlaceholder(m.theme, m.currentViewTitle(), contentWidth, decksHeight)
	} else {
		main = m.renderDecksGrid(contentWidth, decksHeight)
	}

	if m.sidebarVisible {
		main = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(decksHeight-2), main)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderAppBar(),
		main,
		m.renderStatusLine(),
	)
}

// renderEmptyViewPlaceholder renders a centered placeholder for views with no decks.
func renderEmptyViewPlaceholder(theme Theme, title string, width, height int) string {
	heading := theme.Value.Render(title)
	subtitle := theme.Help.Render("Nothing to show")

	block := lipgloss.JoinVertical(lipgloss.Center, heading, subtitle)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
