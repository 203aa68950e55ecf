package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 26

func (m *DashboardModel) clampSidebarCursor() {
	if len(m.views) == 0 {
		m.sidebarCursor = 0
		return
	}
	m.sidebarCursor = min(max(m.sidebarCursor, 0), len(m.views)-1)
}

func (m *DashboardModel) moveSidebarCursor(delta int) {
	if len(m.views) == 0 {
		return
	}
	m.sidebarCursor += delta
	m.clampSidebarCursor()
	m.activateView(m.sidebarCursor)
}

func (m *DashboardModel) activateSidebarCursor() {
	if len(m.views) == 0 {
		return
	}
	m.clampSidebarCursor()
	m.activateView(m.sidebarCursor)
}

func (m *DashboardModel) buildSidebarLines() ([]string, map[int]int) {
	rowToCursor := make(map[int]int)
	lines := make([]string, 0, len(m.views)+2)

	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(m.theme.Text).Render("Views"), "")

	for i, vw := range m.views {
		label := fmt.Sprintf("  %s", vw.Title)
		if m.activeViewIdx == i {
			label = fmt.Sprintf("> %s", vw.Title)
		}

		maxLabelWidth := sidebarWidth - 4
		if len(label) > maxLabelWidth && maxLabelWidth > 3 {
			label = label[:maxLabelWidth-1] + "~"
		}

		rowToCursor[len(lines)] = i
		switch {
		case m.activeSection == SectionSidebar && m.sidebarCursor == i:
			label = lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).Render(label)
		case m.activeViewIdx == i:
			label = lipgloss.NewStyle().Foreground(m.theme.Text).Render(label)
		default:
			label = m.theme.Help.Render(label)
		}
		lines = append(lines, label)
	}

	return lines, rowToCursor
}

func (m *DashboardModel) sidebarCursorAtMouseRow(y int) (int, bool) {
	_, rowToCursor := m.buildSidebarLines()

	// Bubble Tea mouse row can include border/padding rows depending on renderer.
	for _, offset := range []int{0, -1, -2, 1} {
		row := y + offset
		if row < 0 {
			continue
		}
		if idx, ok := rowToCursor[row]; ok {
			return idx, true
		}
	}
	return 0, false
}

// renderSidebar renders view navigation in the left sidebar.
func (m *DashboardModel) renderSidebar(height int) string {
	m.clampSidebarCursor()

	style := lipgloss.NewStyle().
		Width(sidebarWidth-2).
		Height(max(height, 1)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	if m.activeSection == SectionSidebar {
		style = style.BorderForeground(m.theme.Primary)
	}

	lines, _ := m.buildSidebarLines()
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
