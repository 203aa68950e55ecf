package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	appTitle         = "COVID-19 Tracker"
	footerCredit     = "Data: disease.sh"
	themeSwitchWidth = 14
)

// renderAppBar renders the title bar with the light/dark switch on the right.
func (m *DashboardModel) renderAppBar() string {
	bar := m.theme.Bar
	title := m.theme.BarTitle.Render(" " + appTitle)

	icon := "☀"
	if m.theme.Dark {
		icon = "☾"
	}
	switchText := bar.Render(fmt.Sprintf("t: %s %s ", icon, m.theme.Name()))

	spacer := max(m.width-lipgloss.Width(title)-lipgloss.Width(switchText), 0)
	return title + bar.Render(strings.Repeat(" ", spacer)) + switchText
}

// renderStatusLine renders the status/help line at the bottom of the screen
func (m *DashboardModel) renderStatusLine() string {
	baseStyle := m.theme.Bar

	w := m.width
	veryNarrow := w < 60
	narrow := w < 80
	medium := w < 120

	// Left: current location.
	var leftText string
	var sectionName string
	switch m.activeSection {
	case SectionDecks:
		if m.activeDeckIdx < len(m.decks) {
			sectionName = fmt.Sprintf("%s/%s", m.currentViewTitle(), m.decks[m.activeDeckIdx].Title())
		}
	case SectionSidebar:
		sectionName = "Views"
	case SectionTrackerInput:
		sectionName = "Tracker/Input"
	}
	if sectionName != "" {
		if veryNarrow {
			leftText = sectionName[:min(5, len(sectionName))]
		} else {
			leftText = fmt.Sprintf("[%s]", sectionName)
		}
	}

	// Center: contextual help.
	var statusText string
	switch {
	case m.activeSection == SectionTrackerInput:
		if narrow {
			statusText = "Enter: Track • ESC: Cancel"
		} else {
			statusText = "Type a country • Enter: Track • ESC: Cancel"
		}
	case veryNarrow:
		statusText = "Tab • / • t • ? • q"
	case narrow:
		statusText = "?: Help • Tab: Nav • []: View • q: Quit"
	case medium:
		statusText = "Tab: Navigate • []: Switch View • /: Track • t: Theme • Enter: Select • q: Quit"
	default:
		statusText = "?: Help • Click decks • Wheel: scroll • []: Switch view • PgUp/PgDn: Page • /: Track • t: Theme • Enter: Select • q: Quit"
	}

	// Right: error indicator and credit.
	var rightParts []string
	if m.lastError != "" && time.Since(m.lastErrorAt) < 30*time.Second {
		errStyle := lipgloss.NewStyle().
			Background(lipgloss.Color(m.theme.Palette.BarBg)).
			Foreground(m.theme.Error).
			Bold(true)
		rightParts = append(rightParts, errStyle.Render("⚠ fetch failed"))
	}
	if m.anyDeckLoading() && !veryNarrow {
		rightParts = append(rightParts, "⟳ loading")
	}
	if !narrow {
		rightParts = append(rightParts, footerCredit)
	}
	rightText := strings.Join(rightParts, " • ")

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	centerWidth := w - leftWidth - rightWidth - 4
	if lipgloss.Width(statusText) > centerWidth {
		statusText = ""
	}
	centerPad := max(centerWidth-lipgloss.Width(statusText), 0)
	leftPad := centerPad / 2

	line := " " + leftText + " " + strings.Repeat(" ", leftPad) + statusText +
		strings.Repeat(" ", centerPad-leftPad) + " " + rightText + " "
	return baseStyle.Width(w).MaxWidth(w).Render(line)
}
