package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/outbreak/internal/model"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// renderLoadingPlaceholder renders an animated loading indicator.
// The frame is selected based on the current time so it animates on re-render.
func renderLoadingPlaceholder(theme Theme, width, height int) string {
	frame := spinnerFrames[time.Now().UnixMilli()/120%int64(len(spinnerFrames))]

	loadingStyle := lipgloss.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	text := loadingStyle.Render(frame + " Loading...")

	return lipgloss.Place(max(width, 1), max(height, 1), lipgloss.Center, lipgloss.Center, text)
}

// renderUnavailable is the placeholder for a deck whose fetch failed. The
// deck stays in this state until the program restarts.
func renderUnavailable(theme Theme, width, height int, err error) string {
	lines := []string{theme.ErrorText.Bold(true).Render("Unavailable")}
	if err != nil {
		msg := err.Error()
		if w := max(width-2, 8); len(msg) > w {
			msg = msg[:w-1] + "…"
		}
		lines = append(lines, theme.Help.Render(msg))
	}
	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	return lipgloss.Place(max(width, 1), max(height, 1), lipgloss.Center, lipgloss.Center, block)
}

// failureDetail asks the dashboard to show the error behind a failed deck.
// It returns nil for any other state.
func failureDetail[T any](title string, st model.FetchState[T]) tea.Cmd {
	if st.Status() != model.StatusFailed || st.Err() == nil {
		return nil
	}
	return actionMsg(ActionMsg{
		Action: ActionShowDetail,
		Payload: Detail{
			Title:   title + ": unavailable",
			Content: st.Err().Error(),
		},
	})
}

// SpinnerTickMsg triggers a re-render for loading spinners.
type SpinnerTickMsg struct{}

// handleSpinnerTick re-schedules spinner ticks while any deck is loading.
func (m *DashboardModel) handleSpinnerTick() (tea.Model, tea.Cmd) {
	m.spinnerRunning = false
	return m, m.startSpinnerIfNeeded()
}

// anyDeckLoading returns true if any deck has a fetch in flight.
func (m *DashboardModel) anyDeckLoading() bool {
	for _, state := range m.deckStates {
		if state.FetchInFlight {
			return true
		}
	}
	return false
}

// startSpinnerIfNeeded schedules a spinner tick if any deck is loading and
// no tick is already pending.
func (m *DashboardModel) startSpinnerIfNeeded() tea.Cmd {
	if m.spinnerRunning || !m.anyDeckLoading() {
		return nil
	}
	m.spinnerRunning = true
	return tea.Tick(120*time.Millisecond, func(_ time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}
