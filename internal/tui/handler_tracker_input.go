package tui

import tea "github.com/charmbracelet/bubbletea"

// inlineHandler takes input ahead of the dashboard while isActive holds.
// Unlike a Modal it renders nothing of its own.
type inlineHandler interface {
	HandleKey(m *DashboardModel, msg tea.KeyMsg) (handled bool, cmd tea.Cmd)
	HandleMouse(m *DashboardModel, msg tea.MouseMsg) (handled bool, cmd tea.Cmd)
}

type inlineHandlerEntry struct {
	isActive func(m *DashboardModel) bool
	handler  inlineHandler
}

// trackerInputHandler owns the keyboard while the tracker input is focused.
type trackerInputHandler struct{}

func (h trackerInputHandler) HandleKey(m *DashboardModel, msg tea.KeyMsg) (bool, tea.Cmd) {
	td := m.trackerDeck()
	if td == nil {
		m.activeSection = SectionDecks
		return false, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return true, tea.Quit
	case "escape", "esc":
		td.Blur()
		m.activeSection = SectionDecks
		return true, nil
	case "enter":
		if !td.Tracker().CanCommit() {
			return true, nil
		}
		cmd := td.Commit()
		td.Blur()
		m.activeSection = SectionDecks
		return true, tea.Batch(m.trackFetch(td, cmd), m.startSpinnerIfNeeded())
	default:
		return true, td.UpdateInput(msg)
	}
}

func (h trackerInputHandler) HandleMouse(_ *DashboardModel, _ tea.MouseMsg) (bool, tea.Cmd) {
	return true, nil // swallow mouse events during input
}
