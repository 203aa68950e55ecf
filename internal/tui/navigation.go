package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress routes a key to the top modal, else the active inline
// handler, else the dashboard shortcuts. ctrl+c always quits.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	for _, entry := range m.inlineHandlers {
		if !entry.isActive(m) {
			continue
		}
		if handled, cmd := entry.handler.HandleKey(m, msg); handled {
			return m, cmd
		}
		break
	}

	return m.handleGlobalKeys(msg)
}

func (m *DashboardModel) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	onSidebar := m.activeSection == SectionSidebar && m.sidebarVisible

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.PushModal(NewHelpModal(m))
	case key.Matches(msg, k.Stats):
		m.PushModal(NewStatsModal(m))
	case key.Matches(msg, k.ToggleTheme):
		m.toggleTheme()
	case key.Matches(msg, k.ToggleSidebar):
		m.sidebarVisible = !m.sidebarVisible
		if !m.sidebarVisible && m.activeSection == SectionSidebar {
			m.activeSection = SectionDecks
		}
	case key.Matches(msg, k.Track):
		if m.activateViewByID("tracker") {
			return m, m.handleAction(ActionMsg{Action: ActionFocusTracker})
		}
	case key.Matches(msg, k.NextView):
		m.nextView()
	case key.Matches(msg, k.PrevView):
		m.prevView()
	case key.Matches(msg, k.NextSection):
		m.cycleFocus(1)
	case key.Matches(msg, k.PrevSection):
		m.cycleFocus(-1)
	case key.Matches(msg, k.Up):
		m.moveSelection(-1)
	case key.Matches(msg, k.Down):
		m.moveSelection(1)
	case key.Matches(msg, k.PageUp):
		m.turnPage(-1)
	case key.Matches(msg, k.PageDown):
		m.turnPage(1)
	case key.Matches(msg, k.Enter) && onSidebar:
		m.activateSidebarCursor()
		m.activeSection = SectionDecks
	case key.Matches(msg, k.Enter):
		return m, m.selectActiveDeck()
	}
	return m, nil
}

// cycleFocus moves focus around the ring of decks followed by the sidebar
// (when visible), wrapping at both ends.
func (m *DashboardModel) cycleFocus(delta int) {
	stops := len(m.decks)
	if m.sidebarVisible {
		stops++
	}
	if stops == 0 {
		return
	}

	pos := min(m.activeDeckIdx, max(len(m.decks)-1, 0))
	if m.activeSection == SectionSidebar {
		pos = len(m.decks)
	}
	pos = ((pos+delta)%stops + stops) % stops

	if pos == len(m.decks) {
		m.activeSection = SectionSidebar
		return
	}
	m.activeSection = SectionDecks
	m.activeDeckIdx = pos
}

// moveSelection moves the cursor of the sidebar or of the active deck,
// clamped to its items.
func (m *DashboardModel) moveSelection(delta int) {
	if m.activeSection == SectionSidebar {
		m.moveSidebarCursor(delta)
		return
	}
	if m.activeSection != SectionDecks || m.activeDeckIdx >= len(m.decks) {
		return
	}

	items := m.decks[m.activeDeckIdx].ItemCount()
	if items == 0 {
		return
	}
	sel := m.deckSelIdx[m.activeDeckIdx] + delta
	m.deckSelIdx[m.activeDeckIdx] = min(max(sel, 0), items-1)
}

// turnPage pages the active deck, if it pages, and clamps its selection.
func (m *DashboardModel) turnPage(delta int) {
	if m.activeSection != SectionDecks || m.activeDeckIdx >= len(m.decks) {
		return
	}
	pd, ok := m.decks[m.activeDeckIdx].(PagedDeck)
	if !ok {
		return
	}
	if delta > 0 {
		pd.NextPage()
	} else {
		pd.PrevPage()
	}
	items := m.decks[m.activeDeckIdx].ItemCount()
	m.deckSelIdx[m.activeDeckIdx] = min(m.deckSelIdx[m.activeDeckIdx], max(items-1, 0))
}

// selectActiveDeck runs the active deck's select action: tracking the
// highlighted country, focusing the tracker input or explaining a failure.
func (m *DashboardModel) selectActiveDeck() tea.Cmd {
	if m.activeSection != SectionDecks || m.activeDeckIdx >= len(m.decks) {
		return nil
	}
	return m.decks[m.activeDeckIdx].OnSelect(m.viewContext(), m.deckSelIdx[m.activeDeckIdx])
}
