package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouseEvent(msg)

	case ActionMsg:
		return m, m.handleAction(msg)

	case DeckDataMsg:
		return m, m.applyDeckData(msg)

	case SpinnerTickMsg:
		return m.handleSpinnerTick()
	}

	return m, nil
}

// handleAction carries out a request made by a deck.
func (m *DashboardModel) handleAction(msg ActionMsg) tea.Cmd {
	switch msg.Action {
	case ActionPushModal:
		if modal, ok := msg.Payload.(Modal); ok {
			m.PushModal(modal)
		}

	case ActionTrackCountry:
		country, _ := msg.Payload.(string)
		td := m.trackerDeck()
		if td == nil || country == "" {
			return nil
		}
		td.SetInput(country)
		cmd := td.Commit()
		m.activateViewByID("tracker")
		m.activeSection = SectionDecks
		return tea.Batch(m.trackFetch(td, cmd), m.startSpinnerIfNeeded())

	case ActionFocusTracker:
		td := m.trackerDeck()
		if td == nil || td.Tracker().Loading() {
			return nil
		}
		m.activeSection = SectionTrackerInput
		return td.Focus()

	case ActionShowDetail:
		if d, ok := msg.Payload.(Detail); ok {
			m.PushModal(NewDetailModalWithContent(m, d.Title, d.Content))
		}
	}
	return nil
}

// deckState returns the bookkeeping entry for a deck, creating it.
func (m *DashboardModel) deckState(id string) *DeckState {
	state, ok := m.deckStates[id]
	if !ok {
		state = &DeckState{DeckID: id}
		m.deckStates[id] = state
	}
	return state
}

// trackFetch records that fd issued cmd and passes cmd through.
func (m *DashboardModel) trackFetch(fd FetchingDeck, cmd tea.Cmd) tea.Cmd {
	state := m.deckState(fd.ID())
	if cmd != nil {
		state.Fetches++
	}
	state.FetchInFlight = fd.Loading()
	return cmd
}

// ownerOf returns the deck a DeckDataMsg belongs to.
func (m *DashboardModel) ownerOf(deckID string) FetchingDeck {
	for _, dk := range m.allDecks() {
		if fd, ok := dk.(FetchingDeck); ok && fd.Owns(deckID) {
			return fd
		}
	}
	return nil
}

// applyDeckData routes a fetch result to its deck. Results for decks that
// no longer exist, or that the deck rejects as stale, leave the deck's
// bookkeeping untouched.
func (m *DashboardModel) applyDeckData(msg DeckDataMsg) tea.Cmd {
	fd := m.ownerOf(msg.DeckID)
	if fd == nil {
		m.log.Debug().Str("deck", msg.DeckID).Msg("dropping result for unknown deck")
		return nil
	}

	applied, follow := fd.Apply(msg)
	if !applied {
		m.log.Debug().Str("deck", msg.DeckID).Msg("dropping stale result")
		return m.startSpinnerIfNeeded()
	}

	state := m.deckState(fd.ID())
	if msg.Err != nil {
		state.LastError = msg.Err.Error()
		state.LastErrorAt = time.Now()
		m.lastError = msg.Err.Error()
		m.lastErrorAt = state.LastErrorAt
		m.log.Warn().Err(msg.Err).Str("deck", msg.DeckID).Msg("fetch failed")
	} else {
		state.LastError = ""
		state.LastOKAt = time.Now()
		m.log.Debug().Str("deck", msg.DeckID).Msg("fetch applied")
	}

	return tea.Batch(m.trackFetch(fd, follow), m.startSpinnerIfNeeded())
}

// handleMouseEvent processes mouse interactions
func (m *DashboardModel) handleMouseEvent(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Modal on stack gets the mouse event first.
	if modal := m.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			m.PopModal()
		}
		return m, cmd
	}

	for _, entry := range m.inlineHandlers {
		if entry.isActive(m) {
			handled, cmd := entry.handler.HandleMouse(m, msg)
			if handled {
				return m, cmd
			}
			break
		}
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m.handleMouseClick(msg.X, msg.Y)

		case tea.MouseButtonWheelUp:
			if m.reverseScrollWheel {
				m.moveSelection(1)
			} else {
				m.moveSelection(-1)
			}
			return m, nil

		case tea.MouseButtonWheelDown:
			if m.reverseScrollWheel {
				m.moveSelection(-1)
			} else {
				m.moveSelection(1)
			}
			return m, nil
		}
	}

	return m, nil
}

// handleMouseClick processes mouse clicks to switch between sections
func (m *DashboardModel) handleMouseClick(x, y int) (tea.Model, tea.Cmd) {
	if m.width <= 0 || m.height <= 0 {
		return m, nil
	}

	// App bar row.
	if y < appBarHeight {
		if x >= m.width-themeSwitchWidth {
			m.toggleTheme()
		}
		return m, nil
	}
	y -= appBarHeight

	if m.sidebarVisible {
		if x < sidebarWidth {
			m.activeSection = SectionSidebar
			if idx, ok := m.sidebarCursorAtMouseRow(y); ok {
				m.sidebarCursor = idx
				m.activateSidebarCursor()
			}
			return m, nil
		}
		x -= sidebarWidth
	}

	if idx, ok := m.deckAt(m.contentWidth(), m.decksHeight(), x, y); ok {
		m.activeSection = SectionDecks
		m.activeDeckIdx = idx
	}
	return m, nil
}
