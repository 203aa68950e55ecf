package tui

import tea "github.com/charmbracelet/bubbletea"

// ViewContext provides read-only context to decks for rendering,
// replacing direct access to *DashboardModel.
type ViewContext struct {
	ContentWidth  int
	ContentHeight int
	Locale        string
	Theme         Theme
	DeckLastError string // per-deck last error (set per render)
	DeckLoading   bool   // true when deck's data fetch is in-flight
}

// ModalContext provides read-only context to modals for rendering.
type ModalContext struct {
	ReverseScrollWheel bool
	Theme              Theme
}

// Action identifies what a deck wants the dashboard to do.
type Action int

const (
	ActionPushModal Action = iota
	ActionTrackCountry
	ActionFocusTracker
	ActionShowDetail
)

// ActionMsg is returned by deck OnSelect to communicate with the dashboard
// without mutating it directly.
type ActionMsg struct {
	Action  Action
	Payload any
}

// Detail is the payload of ActionShowDetail.
type Detail struct {
	Title   string
	Content string
}

// actionMsg wraps ActionMsg as a tea.Msg.
func actionMsg(a ActionMsg) tea.Cmd {
	return func() tea.Msg { return a }
}
