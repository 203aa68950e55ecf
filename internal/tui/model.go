package tui

import (
	"time"

	"github.com/tinytelemetry/outbreak/internal/logger"
	"github.com/tinytelemetry/outbreak/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// Section represents different dashboard sections
type Section int

const (
	SectionSidebar      Section = iota // view sidebar
	SectionDecks                       // a deck is focused
	SectionTrackerInput                // typing into the tracker
)

// SidebarState holds view sidebar state.
type SidebarState struct {
	sidebarCursor  int
	sidebarVisible bool // toggled with 'a'
}

// ModalStackState holds the modal stack.
type ModalStackState struct {
	modalStack []Modal
}

// NavigationState holds view and section navigation state.
type NavigationState struct {
	activeSection Section
	activeDeckIdx int
	decks         []Deck
	deckSelIdx    []int
	views         []ViewState
	activeViewIdx int
}

// ViewState represents one right-side view composed of independent decks.
type ViewState struct {
	ID            string
	Title         string
	Decks         []Deck
	DeckSelIdx    []int
	ActiveDeckIdx int
}

// ViewSpec defines how to build a view and its decks.
type ViewSpec struct {
	ID    string
	Title string
	Build func() []Deck
}

// Config carries the dashboard settings.
type Config struct {
	Locale             string
	Theme              string // auto, dark or light
	Skin               Skin
	ReverseScrollWheel bool
}

// DashboardModel represents the main TUI model.
// Sub-state is organized into embedded structs for readability;
// Go's field promotion means existing m.fieldName access is unchanged.
type DashboardModel struct {
	SidebarState
	ModalStackState
	NavigationState

	// Window dimensions
	width  int
	height int

	keys               KeyMap
	source             model.StatsSource
	locale             string
	skin               Skin
	theme              Theme
	reverseScrollWheel bool

	// Per-deck fetch bookkeeping, keyed by top-level deck ID.
	deckStates     map[string]*DeckState
	spinnerRunning bool

	// Last fetch error for status line display (auto-clears after 30s).
	lastError   string
	lastErrorAt time.Time

	// Inline handlers for tracker input (not modals, they are part of the dashboard layout)
	inlineHandlers []inlineHandlerEntry

	log zerolog.Logger
}

// NewDashboardModel creates a new dashboard model reading from src.
func NewDashboardModel(src model.StatsSource, cfg Config) *DashboardModel {
	if cfg.Locale == "" {
		cfg.Locale = model.DefaultLocale
	}

	m := &DashboardModel{
		SidebarState: SidebarState{
			sidebarVisible: true,
		},
		NavigationState: NavigationState{
			activeSection: SectionDecks,
		},
		keys:               DefaultKeyMap(),
		source:             src,
		locale:             cfg.Locale,
		skin:               cfg.Skin,
		theme:              NewTheme(resolveDark(cfg.Theme), cfg.Skin),
		reverseScrollWheel: cfg.ReverseScrollWheel,
		deckStates:         make(map[string]*DeckState),
		log:                logger.Get().Component("tui"),
	}

	m.SetViews(DefaultViewSpecs())

	m.inlineHandlers = []inlineHandlerEntry{
		{isActive: func(m *DashboardModel) bool { return m.activeSection == SectionTrackerInput }, handler: trackerInputHandler{}},
	}

	return m
}

// SetDecks replaces decks and resets deck selection state.
func (m *DashboardModel) SetDecks(decks []Deck) {
	if len(decks) == 0 {
		m.decks = nil
		m.deckSelIdx = nil
		m.activeDeckIdx = 0
		m.persistActiveViewState()
		return
	}

	m.decks = append([]Deck(nil), decks...)
	m.deckSelIdx = make([]int, len(m.decks))
	if m.activeDeckIdx >= len(m.decks) {
		m.activeDeckIdx = 0
	}
	m.persistActiveViewState()
}

// SetViews configures right-side views and activates the first one.
func (m *DashboardModel) SetViews(specs []ViewSpec) {
	views := make([]ViewState, 0, len(specs))
	for _, spec := range specs {
		if spec.Build == nil {
			continue
		}
		decks := spec.Build()
		views = append(views, ViewState{
			ID:         spec.ID,
			Title:      spec.Title,
			Decks:      append([]Deck(nil), decks...),
			DeckSelIdx: make([]int, len(decks)),
		})
	}

	if len(views) == 0 {
		m.views = nil
		m.decks = nil
		m.deckSelIdx = nil
		m.activeDeckIdx = 0
		m.activeViewIdx = 0
		m.sidebarCursor = 0
		return
	}

	m.views = views
	m.activeViewIdx = -1
	m.sidebarCursor = 0
	m.activateView(0)
}

// DefaultViewSpecs declares built-in views and their decks. Every deck is
// its own instance, so each view's fetch runs exactly once.
func DefaultViewSpecs() []ViewSpec {
	return []ViewSpec{
		{
			ID:    "worldwide",
			Title: "Worldwide",
			Build: func() []Deck {
				return []Deck{NewWorldHistoryDeck(), NewSummaryDeck()}
			},
		},
		{
			ID:    "breakdown",
			Title: "Countries & Continents",
			Build: func() []Deck {
				return []Deck{NewCountriesDeck(), NewContinentsDeck()}
			},
		},
		{
			ID:    "tracker",
			Title: "Tracker",
			Build: func() []Deck {
				return []Deck{NewTrackerDeck()}
			},
		},
	}
}

func (m *DashboardModel) persistActiveViewState() {
	if len(m.views) == 0 || m.activeViewIdx < 0 || m.activeViewIdx >= len(m.views) {
		return
	}

	vw := &m.views[m.activeViewIdx]
	vw.Decks = append([]Deck(nil), m.decks...)
	vw.DeckSelIdx = append([]int(nil), m.deckSelIdx...)
	vw.ActiveDeckIdx = m.activeDeckIdx
}

func (m *DashboardModel) activateView(idx int) {
	if len(m.views) == 0 || idx < 0 || idx >= len(m.views) {
		return
	}

	if idx != m.activeViewIdx || len(m.decks) > 0 || len(m.deckSelIdx) > 0 {
		m.persistActiveViewState()
	}
	m.activeViewIdx = idx
	m.sidebarCursor = idx

	vw := &m.views[m.activeViewIdx]
	if len(vw.DeckSelIdx) != len(vw.Decks) {
		vw.DeckSelIdx = make([]int, len(vw.Decks))
	}

	m.decks = append([]Deck(nil), vw.Decks...)
	m.deckSelIdx = append([]int(nil), vw.DeckSelIdx...)

	if len(m.decks) == 0 {
		m.activeDeckIdx = 0
		return
	}

	if vw.ActiveDeckIdx < 0 || vw.ActiveDeckIdx >= len(m.decks) {
		vw.ActiveDeckIdx = 0
	}
	m.activeDeckIdx = vw.ActiveDeckIdx
}

// activateViewByID switches to the view with the given ID.
func (m *DashboardModel) activateViewByID(id string) bool {
	for i, vw := range m.views {
		if vw.ID == id {
			m.activateView(i)
			return true
		}
	}
	return false
}

func (m *DashboardModel) nextView() {
	if len(m.views) <= 1 {
		return
	}
	m.activateView((m.activeViewIdx + 1) % len(m.views))
}

func (m *DashboardModel) prevView() {
	if len(m.views) <= 1 {
		return
	}
	m.activateView((m.activeViewIdx - 1 + len(m.views)) % len(m.views))
}

func (m *DashboardModel) currentViewTitle() string {
	if len(m.views) == 0 || m.activeViewIdx < 0 || m.activeViewIdx >= len(m.views) {
		return ""
	}
	return m.views[m.activeViewIdx].Title
}

// allDecks returns every deck of every view, in view order.
func (m *DashboardModel) allDecks() []Deck {
	m.persistActiveViewState()
	var out []Deck
	for _, vw := range m.views {
		out = append(out, vw.Decks...)
	}
	return out
}

// trackerDeck returns the tracker deck, if any view has one.
func (m *DashboardModel) trackerDeck() *TrackerDeck {
	for _, dk := range m.allDecks() {
		if td, ok := dk.(*TrackerDeck); ok {
			return td
		}
	}
	return nil
}

// viewContext builds a ViewContext snapshot for deck rendering.
func (m *DashboardModel) viewContext() ViewContext {
	return ViewContext{
		ContentWidth:  m.contentWidth(),
		ContentHeight: m.height,
		Locale:        m.locale,
		Theme:         m.theme,
	}
}

func (m *DashboardModel) modalContext() ModalContext {
	return ModalContext{
		ReverseScrollWheel: m.reverseScrollWheel,
		Theme:              m.theme,
	}
}

// toggleTheme flips between the light and dark palettes.
func (m *DashboardModel) toggleTheme() {
	m.theme = NewTheme(!m.theme.Dark, m.skin)
}

// DashboardPage adapts DashboardModel to the Page interface.
type DashboardPage struct {
	Model *DashboardModel
}

// NewDashboardPage wraps a DashboardModel as a Page.
func NewDashboardPage(m *DashboardModel) *DashboardPage {
	return &DashboardPage{Model: m}
}

func (p *DashboardPage) ID() string { return "dashboard" }

func (p *DashboardPage) Init() tea.Cmd {
	return p.Model.Init()
}

func (p *DashboardPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	_, cmd := p.Model.Update(msg)
	return cmd, nil
}

func (p *DashboardPage) Unmount() { p.Model.Unmount() }

func (p *DashboardPage) View(width, height int) string {
	p.Model.width = width
	p.Model.height = height
	return p.Model.View()
}

// Init mounts every deck, which starts each deck's one fetch.
func (m *DashboardModel) Init() tea.Cmd {
	var cmds []tea.Cmd

	// Enable mouse support
	cmds = append(cmds, func() tea.Msg { return tea.EnableMouseCellMotion() })

	for _, dk := range m.allDecks() {
		fd, ok := dk.(FetchingDeck)
		if !ok {
			continue
		}
		cmds = append(cmds, m.trackFetch(fd, fd.Mount(m.source)))
	}

	cmds = append(cmds, m.startSpinnerIfNeeded())
	return tea.Batch(cmds...)
}

// Unmount tears down every deck so in-flight results are dropped.
func (m *DashboardModel) Unmount() {
	for _, dk := range m.allDecks() {
		if fd, ok := dk.(FetchingDeck); ok {
			fd.Unmount()
		}
	}
}

// PushModal pushes a modal onto the stack. Deduplicates by ID.
func (m *DashboardModel) PushModal(modal Modal) {
	for _, existing := range m.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	m.modalStack = append(m.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (m *DashboardModel) PopModal() {
	if len(m.modalStack) > 0 {
		m.modalStack = m.modalStack[:len(m.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (m *DashboardModel) TopModal() Modal {
	if len(m.modalStack) == 0 {
		return nil
	}
	return m.modalStack[len(m.modalStack)-1]
}

// HasModal returns true if any modal is on the stack.
func (m *DashboardModel) HasModal() bool {
	return len(m.modalStack) > 0
}
