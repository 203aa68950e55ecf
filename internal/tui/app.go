package tui

import tea "github.com/charmbracelet/bubbletea"

// Page is a top-level screen. Update may ask the App to switch pages.
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// PageNav names the page to switch to.
type PageNav struct {
	PageID string
}

// unmounter is implemented by pages that hold in-flight fetches.
type unmounter interface {
	Unmount()
}

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages      map[string]Page
	order      []string
	activePage string
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages ...Page) *App {
	a := &App{pages: make(map[string]Page, len(pages))}
	for _, p := range pages {
		if _, dup := a.pages[p.ID()]; dup {
			continue
		}
		a.pages[p.ID()] = p
		a.order = append(a.order, p.ID())
	}
	if len(a.order) > 0 {
		a.activePage = a.order[0]
	}
	return a
}

// ActivePage returns the ID of the page being shown.
func (a *App) ActivePage() string { return a.activePage }

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, nil
	}

	cmd, nav := p.Update(msg)
	if nav == nil || nav.PageID == a.activePage {
		return a, cmd
	}
	if _, exists := a.pages[nav.PageID]; !exists {
		return a, cmd
	}

	a.activePage = nav.PageID
	return a, tea.Batch(cmd, a.pages[a.activePage].Init())
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}

// Close unmounts every page so results that arrive after the program
// exits are dropped.
func (a *App) Close() {
	for _, id := range a.order {
		if u, ok := a.pages[id].(unmounter); ok {
			u.Unmount()
		}
	}
}
