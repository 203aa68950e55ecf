package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the dashboard key bindings. The help modal is generated from
// the bindings' help text.
type KeyMap struct {
	Quit          key.Binding
	ForceQuit     key.Binding
	Help          key.Binding
	Escape        key.Binding
	ToggleSidebar key.Binding
	ToggleTheme   key.Binding
	Stats         key.Binding
	Track         key.Binding

	NextSection key.Binding
	PrevSection key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Enter       key.Binding
	NextView    key.Binding
	PrevView    key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:          bind("q", "quit", "q"),
		ForceQuit:     bind("ctrl+c", "quit from anywhere", "ctrl+c"),
		Help:          bind("?/h", "toggle this help", "?", "h"),
		Escape:        bind("esc", "close modal or leave the tracker input", "esc"),
		ToggleSidebar: bind("a", "toggle sidebar", "a"),
		ToggleTheme:   bind("t", "toggle light/dark theme", "t"),
		Stats:         bind("i", "fetch statistics per deck", "i"),
		Track:         bind("/", "jump to the tracker and type a country", "/"),

		NextSection: bind("tab", "next deck or sidebar", "tab"),
		PrevSection: bind("shift+tab", "previous deck or sidebar", "shift+tab"),
		Up:          bind("↑/k", "move selection up", "up", "k"),
		Down:        bind("↓/j", "move selection down", "down", "j"),
		PageUp:      bind("pgup", "previous page of the country table", "pgup"),
		PageDown:    bind("pgdn", "next page of the country table", "pgdown"),
		Enter:       bind("enter", "track the selected country or explain an unavailable deck", "enter"),
		NextView:    bind("]/→", "next view", "]", "right"),
		PrevView:    bind("[/←", "previous view", "[", "left"),
	}
}

// helpSections groups the bindings the way the help modal lists them.
func (k KeyMap) helpSections() []struct {
	title    string
	bindings []key.Binding
} {
	return []struct {
		title    string
		bindings []key.Binding
	}{
		{"NAVIGATION", []key.Binding{k.NextSection, k.PrevSection, k.Up, k.Down, k.PageUp, k.PageDown, k.NextView, k.PrevView, k.Enter, k.Escape}},
		{"ACTIONS", []key.Binding{k.Track, k.ToggleTheme, k.Stats, k.ToggleSidebar, k.Help, k.Quit, k.ForceQuit}},
	}
}

// helpText renders the key reference followed by the static notes.
func (k KeyMap) helpText() string {
	var b strings.Builder
	b.WriteString("COVID-19 Tracker Help\n")
	for _, sec := range k.helpSections() {
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		for _, kb := range sec.bindings {
			h := kb.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", h.Key, h.Desc)
		}
	}
	b.WriteString(helpNotes)
	return b.String()
}
