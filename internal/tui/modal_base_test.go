package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTextModal_CloseKeys(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, newFakeSource())

	tests := []struct {
		name   string
		modal  Modal
		closes []string
		stays  []string
	}{
		{"help", NewHelpModal(m), []string{"esc", "q", "?", "h"}, []string{"enter", "i", "j"}},
		{"detail", NewDetailModalWithContent(m, "Countries", "boom"), []string{"esc", "q", "enter"}, []string{"?", "k"}},
		{"stats", NewStatsModal(m), []string{"esc", "q", "i"}, []string{"enter", "h"}},
	}

	for _, tt := range tests {
		for _, k := range tt.closes {
			if pop, _ := tt.modal.Update(keyMsg(k)); !pop {
				t.Fatalf("%s: %q should close", tt.name, k)
			}
		}
		for _, k := range tt.stays {
			if pop, _ := tt.modal.Update(keyMsg(k)); pop {
				t.Fatalf("%s: %q should not close", tt.name, k)
			}
		}
	}
}

func TestTextModal_ViewShowsTitleAndBody(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, newFakeSource())
	view := NewDetailModalWithContent(m, "Countries", "status 503").View(100, 30)

	for _, want := range []string{"Countries", "status 503", "ENTER: Close"} {
		if !strings.Contains(view, want) {
			t.Fatalf("detail view missing %q", want)
		}
	}
}
