package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/outbreak/internal/model"
)

func TestApp_RoutesToDashboard(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	dm := NewDashboardModel(src, Config{Theme: "dark"})
	app := NewApp(NewDashboardPage(dm))

	if app.ActivePage() != "dashboard" {
		t.Fatalf("active page = %q, want dashboard", app.ActivePage())
	}

	_, _ = app.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	if !strings.Contains(app.View(), appTitle) {
		t.Fatal("app view should render the dashboard")
	}
}

func TestApp_CloseUnmountsDashboard(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	dm := NewDashboardModel(src, Config{Theme: "light"})
	app := NewApp(NewDashboardPage(dm))

	cmd := app.Init()
	app.Close()
	drain(t, dm, cmd)

	for _, dk := range dm.allDecks() {
		if sd, ok := dk.(*SummaryDeck); ok && sd.binding.state().Status() != model.StatusIdle {
			t.Fatalf("summary status = %v after close, want idle", sd.binding.state().Status())
		}
	}
}
