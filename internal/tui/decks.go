package tui

import (
	"context"

	"github.com/tinytelemetry/outbreak/internal/lifecycle"
	"github.com/tinytelemetry/outbreak/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Deck is a pluggable dashboard deck.
type Deck interface {
	ID() string
	Title() string
	Render(ctx ViewContext, width, height int, active bool, selIdx int) string
	ContentLines(ctx ViewContext) int
	ItemCount() int
	OnSelect(ctx ViewContext, selIdx int) tea.Cmd // returns nil or ActionMsg
}

// FetchingDeck extends Deck with a fetch lifecycle. Mount returns the fetch
// command for the deck's single request (nil when nothing needs fetching);
// the result comes back as a DeckDataMsg and is handed to Apply, which
// reports whether the result was current and may return follow-up commands.
type FetchingDeck interface {
	Deck
	Mount(src model.StatsSource) tea.Cmd
	Apply(msg DeckDataMsg) (applied bool, cmd tea.Cmd)
	Unmount()
	Owns(deckID string) bool
	Loading() bool
}

// PagedDeck is implemented by decks that page their content.
type PagedDeck interface {
	NextPage()
	PrevPage()
}

// DeckDataMsg carries fetched data back to a deck.
type DeckDataMsg struct {
	DeckID string
	Ticket lifecycle.Ticket
	Data   any
	Err    error
}

// fetchFunc loads and reshapes one deck's payload.
type fetchFunc[T any] func(ctx context.Context, src model.StatsSource) (T, error)

// fetchBinding ties a lifecycle.View to the request that fills it.
type fetchBinding[T any] struct {
	id    string
	view  lifecycle.View[T]
	fetch fetchFunc[T]
}

func (b *fetchBinding[T]) mount(src model.StatsSource) tea.Cmd {
	ticket, ok := b.view.Mount()
	if !ok {
		return nil
	}
	id, fetch := b.id, b.fetch
	return func() tea.Msg {
		data, err := fetch(context.Background(), src)
		return DeckDataMsg{DeckID: id, Ticket: ticket, Data: data, Err: err}
	}
}

func (b *fetchBinding[T]) apply(msg DeckDataMsg) bool {
	if msg.DeckID != b.id {
		return false
	}
	data, _ := msg.Data.(T)
	return b.view.Resolve(msg.Ticket, data, msg.Err)
}

func (b *fetchBinding[T]) state() model.FetchState[T] { return b.view.State() }

func (b *fetchBinding[T]) loading() bool { return b.view.Status() == model.StatusLoading }
