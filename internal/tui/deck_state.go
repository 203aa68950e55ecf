package tui

import "time"

// DeckState tracks per-deck fetch bookkeeping for the status line and the
// loading spinner.
type DeckState struct {
	DeckID        string
	FetchInFlight bool
	Fetches       int
	LastError     string
	LastErrorAt   time.Time
	LastOKAt      time.Time
}
