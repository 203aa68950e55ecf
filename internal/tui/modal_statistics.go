package tui

import (
	"fmt"
	"sort"
	"strings"
)

// deckStateSnapshot copies the deck bookkeeping, sorted by deck ID.
func (m *DashboardModel) deckStateSnapshot() []DeckState {
	out := make([]DeckState, 0, len(m.deckStates))
	for _, st := range m.deckStates {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeckID < out[j].DeckID })
	return out
}

// renderFetchStats formats one row per deck: its lifecycle state, how many
// requests it made and the last error with its time.
func renderFetchStats(states []DeckState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %-10s %8s  %s\n", "DECK", "STATE", "FETCHES", "LAST ERROR")
	for _, st := range states {
		status := "idle"
		switch {
		case st.FetchInFlight:
			status = "loading"
		case st.LastError != "":
			status = "failed"
		case !st.LastOKAt.IsZero():
			status = "ready"
		}
		lastErr := "-"
		if st.LastError != "" {
			lastErr = fmt.Sprintf("%s (%s)", st.LastError, st.LastErrorAt.Format("15:04:05"))
		}
		fmt.Fprintf(&b, "%-16s %-10s %8d  %s\n", st.DeckID, status, st.Fetches, lastErr)
	}
	if len(states) == 0 {
		b.WriteString("No fetches yet.\n")
	}
	return b.String()
}
