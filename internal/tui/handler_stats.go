package tui

// NewStatsModal lists per-deck fetch bookkeeping. The table is rebuilt on
// every render, so a fetch finishing while the modal is open shows up.
func NewStatsModal(m *DashboardModel) Modal {
	return newTextModal(m, "stats", "Fetch Statistics", func(int) string {
		return renderFetchStats(m.deckStateSnapshot())
	}, "i")
}
