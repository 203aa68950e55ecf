package tui

// NewHelpModal shows the key bindings and what each view contains.
func NewHelpModal(m *DashboardModel) Modal {
	return newTextModal(m, "help", "Help", staticBody(m.keys.helpText()), "?", "h")
}

const helpNotes = `
MOUSE:
  click      focus a deck, pick a view or flip the theme switch
  wheel      move the selection

VIEWS:
  Worldwide              all-time history chart and today's global totals
  Countries & Continents countries by cases (10 per page) and a
                         per-continent breakdown
  Tracker                one country: totals, today's changes and history

NOTES:
  Data comes from disease.sh and is fetched once when the app starts.
  History charts keep every 30th day.
  A deck marked "Unavailable" failed to load; restart to retry.
`
