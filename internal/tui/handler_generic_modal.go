package tui

// NewDetailModalWithContent shows a block of text, such as the full error
// behind an unavailable deck.
func NewDetailModalWithContent(m *DashboardModel, title, content string) Modal {
	return newTextModal(m, "detail", title, staticBody(content), "enter")
}
