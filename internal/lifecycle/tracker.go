package lifecycle

import (
	"strings"

	"github.com/tinytelemetry/outbreak/internal/model"
)

// Display is what the tracker panel should render.
type Display int

const (
	DisplayNothing  Display = iota // "Nothing to show"
	DisplayProgress                // fetch outstanding
	DisplayCountry                 // identity card, stats and history
)

func (d Display) String() string {
	switch d {
	case DisplayProgress:
		return "progress"
	case DisplayCountry:
		return "country"
	default:
		return "nothing"
	}
}

// NothingToShow is the placeholder text for DisplayNothing.
const NothingToShow = "Nothing to show"

// Tracker drives the single-country lookup. Typing only edits the input;
// a fetch happens when a new value is committed.
type Tracker struct {
	input     string
	committed string
	errFlag   bool
	gen       Ticket
	closed    bool
	state     model.FetchState[model.CountrySnapshot]
}

// NewTracker returns an Idle tracker with empty input.
func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) Input() string { return t.input }

// Committed is the country the current (or last) fetch was issued for.
func (t *Tracker) Committed() string { return t.committed }

// ErrorFlag is set by a failed lookup and cleared by a successful one.
func (t *Tracker) ErrorFlag() bool { return t.errFlag }

func (t *Tracker) State() model.FetchState[model.CountrySnapshot] { return t.state }

func (t *Tracker) Loading() bool { return t.state.Status() == model.StatusLoading }

// SetInput replaces the input text. The input is locked while a lookup is
// outstanding and SetInput reports false.
func (t *Tracker) SetInput(s string) bool {
	if t.closed || t.Loading() {
		return false
	}
	t.input = s
	return true
}

// CanCommit reports whether the track action is enabled.
func (t *Tracker) CanCommit() bool {
	return !t.closed && !t.Loading() && strings.TrimSpace(t.input) != ""
}

// Commit sets the committed country to the input, trimmed of surrounding
// whitespace. Only a change of value
// starts a lookup: committing the value already committed is a no-op. When
// ok is true the caller must fetch the returned country and hand the result
// to Resolve with the returned ticket.
func (t *Tracker) Commit() (ticket Ticket, country string, ok bool) {
	if !t.CanCommit() {
		return 0, "", false
	}
	country = strings.TrimSpace(t.input)
	if country == t.committed {
		return 0, "", false
	}
	t.committed = country
	t.gen++
	t.state = model.Loading[model.CountrySnapshot]()
	return t.gen, t.committed, true
}

// Resolve applies the lookup outcome for ticket. Any error, whether a
// non-200 status, a transport failure or a malformed body, fails the lookup,
// clears the snapshot and raises the error flag.
func (t *Tracker) Resolve(ticket Ticket, snap model.CountrySnapshot, err error) bool {
	if t.closed || ticket != t.gen || !t.Loading() {
		return false
	}
	if err != nil {
		t.state = model.Failed[model.CountrySnapshot](err)
		t.errFlag = true
		return true
	}
	t.state = model.Ready(snap)
	t.errFlag = false
	return true
}

// Unmount discards the tracker. Outstanding lookups are ignored when they
// complete.
func (t *Tracker) Unmount() {
	t.closed = true
	t.gen++
}

// Display maps the tracker state to what should be rendered.
func (t *Tracker) Display() Display {
	switch t.state.Status() {
	case model.StatusLoading:
		return DisplayProgress
	case model.StatusReady:
		if t.committed != "" {
			return DisplayCountry
		}
	}
	return DisplayNothing
}
