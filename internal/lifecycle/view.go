// Package lifecycle holds the fetch state machines behind each dashboard
// view. They are plain values with no I/O: the caller starts the fetch a
// transition asks for and reports the outcome back with the ticket it was
// issued, so a response that arrives after its view moved on is dropped.
package lifecycle

import "github.com/tinytelemetry/outbreak/internal/model"

// Ticket identifies one outstanding fetch.
type Ticket uint64

// View is the Loading -> Ready | Failed machine of a view that fetches once
// when mounted. Ready and Failed are terminal until the view is unmounted
// and mounted again.
type View[T any] struct {
	gen     Ticket
	mounted bool
	state   model.FetchState[T]
}

// Mount moves the view to Loading and returns the ticket for the fetch the
// caller must now start. It reports false if the view is already mounted.
func (v *View[T]) Mount() (Ticket, bool) {
	if v.mounted {
		return 0, false
	}
	v.mounted = true
	v.gen++
	v.state = model.Loading[T]()
	return v.gen, true
}

// Resolve applies a fetch outcome. A nil err makes the view Ready with
// payload; anything else makes it Failed. Outcomes for a stale ticket, an
// unmounted view or a view that already settled are ignored and Resolve
// reports false.
func (v *View[T]) Resolve(t Ticket, payload T, err error) bool {
	if !v.mounted || t != v.gen || v.state.Status() != model.StatusLoading {
		return false
	}
	if err != nil {
		v.state = model.Failed[T](err)
	} else {
		v.state = model.Ready(payload)
	}
	return true
}

// Unmount tears the view down. Any outstanding ticket becomes stale.
func (v *View[T]) Unmount() {
	v.mounted = false
	v.gen++
	v.state = model.FetchState[T]{}
}

func (v *View[T]) Mounted() bool { return v.mounted }

func (v *View[T]) State() model.FetchState[T] { return v.state }

func (v *View[T]) Status() model.FetchStatus { return v.state.Status() }
