package lifecycle

import (
	"errors"
	"testing"

	"github.com/tinytelemetry/outbreak/internal/model"
)

func TestView_MountFetchesOnce(t *testing.T) {
	t.Parallel()

	var v View[int]
	ticket, ok := v.Mount()
	if !ok {
		t.Fatal("first Mount should start a fetch")
	}
	if v.Status() != model.StatusLoading {
		t.Fatalf("status = %v, want loading", v.Status())
	}
	if _, ok := v.Mount(); ok {
		t.Fatal("second Mount should not start another fetch")
	}

	if !v.Resolve(ticket, 42, nil) {
		t.Fatal("Resolve with current ticket should apply")
	}
	got, ok := v.State().Payload()
	if !ok || got != 42 {
		t.Fatalf("payload = %d, %v; want 42, true", got, ok)
	}
}

func TestView_TerminalStatesStick(t *testing.T) {
	t.Parallel()

	var v View[string]
	ticket, _ := v.Mount()
	v.Resolve(ticket, "", errors.New("boom"))
	if v.Status() != model.StatusFailed {
		t.Fatalf("status = %v, want failed", v.Status())
	}
	if _, ok := v.State().Payload(); ok {
		t.Fatal("failed state must not carry a payload")
	}
	if v.Resolve(ticket, "late", nil) {
		t.Fatal("settled view accepted a second outcome")
	}
	if v.Status() != model.StatusFailed {
		t.Fatalf("status = %v, want failed", v.Status())
	}
}

func TestView_LateResponseAfterUnmountDropped(t *testing.T) {
	t.Parallel()

	var v View[int]
	stale, _ := v.Mount()
	v.Unmount()

	if v.Resolve(stale, 1, nil) {
		t.Fatal("response after unmount was applied")
	}

	fresh, ok := v.Mount()
	if !ok {
		t.Fatal("remount should start a fetch")
	}
	if v.Resolve(stale, 1, nil) {
		t.Fatal("stale ticket applied to remounted view")
	}
	if !v.Resolve(fresh, 2, nil) {
		t.Fatal("fresh ticket rejected")
	}
	if got, _ := v.State().Payload(); got != 2 {
		t.Fatalf("payload = %d, want 2", got)
	}
}

// lookups drives a tracker the way the UI does and counts fetches.
type lookups struct {
	tr      *Tracker
	fetched []string
	reply   func(country string) (model.CountrySnapshot, error)
}

func (l *lookups) commit() {
	ticket, country, ok := l.tr.Commit()
	if !ok {
		return
	}
	l.fetched = append(l.fetched, country)
	snap, err := l.reply(country)
	l.tr.Resolve(ticket, snap, err)
}

func TestTracker_InitialIdle(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	if tr.State().Status() != model.StatusIdle {
		t.Fatalf("status = %v, want idle", tr.State().Status())
	}
	if tr.Display() != DisplayNothing {
		t.Fatalf("display = %v, want nothing", tr.Display())
	}
	if tr.CanCommit() {
		t.Fatal("empty input should not be committable")
	}
}

func TestTracker_SameValueCommittedTwiceFetchesOnce(t *testing.T) {
	t.Parallel()

	l := &lookups{
		tr: NewTracker(),
		reply: func(string) (model.CountrySnapshot, error) {
			return model.CountrySnapshot{Identity: model.CountryIdentity{Name: "USA"}}, nil
		},
	}
	l.tr.SetInput("usa")
	l.commit()
	l.commit()

	if len(l.fetched) != 1 {
		t.Fatalf("fetches = %d, want 1", len(l.fetched))
	}

	l.tr.SetInput("france")
	l.commit()
	if len(l.fetched) != 2 || l.fetched[1] != "france" {
		t.Fatalf("fetched = %v, want second lookup for france", l.fetched)
	}
}

func TestTracker_CommitTrimsInput(t *testing.T) {
	t.Parallel()

	l := &lookups{
		tr: NewTracker(),
		reply: func(string) (model.CountrySnapshot, error) {
			return model.CountrySnapshot{Identity: model.CountryIdentity{Name: "USA"}}, nil
		},
	}
	l.tr.SetInput("  usa ")
	l.commit()
	if len(l.fetched) != 1 || l.fetched[0] != "usa" {
		t.Fatalf("fetched = %q, want [usa]", l.fetched)
	}

	l.tr.SetInput("usa")
	l.commit()
	l.tr.SetInput("usa\t")
	l.commit()
	if len(l.fetched) != 1 {
		t.Fatalf("fetches = %d, want 1 for the same trimmed value", len(l.fetched))
	}
}

func TestTracker_SameValueWhileLoadingFetchesOnce(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.SetInput("usa")

	_, _, first := tr.Commit()
	_, _, second := tr.Commit()
	if !first || second {
		t.Fatalf("commits = %v, %v; want true, false", first, second)
	}
}

func TestTracker_Ready(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.SetInput("usa")
	ticket, country, ok := tr.Commit()
	if !ok || country != "usa" {
		t.Fatalf("Commit = %q, %v", country, ok)
	}
	if tr.Display() != DisplayProgress {
		t.Fatalf("display = %v, want progress", tr.Display())
	}
	if tr.SetInput("changed") {
		t.Fatal("input should be locked while loading")
	}

	snap := model.CountrySnapshot{Identity: model.CountryIdentity{Name: "USA"}, Stats: model.Stats{Cases: 100}}
	tr.Resolve(ticket, snap, nil)

	if tr.State().Status() != model.StatusReady {
		t.Fatalf("status = %v, want ready", tr.State().Status())
	}
	if tr.ErrorFlag() {
		t.Fatal("error flag set after success")
	}
	if tr.Display() != DisplayCountry {
		t.Fatalf("display = %v, want country", tr.Display())
	}
}

func TestTracker_NotFound(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.SetInput("xx")
	ticket, _, _ := tr.Commit()
	tr.Resolve(ticket, model.CountrySnapshot{Identity: model.CountryIdentity{Name: "ignored"}},
		&model.HTTPStatusError{URL: "/v3/covid-19/countries/xx", Code: 404})

	if tr.State().Status() != model.StatusFailed {
		t.Fatalf("status = %v, want failed", tr.State().Status())
	}
	if !tr.ErrorFlag() {
		t.Fatal("error flag not set")
	}
	if _, ok := tr.State().Payload(); ok {
		t.Fatal("snapshot not cleared")
	}
	if tr.Display() != DisplayNothing {
		t.Fatalf("display = %v, want nothing", tr.Display())
	}

	// A following success clears the flag.
	tr.SetInput("usa")
	ticket, _, _ = tr.Commit()
	tr.Resolve(ticket, model.CountrySnapshot{}, nil)
	if tr.ErrorFlag() {
		t.Fatal("error flag survived a successful lookup")
	}
}

func TestTracker_LateResultAfterUnmount(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	tr.SetInput("usa")
	ticket, _, _ := tr.Commit()
	tr.Unmount()

	if tr.Resolve(ticket, model.CountrySnapshot{}, nil) {
		t.Fatal("result applied after unmount")
	}
	if tr.CanCommit() {
		t.Fatal("unmounted tracker accepts commits")
	}
}
