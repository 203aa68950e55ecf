package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/outbreak/internal/model"
)

func ptr[T any](v T) *T { return &v }

func stats(cases, today int64) model.StatsRecord {
	return model.StatsRecord{
		Cases: ptr(cases), TodayCases: ptr(today),
		Recovered: ptr(int64(90)), TodayRecovered: ptr(int64(1)),
		Deaths: ptr(int64(2)), TodayDeaths: ptr(int64(0)),
		Active: ptr(int64(8)), Critical: ptr(int64(1)),
	}
}

func timeline(days int) model.DatedCounts {
	out := make(model.DatedCounts, days)
	for i := range out {
		day := time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i)
		out[i] = model.DatedCount{Date: day.Format("1/2/06"), Value: int64(i * 100)}
	}
	return out
}

// fakeSource is an in-memory StatsSource that counts calls per endpoint.
type fakeSource struct {
	mu        sync.Mutex
	calls     map[string]int
	countries []model.CountryRecord
	failing   map[string]error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		calls:   make(map[string]int),
		failing: make(map[string]error),
		countries: []model.CountryRecord{
			{Country: ptr("A"), StatsRecord: model.StatsRecord{Cases: ptr(int64(5))}},
			{Country: ptr("B"), StatsRecord: model.StatsRecord{Cases: ptr(int64(10))}},
			{Country: ptr("C"), StatsRecord: model.StatsRecord{Cases: ptr(int64(5))}},
		},
	}
}

func (f *fakeSource) hit(endpoint string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[endpoint]++
	return f.failing[endpoint]
}

func (f *fakeSource) count(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

func (f *fakeSource) fail(endpoint string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[endpoint] = err
}

func (f *fakeSource) WorldHistory(context.Context) (model.HistoryRecord, error) {
	if err := f.hit("history"); err != nil {
		return model.HistoryRecord{}, err
	}
	return model.HistoryRecord{Cases: timeline(90), Recovered: timeline(90), Deaths: timeline(90)}, nil
}

func (f *fakeSource) WorldSummary(context.Context) (model.SummaryRecord, error) {
	if err := f.hit("summary"); err != nil {
		return model.SummaryRecord{}, err
	}
	return model.SummaryRecord{StatsRecord: stats(1234567, 2500), AffectedCountries: ptr(int64(231))}, nil
}

func (f *fakeSource) Countries(context.Context) ([]model.CountryRecord, error) {
	if err := f.hit("countries"); err != nil {
		return nil, err
	}
	return f.countries, nil
}

func (f *fakeSource) Continents(context.Context) ([]model.ContinentRecord, error) {
	if err := f.hit("continents"); err != nil {
		return nil, err
	}
	return []model.ContinentRecord{
		{Continent: ptr("Europe"), StatsRecord: model.StatsRecord{Cases: ptr(int64(3)), Recovered: ptr(int64(2)), Deaths: ptr(int64(1))}},
		{Continent: ptr("Asia"), StatsRecord: model.StatsRecord{Cases: ptr(int64(6)), Recovered: ptr(int64(5)), Deaths: ptr(int64(4))}},
	}, nil
}

func (f *fakeSource) Country(_ context.Context, name string) (model.CountryRecord, error) {
	if err := f.hit("country"); err != nil {
		return model.CountryRecord{}, err
	}
	if !strings.EqualFold(name, "usa") {
		return model.CountryRecord{}, &model.HTTPStatusError{URL: "/v3/covid-19/countries/" + name, Code: 404}
	}
	return model.CountryRecord{
		Country:     ptr("USA"),
		Continent:   ptr("North America"),
		CountryInfo: &model.CountryInfo{Flag: ptr("https://disease.sh/assets/img/flags/us.png")},
		StatsRecord: stats(100, 1),
	}, nil
}

func (f *fakeSource) CountryHistory(context.Context, string) (model.HistoryRecord, error) {
	if err := f.hit("country-history"); err != nil {
		return model.HistoryRecord{}, err
	}
	return model.HistoryRecord{Nested: &model.Timeline{Cases: timeline(60), Recovered: timeline(60), Deaths: timeline(60)}}, nil
}

func newTestModel(t *testing.T, src model.StatsSource) *DashboardModel {
	t.Helper()
	m := NewDashboardModel(src, Config{Theme: "light"})
	m.width = 160
	m.height = 60
	return m
}

// drain runs cmd and feeds the dashboard every message it produces, until
// no commands remain. Messages the dashboard does not route are dropped.
func drain(t *testing.T, m *DashboardModel, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatal("drain: command loop did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case DeckDataMsg, ActionMsg:
			_, follow := m.Update(msg)
			queue = append(queue, follow)
		}
	}
}

// mounted returns a model whose every deck has been mounted and resolved.
func mounted(t *testing.T, src model.StatsSource) *DashboardModel {
	t.Helper()
	m := newTestModel(t, src)
	drain(t, m, m.Init())
	return m
}
