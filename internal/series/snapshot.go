package series

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/tinytelemetry/outbreak/internal/model"
)

// fieldReader dereferences optional record fields, remembering the first
// one that is absent.
type fieldReader struct {
	prefix  string
	missing string
}

func (f *fieldReader) int(name string, v *int64) int64 {
	if v == nil {
		f.miss(name)
		return 0
	}
	return *v
}

func (f *fieldReader) str(name string, v *string) string {
	if v == nil {
		f.miss(name)
		return ""
	}
	return *v
}

func (f *fieldReader) miss(name string) {
	if f.missing == "" {
		f.missing = f.prefix + name
	}
}

func (f *fieldReader) err() error {
	if f.missing == "" {
		return nil
	}
	return model.MissingField(f.missing)
}

func (f *fieldReader) stats(rec model.StatsRecord) model.Stats {
	return model.Stats{
		Cases:          f.int("cases", rec.Cases),
		TodayCases:     f.int("todayCases", rec.TodayCases),
		Recovered:      f.int("recovered", rec.Recovered),
		TodayRecovered: f.int("todayRecovered", rec.TodayRecovered),
		Deaths:         f.int("deaths", rec.Deaths),
		TodayDeaths:    f.int("todayDeaths", rec.TodayDeaths),
		Active:         f.int("active", rec.Active),
		Critical:       f.int("critical", rec.Critical),
	}
}

// Summary validates the worldwide snapshot.
func Summary(rec model.SummaryRecord) (model.Summary, error) {
	var f fieldReader
	s := model.Summary{
		Stats:             f.stats(rec.StatsRecord),
		AffectedCountries: f.int("affectedCountries", rec.AffectedCountries),
	}
	if err := f.err(); err != nil {
		return model.Summary{}, err
	}
	return s, nil
}

// Snapshot validates a single-country response into identity and stats.
func Snapshot(rec model.CountryRecord) (model.CountrySnapshot, error) {
	var f fieldReader
	snap := model.CountrySnapshot{
		Identity: model.CountryIdentity{
			Name:      f.str("country", rec.Country),
			Continent: f.str("continent", rec.Continent),
		},
		Stats: f.stats(rec.StatsRecord),
	}
	if rec.CountryInfo == nil {
		f.miss("countryInfo")
	} else {
		snap.Identity.FlagURL = f.str("countryInfo.flag", rec.CountryInfo.Flag)
	}
	if err := f.err(); err != nil {
		return model.CountrySnapshot{}, err
	}
	return snap, nil
}

// ToCountryRows projects the country list onto (id, country, cases) rows
// sorted by cases, largest first. The sort is stable and the comparator
// reports ties as equal, so rows with equal cases keep their input order.
func ToCountryRows(raw []model.CountryRecord) ([]model.CountryRow, error) {
	rows := make([]model.CountryRow, len(raw))
	for i, rec := range raw {
		f := fieldReader{prefix: fmt.Sprintf("[%d].", i)}
		rows[i] = model.CountryRow{
			ID:      i,
			Country: f.str("country", rec.Country),
			Cases:   f.int("cases", rec.Cases),
		}
		if err := f.err(); err != nil {
			return nil, err
		}
	}

	slices.SortStableFunc(rows, func(a, b model.CountryRow) int {
		return cmp.Compare(b.Cases, a.Cases)
	})
	return rows, nil
}

// CountryColumns are the fixed table columns.
func CountryColumns() []model.Column {
	return []model.Column{
		{Field: "country", Header: "COUNTRY", Width: 180},
		{Field: "cases", Header: "CASES", Width: 150, AlignRight: true, Numeric: true},
	}
}

// CountryTable builds the grid-ready country table.
func CountryTable(raw []model.CountryRecord) (model.CountryTable, error) {
	rows, err := ToCountryRows(raw)
	if err != nil {
		return model.CountryTable{}, err
	}
	return model.CountryTable{Rows: rows, Columns: CountryColumns()}, nil
}

// ContinentChart builds the grouped bar chart of cases, recovered and
// deaths per continent, in source order.
func ContinentChart(raw []model.ContinentRecord) (model.ContinentChart, error) {
	chart := model.ContinentChart{
		Labels: make([]string, 0, len(raw)),
		Datasets: []model.BarDataset{
			{Label: model.LabelCases, Color: model.ColorCases},
			{Label: model.LabelRecovered, Color: model.ColorRecovered},
			{Label: model.LabelDeaths, Color: model.ColorDeaths},
		},
	}

	for i, rec := range raw {
		f := fieldReader{prefix: fmt.Sprintf("[%d].", i)}
		label := f.str("continent", rec.Continent)
		cases := f.int("cases", rec.Cases)
		recovered := f.int("recovered", rec.Recovered)
		deaths := f.int("deaths", rec.Deaths)
		if err := f.err(); err != nil {
			return model.ContinentChart{}, err
		}

		chart.Labels = append(chart.Labels, label)
		chart.Datasets[0].Values = append(chart.Datasets[0].Values, cases)
		chart.Datasets[1].Values = append(chart.Datasets[1].Values, recovered)
		chart.Datasets[2].Values = append(chart.Datasets[2].Values, deaths)
	}
	return chart, nil
}

// Page returns the rows of the zero-based page, size rows per page.
func Page(rows []model.CountryRow, page, size int) []model.CountryRow {
	if size <= 0 || page < 0 {
		return nil
	}
	start := page * size
	if start >= len(rows) {
		return nil
	}
	end := min(start+size, len(rows))
	return rows[start:end]
}

// PageCount returns how many pages of size rows are needed for n rows.
func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}
