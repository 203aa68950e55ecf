package model

// TimeSeriesPoint is one dated cumulative count from a historical series.
type TimeSeriesPoint struct {
	Date  string `json:"date"`  // as returned by the source, e.g. "1/22/20"
	Value int64  `json:"value"`
}

// ChartDataset is one line of a history chart.
type ChartDataset struct {
	Label  string            `json:"label"`
	Color  string            `json:"color"`
	Points []TimeSeriesPoint `json:"points"`
}

// HistoryChart is the chart-ready shape of a historical series.
type HistoryChart struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"` // always Cases, Recovered, Deaths
}

// BarDataset is one bar series of a grouped bar chart.
type BarDataset struct {
	Label  string  `json:"label"`
	Color  string  `json:"color"`
	Values []int64 `json:"values"` // aligned with ContinentChart.Labels
}

// ContinentChart is the chart-ready shape of the per-continent breakdown.
type ContinentChart struct {
	Labels   []string     `json:"labels"`
	Datasets []BarDataset `json:"datasets"`
}

// CountryRow is one row of the country table.
type CountryRow struct {
	ID      int    `json:"id"`      // position in the source list, independent of rank
	Country string `json:"country"`
	Cases   int64  `json:"cases"`
}

// Column describes one country table column.
type Column struct {
	Field      string `json:"field"`
	Header     string `json:"header"`
	Width      int    `json:"width"`
	AlignRight bool   `json:"alignRight"`
	Numeric    bool   `json:"numeric"`
}

// CountryTable is the grid-ready shape of the per-country list.
type CountryTable struct {
	Rows    []CountryRow `json:"rows"`
	Columns []Column     `json:"columns"`
}

// Stats holds the integer counters shared by every snapshot scope.
type Stats struct {
	Cases          int64 `json:"cases"`
	TodayCases     int64 `json:"todayCases"`
	Recovered      int64 `json:"recovered"`
	TodayRecovered int64 `json:"todayRecovered"`
	Deaths         int64 `json:"deaths"`
	TodayDeaths    int64 `json:"todayDeaths"`
	Active         int64 `json:"active"`
	Critical       int64 `json:"critical"`
}

// Summary is the worldwide snapshot.
type Summary struct {
	Stats
	AffectedCountries int64 `json:"affectedCountries"`
}

// CountryIdentity names a tracked country.
type CountryIdentity struct {
	Name      string `json:"name"`
	Continent string `json:"continent"`
	FlagURL   string `json:"flagUrl"`
}

// CountrySnapshot is the current state of a single country.
type CountrySnapshot struct {
	Identity CountryIdentity `json:"identity"`
	Stats    Stats           `json:"stats"`
}

// Fixed dataset labels and colors shared by every chart.
const (
	LabelCases     = "Cases"
	LabelRecovered = "Recovered"
	LabelDeaths    = "Deaths"

	ColorCases     = "#3f51b5"
	ColorRecovered = "#ffb142"
	ColorDeaths    = "#f50057"
)

