package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tinytelemetry/outbreak/internal/format"
	"github.com/tinytelemetry/outbreak/internal/model"
	"github.com/tinytelemetry/outbreak/internal/series"
)

// topCountries is how many table rows the report charts.
const topCountries = model.TablePageSize

// WriteHTML renders the report as a single go-echarts page.
func WriteHTML(w io.Writer, d Data, locale string) error {
	page := components.NewPage()
	page.PageTitle = "COVID-19 Tracker"
	page.SetLayout(components.PageFlexLayout)

	page.AddCharts(
		historyLine(d.History, summarySubtitle(d.Summary, locale)),
		continentBars(d.Continents),
		countryBars(d.Countries),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

func summarySubtitle(s model.Summary, locale string) string {
	return strings.Join(format.Strings(format.SummaryLines(s, locale)), " | ")
}

func historyLine(h model.HistoryChart, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Worldwide", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	line.SetXAxis(h.Labels)
	for _, ds := range h.Datasets {
		data := make([]opts.LineData, len(ds.Points))
		for i, p := range ds.Points {
			data[i] = opts.LineData{Value: p.Value}
		}
		line.AddSeries(ds.Label, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.Color}))
	}
	return line
}

func continentBars(c model.ContinentChart) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: "Continents"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	bar.SetXAxis(c.Labels)
	for _, ds := range c.Datasets {
		data := make([]opts.BarData, len(ds.Values))
		for i, v := range ds.Values {
			data[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(ds.Label, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.Color}))
	}
	return bar
}

func countryBars(t model.CountryTable) *charts.Bar {
	rows := series.Page(t.Rows, 0, topCountries)

	names := make([]string, len(rows))
	data := make([]opts.BarData, len(rows))
	for i, r := range rows {
		names[i] = r.Country
		data[i] = opts.BarData{Value: r.Cases}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1100px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Top %d countries by cases", len(rows))}),
	)
	bar.SetXAxis(names).AddSeries(model.LabelCases, data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: model.ColorCases}))
	return bar
}
