// Package format renders stored integer statistics for display.
package format

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tinytelemetry/outbreak/internal/model"
)

var (
	printersMu sync.Mutex
	printers   = map[string]*message.Printer{}
)

func printer(locale string) *message.Printer {
	printersMu.Lock()
	defer printersMu.Unlock()

	if p, ok := printers[locale]; ok {
		return p
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	p := message.NewPrinter(tag)
	printers[locale] = p
	return p
}

// Number formats n with the locale's digit grouping, e.g. 1234567 in
// en-US becomes "1,234,567". Unparseable locales fall back to en-US.
func Number(n int64, locale string) string {
	return printer(locale).Sprintf("%d", n)
}

// Delta formats a daily change with an explicit "+" for non-negative values.
func Delta(n int64, locale string) string {
	if n < 0 {
		return Number(n, locale)
	}
	return "+" + Number(n, locale)
}

// StatLine is one labelled, formatted statistic.
type StatLine struct {
	Label string
	Value string
	Delta bool // a today field
}

func (l StatLine) String() string {
	return l.Label + ": " + l.Value
}

// StatLines formats a snapshot in display order.
func StatLines(s model.Stats, locale string) []StatLine {
	return []StatLine{
		{Label: "Cases", Value: Number(s.Cases, locale)},
		{Label: "Cases Today", Value: Delta(s.TodayCases, locale), Delta: true},
		{Label: "Recovered", Value: Number(s.Recovered, locale)},
		{Label: "Recovered Today", Value: Delta(s.TodayRecovered, locale), Delta: true},
		{Label: "Deaths", Value: Number(s.Deaths, locale)},
		{Label: "Died Today", Value: Delta(s.TodayDeaths, locale), Delta: true},
		{Label: "Active", Value: Number(s.Active, locale)},
		{Label: "Critical", Value: Number(s.Critical, locale)},
	}
}

// SummaryLines formats the worldwide snapshot, which adds the number of
// affected countries.
func SummaryLines(s model.Summary, locale string) []StatLine {
	lines := StatLines(s.Stats, locale)
	return append(lines, StatLine{Label: "Affected Countries", Value: Number(s.AffectedCountries, locale)})
}

// Strings renders lines as "Label: value".
func Strings(lines []StatLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// Compact shortens large magnitudes for axis labels: 1500000 becomes
// "1.5M". Values below a thousand are printed whole.
func Compact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return trimZero(strconv.FormatFloat(v/1e9, 'f', 1, 64)) + "B"
	case abs >= 1e6:
		return trimZero(strconv.FormatFloat(v/1e6, 'f', 1, 64)) + "M"
	case abs >= 1e3:
		return trimZero(strconv.FormatFloat(v/1e3, 'f', 1, 64)) + "k"
	default:
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
