package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Wire records mirror the disease.sh response bodies. Numeric and string
// fields are pointers so that an absent field can be told apart from a zero.

// DatedCount is one entry of a date-keyed mapping.
type DatedCount struct {
	Date  string
	Value int64
}

// DatedCounts is a date → count JSON object decoded in source key order.
// A nil DatedCounts means the field was absent or null; an empty object
// decodes to a non-nil empty slice.
type DatedCounts []DatedCount

// UnmarshalJSON decodes an object while preserving key order, which a Go
// map would lose.
func (d *DatedCounts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dated counts: expected object, got %v", tok)
	}

	out := make(DatedCounts, 0, 64)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		date, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("dated counts: unexpected key %v", keyTok)
		}
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("dated counts: value for %q: %w", date, err)
		}
		v, err := n.Int64()
		if err != nil {
			return fmt.Errorf("dated counts: value for %q: %w", date, err)
		}
		out = append(out, DatedCount{Date: date, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = out
	return nil
}

// Timeline groups the three cumulative series.
type Timeline struct {
	Cases     DatedCounts `json:"cases"`
	Recovered DatedCounts `json:"recovered"`
	Deaths    DatedCounts `json:"deaths"`
}

// HistoryRecord is the body of both historical endpoints: the global one
// is flat, the per-country one nests the series under "timeline".
type HistoryRecord struct {
	Country   *string     `json:"country,omitempty"`
	Nested    *Timeline   `json:"timeline,omitempty"`
	Cases     DatedCounts `json:"cases"`
	Recovered DatedCounts `json:"recovered"`
	Deaths    DatedCounts `json:"deaths"`
}

// Series returns the timeline, preferring the nested shape when present.
func (h HistoryRecord) Series() Timeline {
	if h.Nested != nil {
		return *h.Nested
	}
	return Timeline{Cases: h.Cases, Recovered: h.Recovered, Deaths: h.Deaths}
}

// StatsRecord carries the counters shared by every snapshot endpoint.
type StatsRecord struct {
	Cases          *int64 `json:"cases"`
	TodayCases     *int64 `json:"todayCases"`
	Recovered      *int64 `json:"recovered"`
	TodayRecovered *int64 `json:"todayRecovered"`
	Deaths         *int64 `json:"deaths"`
	TodayDeaths    *int64 `json:"todayDeaths"`
	Active         *int64 `json:"active"`
	Critical       *int64 `json:"critical"`
}

// SummaryRecord is the body of /v3/covid-19/all.
type SummaryRecord struct {
	StatsRecord
	AffectedCountries *int64 `json:"affectedCountries"`
}

// CountryInfo is the nested countryInfo object.
type CountryInfo struct {
	Flag *string `json:"flag"`
	ISO2 *string `json:"iso2,omitempty"`
	ISO3 *string `json:"iso3,omitempty"`
}

// CountryRecord is one element of /countries and the body of /countries/{name}.
type CountryRecord struct {
	StatsRecord
	Country     *string      `json:"country"`
	Continent   *string      `json:"continent"`
	CountryInfo *CountryInfo `json:"countryInfo"`
}

// ContinentRecord is one element of /continents.
type ContinentRecord struct {
	StatsRecord
	Continent *string `json:"continent"`
}
