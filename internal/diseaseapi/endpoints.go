package diseaseapi

import (
	"net/url"
	"strings"
)

// Endpoint names, used for metrics and log fields.
const (
	EndpointWorldHistory   = "world_history"
	EndpointWorldSummary   = "world_summary"
	EndpointCountries      = "countries"
	EndpointContinents     = "continents"
	EndpointCountry        = "country"
	EndpointCountryHistory = "country_history"
)

const (
	pathWorldHistory = "/v3/covid-19/historical/all?lastdays=all"
	pathWorldSummary = "/v3/covid-19/all"
	pathCountries    = "/v3/covid-19/countries"
	pathContinents   = "/v3/covid-19/continents"
	pathHistory      = "/v3/covid-19/historical/"
)

// Endpoints builds fully formed URLs against a base URL.
type Endpoints struct {
	base string
}

// NewEndpoints returns URL builders for base (e.g. "https://disease.sh").
func NewEndpoints(base string) Endpoints {
	return Endpoints{base: strings.TrimRight(base, "/")}
}

func (e Endpoints) WorldHistory() string { return e.base + pathWorldHistory }
func (e Endpoints) WorldSummary() string { return e.base + pathWorldSummary }
func (e Endpoints) Countries() string    { return e.base + pathCountries }
func (e Endpoints) Continents() string   { return e.base + pathContinents }

// Country interpolates name into the single-country snapshot URL.
func (e Endpoints) Country(name string) string {
	return e.base + pathCountries + "/" + url.PathEscape(name)
}

// CountryHistory interpolates name into the single-country history URL.
func (e Endpoints) CountryHistory(name string) string {
	return e.base + pathHistory + url.PathEscape(name) + "?lastdays=all"
}
