package model

// Shared defaults used by the CLI, the TUI and the HTTP API.
const (
	DefaultBaseURL   = "https://disease.sh"
	DefaultLocale    = "en-US"
	DefaultTheme     = "auto"
	DecimationStride = 30 // keep every 30th point of "all time" series
	TablePageSize    = 10
)
