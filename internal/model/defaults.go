package model

import "time"

// Shared defaults used by the CLI entrypoint and the TUI.
const (
	DefaultPriceInterval = 10 * time.Second
	DefaultClockInterval = time.Minute
	DefaultHistoryDays   = 30
	DefaultChartHeight   = 12
	DefaultTheme         = "system"
	DefaultAPIBaseURL    = "https://api.coingecko.com/api/v3"
)
