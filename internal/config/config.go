package config

// Config holds application settings (in-memory representation).
// Persistence is handled by internal/db package.
type Config struct {
	Realm              string  `json:"realm"`
	Period             string  `json:"period"`               // history window requested from the API
	DataDir            string  `json:"data_dir"`             // catalog JSON files live here
	FetchStaleHours    int     `json:"fetch_stale_hours"`    // refetch history older than this
	SignalThresholdPct float64 `json:"signal_threshold_pct"` // buy/sell-now deviation threshold
	MinProfitPct       float64 `json:"min_profit_pct"`       // profitable-crafts filter
	MaxDisplay         int     `json:"max_display"`          // rows per report table
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Realm:              "ambershire",
		Period:             "30d",
		DataDir:            "data",
		FetchStaleHours:    4,
		SignalThresholdPct: 5,
		MinProfitPct:       5,
		MaxDisplay:         15,
	}
}
