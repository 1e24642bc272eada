package models

// MConfig Structure
type MConfig struct {
	Name       string            `yaml:"name"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	LogLevel   string            `yaml:"log_level"`
	GrpcHost   string            `yaml:"grpc_host"`
	GrpcPort   int               `yaml:"grpc_port"`
	Simulation MSimulationConfig `yaml:"simulation"`
	Dashboard  MDashboardConfig  `yaml:"dashboard"`
}

type MSimulationConfig struct {
	SearchDelayMs int   `yaml:"search_delay_ms"`
	RandomSeed    int64 `yaml:"random_seed"` // 0 = seeded from the clock
}

type MDashboardConfig struct {
	UpdateIntervalSeconds int                `yaml:"update_interval_seconds"`
	SelectedAsset         string             `yaml:"selected_asset"`
	ChartPoints           int                `yaml:"chart_points"`
	SearchDebounceMs      int                `yaml:"search_debounce_ms"`
	SearchMinLength       int                `yaml:"search_min_length"`
	Currency              string             `yaml:"currency"`
	Watchlist             []MWatchlistConfig `yaml:"watchlist"`
}

type MWatchlistConfig struct {
	Symbol   string  `yaml:"symbol"`
	Holdings float64 `yaml:"holdings"`
}

// GetLogLevel lets the logger read the level from any config embedding MConfig.
func (c *MConfig) GetLogLevel() string {
	if c == nil {
		return ""
	}
	return c.LogLevel
}
