package models

// MMarketSnapshot is the point-in-time quote derived for one symbol.
type MMarketSnapshot struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Timestamp     int64   `json:"timestamp"` // unix milliseconds
}

// MHistoricalPoint is one chart sample. MA7 and MA25 are decorative values
// jittered around Price, not real moving averages.
type MHistoricalPoint struct {
	Time      string   `json:"time"`
	Timestamp int64    `json:"timestamp"` // unix milliseconds
	Price     float64  `json:"price"`
	Volume    float64  `json:"volume"`
	MA7       *float64 `json:"ma7,omitempty"`
	MA25      *float64 `json:"ma25,omitempty"`
}

// MSeriesSummary describes the range covered by a chart series.
type MSeriesSummary struct {
	Symbol        string  `json:"symbol"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	AvgPrice      float64 `json:"avg_price"`
	Volume        float64 `json:"volume"`
	DataPoints    int     `json:"data_points"`
	ChangePercent float64 `json:"change_percent"`
	Volatility    float64 `json:"volatility"`   // std of step returns
	VolumeRatio   float64 `json:"volume_ratio"` // last volume over the mean
	CloseZScore   float64 `json:"close_zscore"`
}
