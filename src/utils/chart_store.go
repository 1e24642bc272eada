package utils

import (
	"math"
	"sync"

	"market-simulator/src/analysis/core"
	"market-simulator/src/models"
)

// -----------------------------------------------------------------------------
// ChartStore keeps a rolling chart series per symbol.
// -----------------------------------------------------------------------------

type ChartStore struct {
	series    map[string]*RingBuffer
	maxPoints int
	mu        sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewChartStore(maxPoints int) *ChartStore {
	return &ChartStore{
		series:    make(map[string]*RingBuffer),
		maxPoints: maxPoints,
	}
}

// -----------------------------------------------------------------------------

// Seed replaces the series for symbol with points (newest kept when too many).
func (cs *ChartStore) Seed(symbol string, points []models.MHistoricalPoint) {
	buf := NewRingBuffer(cs.maxPoints)
	for _, p := range points {
		buf.Append(p)
	}

	cs.mu.Lock()
	cs.series[symbol] = buf
	cs.mu.Unlock()
}

// Append pushes a live point, dropping the oldest when the series is full.
func (cs *ChartStore) Append(symbol string, point models.MHistoricalPoint) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	buf, ok := cs.series[symbol]
	if !ok {
		buf = NewRingBuffer(cs.maxPoints)
		cs.series[symbol] = buf
	}
	buf.Append(point)
}

// -----------------------------------------------------------------------------

// Series returns the chart for symbol, oldest first; nil when unknown.
func (cs *ChartStore) Series(symbol string) []models.MHistoricalPoint {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	buf, ok := cs.series[symbol]
	if !ok {
		return nil
	}
	return buf.GetAll()
}

// Summary computes the range covered by the chart for symbol.
func (cs *ChartStore) Summary(symbol string) (models.MSeriesSummary, bool) {
	points := cs.Series(symbol)
	if len(points) == 0 {
		return models.MSeriesSummary{Symbol: symbol}, false
	}
	s := ComputeSeriesSummary(points)
	s.Symbol = symbol
	return s, true
}

// -----------------------------------------------------------------------------

func (cs *ChartStore) HasSymbol(symbol string) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	_, ok := cs.series[symbol]
	return ok
}

func (cs *ChartStore) SymbolCount() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.series)
}

// Drop forgets the series for symbol.
func (cs *ChartStore) Drop(symbol string) {
	cs.mu.Lock()
	delete(cs.series, symbol)
	cs.mu.Unlock()
}

// -----------------------------------------------------------------------------

// ComputeSeriesSummary calculates OHLC, volume and return statistics.
func ComputeSeriesSummary(points []models.MHistoricalPoint) models.MSeriesSummary {
	if len(points) == 0 {
		return models.MSeriesSummary{}
	}

	high := -math.MaxFloat64
	low := math.MaxFloat64
	totalVol := 0.0
	prices := make([]float64, len(points))

	for i, p := range points {
		if p.Price > high {
			high = p.Price
		}
		if p.Price < low {
			low = p.Price
		}
		totalVol += p.Volume
		prices[i] = p.Price
	}

	first := points[0]
	last := points[len(points)-1]
	mean, std := core.MeanStd(prices)

	return models.MSeriesSummary{
		Open:          first.Price,
		High:          high,
		Low:           low,
		Close:         last.Price,
		AvgPrice:      mean,
		Volume:        totalVol,
		DataPoints:    len(points),
		ChangePercent: core.ChangePercent(last.Price, first.Price),
		Volatility:    core.Volatility(prices),
		VolumeRatio:   core.AnomalyRatio(last.Volume, totalVol/float64(len(points))),
		CloseZScore:   core.ZScore(last.Price, mean, std),
	}
}
