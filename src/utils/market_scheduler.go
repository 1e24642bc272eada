package utils

import (
	"strings"
	"sync"
	"time"

	"market-simulator/src/catalog"
	"market-simulator/src/logger"
	"market-simulator/src/models"
	"market-simulator/src/simulation"
)

// MarketScheduler reports whether the venue quoting a symbol is in session.
// Crypto never closes; forex trades Monday to Friday UTC; stocks follow their
// exchange calendar.
type MarketScheduler struct {
	Calendars map[string]*TradingCalendar // by MIC
	Logger    *logger.Logger
	load      func(mic string) *TradingCalendar
	mu        sync.RWMutex
}

// -----------------------------------------------------------------------------

func NewMarketScheduler(l *logger.Logger) *MarketScheduler {
	if l == nil {
		l = logger.NewLogger(nil, "MarketScheduler")
	}
	return &MarketScheduler{
		Calendars: make(map[string]*TradingCalendar),
		Logger:    l,
		load:      GetCalendar,
	}
}

// -----------------------------------------------------------------------------

// AssetTypeOf classifies a symbol, using the catalog first.
func AssetTypeOf(symbol string) models.MAssetType {
	if a, ok := catalog.Find(symbol); ok {
		return a.Type
	}
	if simulation.IsCurrencyPair(symbol) {
		return models.AssetForex
	}
	if strings.Contains(symbol, "/") {
		return models.AssetCrypto
	}
	return models.AssetStock
}

// -----------------------------------------------------------------------------

func (ms *MarketScheduler) calendarFor(symbol string) *TradingCalendar {
	mic := MICForSymbol(symbol)

	ms.mu.RLock()
	cal, ok := ms.Calendars[mic]
	ms.mu.RUnlock()
	if ok {
		return cal
	}

	cal = ms.load(mic)
	ms.mu.Lock()
	ms.Calendars[mic] = cal
	count := len(ms.Calendars)
	ms.mu.Unlock()

	ms.Logger.Debug("MarketScheduler: loaded calendar %s (%d cached)", cal.MIC, count)
	return cal
}

// -----------------------------------------------------------------------------

// IsOpen reports whether symbol is in session at t.
func (ms *MarketScheduler) IsOpen(symbol string, t time.Time) bool {
	switch AssetTypeOf(symbol) {
	case models.AssetCrypto:
		return true
	case models.AssetForex:
		wd := t.UTC().Weekday()
		return wd != time.Saturday && wd != time.Sunday
	default:
		return ms.calendarFor(symbol).IsOpenOnMinute(t)
	}
}

// Statuses maps each symbol to its session state at t.
func (ms *MarketScheduler) Statuses(symbols []string, t time.Time) map[string]bool {
	out := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		out[s] = ms.IsOpen(s, t)
	}
	return out
}

// AnyMarketOpen checks if any of the given symbols is in session.
func (ms *MarketScheduler) AnyMarketOpen(symbols []string, t time.Time) bool {
	for _, s := range symbols {
		if ms.IsOpen(s, t) {
			return true
		}
	}
	return false
}
