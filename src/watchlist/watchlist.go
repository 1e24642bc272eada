package watchlist

import (
	"sync"

	"market-simulator/src/catalog"
	"market-simulator/src/helpers"
	"market-simulator/src/models"
)

// -----------------------------------------------------------------------------
// Watchlist is the caller-maintained set of symbols quoted each tick, plus the
// asset currently shown on the chart.
// -----------------------------------------------------------------------------

type Watchlist struct {
	entries  []models.MWatchlistEntry
	selected string
	mu       sync.RWMutex
}

// -----------------------------------------------------------------------------

// New builds a watchlist; nil entries fall back to the catalog default.
func New(entries []models.MWatchlistEntry, selected string) *Watchlist {
	if entries == nil {
		entries = catalog.DefaultWatchlist()
	}
	w := &Watchlist{selected: selected}
	for _, e := range entries {
		if w.indexLocked(e.Symbol) < 0 {
			w.entries = append(w.entries, e)
		}
	}
	return w
}

// FromConfig converts configured entries; an empty list means the default.
func FromConfig(cfg []models.MWatchlistConfig, selected string) *Watchlist {
	if len(cfg) == 0 {
		return New(nil, selected)
	}
	entries := make([]models.MWatchlistEntry, 0, len(cfg))
	for _, c := range cfg {
		entries = append(entries, models.MWatchlistEntry{Symbol: c.Symbol, Holdings: c.Holdings})
	}
	return New(entries, selected)
}

// -----------------------------------------------------------------------------

func (w *Watchlist) indexLocked(symbol string) int {
	for i, e := range w.entries {
		if e.Symbol == symbol {
			return i
		}
	}
	return -1
}

// -----------------------------------------------------------------------------

// Entries returns the watchlist in insertion order.
func (w *Watchlist) Entries() []models.MWatchlistEntry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]models.MWatchlistEntry, len(w.entries))
	copy(out, w.entries)
	return out
}

// Assets returns catalog entries annotated with holdings. Symbols outside the
// catalog are reported with their symbol as name.
func (w *Watchlist) Assets() []models.MAsset {
	entries := w.Entries()
	out := make([]models.MAsset, 0, len(entries))
	for _, e := range entries {
		a, ok := catalog.Find(e.Symbol)
		if !ok {
			a = models.MAsset{Symbol: e.Symbol, Name: e.Symbol}
		}
		if e.Holdings > 0 {
			a = catalog.WithHoldings(a, e.Holdings)
		}
		out = append(out, a)
	}
	return out
}

// -----------------------------------------------------------------------------

// Selected returns the symbol shown on the chart.
func (w *Watchlist) Selected() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.selected
}

// Select changes the charted symbol.
func (w *Watchlist) Select(symbol string) error {
	if symbol == "" {
		return helpers.NewInvalidArgument("symbol is required")
	}
	w.mu.Lock()
	w.selected = symbol
	w.mu.Unlock()
	return nil
}

// -----------------------------------------------------------------------------

// Add inserts a symbol or updates its holdings when already present.
func (w *Watchlist) Add(symbol string, holdings float64) error {
	if symbol == "" {
		return helpers.NewInvalidArgument("symbol is required")
	}
	if holdings < 0 {
		return helpers.NewInvalidArgument("holdings cannot be negative, got %v", holdings)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if i := w.indexLocked(symbol); i >= 0 {
		w.entries[i].Holdings = holdings
		return nil
	}
	w.entries = append(w.entries, models.MWatchlistEntry{Symbol: symbol, Holdings: holdings})
	return nil
}

// Remove drops a symbol from the watchlist.
func (w *Watchlist) Remove(symbol string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.indexLocked(symbol)
	if i < 0 {
		return helpers.NewNotFound("symbol %s is not on the watchlist", symbol)
	}
	w.entries = append(w.entries[:i], w.entries[i+1:]...)
	return nil
}

// -----------------------------------------------------------------------------

// Tracked lists the symbols to snapshot: watchlist order, then the selected
// asset when it is not already watched.
func (w *Watchlist) Tracked() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, 0, len(w.entries)+1)
	for _, e := range w.entries {
		out = append(out, e.Symbol)
	}
	if w.selected != "" && w.indexLocked(w.selected) < 0 {
		out = append(out, w.selected)
	}
	return out
}
