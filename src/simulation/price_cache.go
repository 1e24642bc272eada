package simulation

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf16"
)

// -----------------------------------------------------------------------------
// PriceCache holds the last known price per symbol.
// A symbol gets exactly one entry on first touch; afterwards it only moves
// through Update.
// -----------------------------------------------------------------------------

type PriceCache struct {
	prices map[string]float64
	seed   func(symbol string) float64
	mu     sync.Mutex
}

// -----------------------------------------------------------------------------

// NewPriceCache copies seeds; unknown symbols are priced with SeedPrice.
func NewPriceCache(seeds map[string]float64) *PriceCache {
	prices := make(map[string]float64, len(seeds))
	for k, v := range seeds {
		prices[k] = v
	}
	return &PriceCache{
		prices: prices,
		seed:   SeedPrice,
	}
}

// -----------------------------------------------------------------------------

// GetOrInit returns the cached price, computing and storing the seed price
// on first touch. The check and the write happen under one lock.
func (c *PriceCache) GetOrInit(symbol string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getOrInitLocked(symbol)
}

func (c *PriceCache) getOrInitLocked(symbol string) float64 {
	if p, ok := c.prices[symbol]; ok {
		return p
	}
	p := c.seed(symbol)
	c.prices[symbol] = p
	return p
}

// -----------------------------------------------------------------------------

// Get returns the cached price without initializing it.
func (c *PriceCache) Get(symbol string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.prices[symbol]
	return p, ok
}

// -----------------------------------------------------------------------------

// Update atomically replaces the price of symbol with step(old), initializing
// it first when absent. It returns the old and the committed price.
func (c *PriceCache) Update(symbol string, step func(old float64) float64) (float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.getOrInitLocked(symbol)
	next := step(old)
	c.prices[symbol] = next
	return old, next
}

// -----------------------------------------------------------------------------

// Len returns the number of priced symbols.
func (c *PriceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prices)
}

// Symbols returns all priced symbols, sorted.
func (c *PriceCache) Symbols() []string {
	c.mu.Lock()
	out := make([]string, 0, len(c.prices))
	for k := range c.prices {
		out = append(out, k)
	}
	c.mu.Unlock()
	sort.Strings(out)
	return out
}

// -----------------------------------------------------------------------------
// Seed pricing for symbols absent from the seed table
// -----------------------------------------------------------------------------

// SeedPrice derives a stable starting price from the symbol's UTF-16 code-unit
// sum: 20..519 for most symbols, 1.05..1.1499 for USD currency pairs.
func SeedPrice(symbol string) float64 {
	hash := 0
	for _, cu := range utf16.Encode([]rune(symbol)) {
		hash += int(cu)
	}

	if IsCurrencyPair(symbol) {
		return 1.05 + float64(hash%1000)/10000
	}
	return float64(hash%500 + 20)
}

// IsCurrencyPair reports whether a symbol is priced like a fiat pair.
func IsCurrencyPair(symbol string) bool {
	return strings.Contains(symbol, "USD") &&
		!strings.Contains(symbol, "BTC") &&
		!strings.Contains(symbol, "ETH")
}
