package simulation

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"market-simulator/src/catalog"
	"market-simulator/src/helpers"
	"market-simulator/src/logger"
	"market-simulator/src/models"
)

const (
	DefaultHistoryPoints = 50
	MaxHistoryPoints     = 10000
	DefaultSearchDelay   = 200 * time.Millisecond
	SearchLimit          = 10

	snapshotVolumeBase  = 500000
	snapshotVolumeRange = 1000000
	historyVolumeRange  = 50000
	historyLabelLayout  = "15:04"
)

// -----------------------------------------------------------------------------

// Options configures a Service; zero values fall back to defaults.
type Options struct {
	Cache       *PriceCache
	Assets      []models.MAsset
	Rand        *rand.Rand
	Clock       func() time.Time
	SearchDelay time.Duration
	Logger      *logger.Logger
}

// Service is the market simulation: a price cache walked on demand.
type Service struct {
	cache       *PriceCache
	assets      []models.MAsset
	rng         *rand.Rand
	rngMu       sync.Mutex
	now         func() time.Time
	searchDelay time.Duration
	Logger      *logger.Logger
}

// -----------------------------------------------------------------------------

func NewService(opts Options) *Service {
	s := &Service{
		cache:       opts.Cache,
		assets:      opts.Assets,
		rng:         opts.Rand,
		now:         opts.Clock,
		searchDelay: opts.SearchDelay,
		Logger:      opts.Logger,
	}
	if s.cache == nil {
		s.cache = NewPriceCache(catalog.SeedPrices())
	}
	if s.assets == nil {
		s.assets = catalog.Assets()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.searchDelay < 0 {
		s.searchDelay = 0
	}
	if s.Logger == nil {
		s.Logger = logger.NewLogger(nil, "Simulation")
	}
	return s
}

// -----------------------------------------------------------------------------

func (s *Service) uniform() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64()
}

func (s *Service) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

// -----------------------------------------------------------------------------

// Cache exposes the price table the service owns.
func (s *Service) Cache() *PriceCache {
	return s.cache
}

// Assets returns the searchable catalog.
func (s *Service) Assets() []models.MAsset {
	out := make([]models.MAsset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Price returns the current price of symbol, initializing it on first touch.
func (s *Service) Price(symbol string) float64 {
	return s.cache.GetOrInit(symbol)
}

// -----------------------------------------------------------------------------
// Search
// -----------------------------------------------------------------------------

// Search matches query case-insensitively against symbol, name and sector,
// keeping catalog order and at most SearchLimit results. It waits the
// configured latency first and returns ctx.Err() if cancelled meanwhile.
// An empty query yields an empty list.
func (s *Service) Search(ctx context.Context, query string) ([]models.MAsset, error) {
	if s.searchDelay > 0 {
		timer := time.NewTimer(s.searchDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := []models.MAsset{}
	if query == "" {
		return results, nil
	}

	q := strings.ToLower(query)
	for _, a := range s.assets {
		if strings.Contains(strings.ToLower(a.Symbol), q) ||
			strings.Contains(strings.ToLower(a.Name), q) ||
			(a.Sector != "" && strings.Contains(strings.ToLower(a.Sector), q)) {
			results = append(results, a)
			if len(results) == SearchLimit {
				break
			}
		}
	}

	s.Logger.Debug("search %q matched %d assets", query, len(results))
	return results, nil
}

// -----------------------------------------------------------------------------
// Snapshot
// -----------------------------------------------------------------------------

// Snapshot walks each symbol one step, commits the new price and derives the
// quote against a start-of-day baseline drawn afresh on every call. Output
// order and cardinality follow symbols; duplicates walk again.
func (s *Service) Snapshot(symbols []string) []models.MMarketSnapshot {
	out := make([]models.MMarketSnapshot, 0, len(symbols))
	ts := s.now().UnixMilli()

	for _, symbol := range symbols {
		oldPrice, newPrice := s.cache.Update(symbol, func(old float64) float64 {
			return RandomWalk(old, WalkVolatility, s.uniform())
		})

		startOfDay := oldPrice * (1 - (s.uniform()*BaselineVolatility - BaselineVolatility/2))
		change := newPrice - startOfDay
		changePercent := change / startOfDay * 100

		out = append(out, models.MMarketSnapshot{
			Symbol:        symbol,
			Price:         newPrice,
			Change:        roundTo(change, 2),
			ChangePercent: roundTo(changePercent, 2),
			Volume:        int64(s.intn(snapshotVolumeRange) + snapshotVolumeBase),
			High:          maxf(newPrice, startOfDay) * 1.005,
			Low:           minf(newPrice, startOfDay) * 0.995,
			Timestamp:     ts,
		})
	}

	return out
}

// -----------------------------------------------------------------------------
// History
// -----------------------------------------------------------------------------

// History synthesizes points one-minute samples ending one minute before now,
// oldest first. The walk runs on a local copy so the shared cache is untouched.
func (s *Service) History(symbol string, points int) ([]models.MHistoricalPoint, error) {
	if symbol == "" {
		return nil, helpers.NewInvalidArgument("symbol is required")
	}
	if points <= 0 {
		return nil, helpers.NewInvalidArgument("points must be positive, got %d", points)
	}
	if points > MaxHistoryPoints {
		return nil, helpers.NewInvalidArgument("points must be at most %d, got %d", MaxHistoryPoints, points)
	}

	price := s.cache.GetOrInit(symbol)
	now := s.now()
	out := make([]models.MHistoricalPoint, 0, points)

	for i := points; i > 0; i-- {
		price = RandomWalk(price, HistoryVolatility, s.uniform())
		t := now.Add(-time.Duration(i) * time.Minute)
		ma7 := price * (1 + (s.uniform()*0.02 - 0.01))
		ma25 := price * (1 + (s.uniform()*0.04 - 0.02))

		out = append(out, models.MHistoricalPoint{
			Time:      t.Format(historyLabelLayout),
			Timestamp: t.UnixMilli(),
			Price:     price,
			Volume:    float64(s.intn(historyVolumeRange)),
			MA7:       &ma7,
			MA25:      &ma25,
		})
	}

	return out, nil
}

// -----------------------------------------------------------------------------

func maxf(a, b float64) float64 {
	if a < b {
		return b
	}
	return a
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
