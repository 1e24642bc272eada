package dashboard

import (
	"sync"
	"time"

	"market-simulator/src/alerts"
	"market-simulator/src/interfaces"
	"market-simulator/src/logger"
	"market-simulator/src/models"
	"market-simulator/src/utils"
	"market-simulator/src/watchlist"
)

const liveLabelLayout = "15:04:05"

// Processor turns snapshot batches into the dashboard state: it extends the
// selected asset's chart, fires alerts, values the portfolio and reports
// which markets are in session.
type Processor struct {
	Service     interfaces.IMarketService
	Watchlist   *watchlist.Watchlist
	Alerts      *alerts.Book
	Charts      *utils.ChartStore
	Scheduler   *utils.MarketScheduler
	Currency    string
	ChartPoints int
	Logger      *logger.Logger
	now         func() time.Time

	mu   sync.RWMutex
	last *models.MTickerState
}

// -----------------------------------------------------------------------------

func NewProcessor(
	svc interfaces.IMarketService,
	wl *watchlist.Watchlist,
	book *alerts.Book,
	scheduler *utils.MarketScheduler,
	currency string,
	chartPoints int,
	clock func() time.Time,
	log *logger.Logger,
) *Processor {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = logger.NewLogger(nil, "Dashboard")
	}
	if chartPoints <= 0 {
		chartPoints = 50
	}
	return &Processor{
		Service:     svc,
		Watchlist:   wl,
		Alerts:      book,
		Charts:      utils.NewChartStore(chartPoints),
		Scheduler:   scheduler,
		Currency:    currency,
		ChartPoints: chartPoints,
		Logger:      log,
		now:         clock,
	}
}

// -----------------------------------------------------------------------------

// Select makes symbol the charted asset and reseeds its chart from history.
func (p *Processor) Select(symbol string) ([]models.MHistoricalPoint, error) {
	points, err := p.Service.History(symbol, p.ChartPoints)
	if err != nil {
		return nil, err
	}
	if err := p.Watchlist.Select(symbol); err != nil {
		return nil, err
	}
	p.Charts.Seed(symbol, points)
	p.Logger.Info("Selected %s, chart seeded with %d points", symbol, len(points))
	return p.Charts.Series(symbol), nil
}

// -----------------------------------------------------------------------------

// Process builds the state for one batch and keeps it as the latest.
func (p *Processor) Process(snaps []models.MMarketSnapshot) *models.MTickerState {
	now := p.now()
	selected := p.Watchlist.Selected()

	bySymbol := make(map[string]models.MMarketSnapshot, len(snaps))
	order := make([]string, 0, len(snaps))
	for _, s := range snaps {
		if _, seen := bySymbol[s.Symbol]; !seen {
			order = append(order, s.Symbol)
		}
		bySymbol[s.Symbol] = s
	}

	if !p.Charts.HasSymbol(selected) {
		if _, err := p.Select(selected); err != nil {
			p.Logger.Warning("Could not seed chart for %s: %v", selected, err)
		}
	}
	if snap, ok := bySymbol[selected]; ok {
		p.Charts.Append(selected, models.MHistoricalPoint{
			Time:      now.Format(liveLabelLayout),
			Timestamp: snap.Timestamp,
			Price:     snap.Price,
			Volume:    float64(snap.Volume) / 1000,
		})
	}

	triggered := p.Alerts.Evaluate(snaps)
	for _, ev := range triggered {
		p.Logger.Info("Alert %s fired: %s %s %.4f (market %.4f)",
			ev.Alert.ID, ev.Alert.Symbol, ev.Alert.Condition, ev.Alert.Price, ev.MarketPrice)
	}

	state := &models.MTickerState{
		Type:      models.StateUpdate,
		Selected:  selected,
		Snapshots: bySymbol,
		Order:     order,
		Chart:     p.Charts.Series(selected),
		Portfolio: watchlist.Valuate(p.Watchlist.Entries(), snaps, p.Currency),
		Triggered: triggered,
		Timestamp: now.UnixMilli(),
	}
	if p.Scheduler != nil {
		state.Sessions = p.Scheduler.Statuses(order, now)
	}

	p.mu.Lock()
	p.last = state
	p.mu.Unlock()

	p.Logger.Debug("Processed %d snapshots, %d alerts fired", len(snaps), len(triggered))
	return state
}

// -----------------------------------------------------------------------------

// State returns the latest processed state, nil before the first batch.
func (p *Processor) State() *models.MTickerState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}
