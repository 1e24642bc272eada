package datasource

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"market-simulator/src/interfaces"
	"market-simulator/src/logger"
	"market-simulator/src/models"
)

// SimulatedSource ticks the market simulation: every interval it snapshots
// the symbols returned by Symbols and pushes the batch downstream.
type SimulatedSource struct {
	Service  interfaces.IMarketService
	Symbols  func() []string
	Interval time.Duration
	Logger   *logger.Logger

	mu         sync.Mutex
	isRunning  atomic.Bool
	ctx        context.Context
	cancelFunc context.CancelFunc
	outputChan chan<- []models.MMarketSnapshot
	ticks      atomic.Int64
}

// -----------------------------------------------------------------------------

func NewSimulatedSource(svc interfaces.IMarketService, symbols func() []string, interval time.Duration, log *logger.Logger) *SimulatedSource {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if log == nil {
		log = logger.NewLogger(nil, "SimulatedSource")
	}
	return &SimulatedSource{
		Service:  svc,
		Symbols:  symbols,
		Interval: interval,
		Logger:   log,
	}
}

// -----------------------------------------------------------------------------

func (s *SimulatedSource) Name() string {
	return "simulated"
}

// Ticks returns how many batches were pushed since creation.
func (s *SimulatedSource) Ticks() int64 {
	return s.ticks.Load()
}

// -----------------------------------------------------------------------------

// Start pushes a first batch right away, then one per interval.
func (s *SimulatedSource) Start(parentCtx context.Context, outputChan chan<- []models.MMarketSnapshot, wg *sync.WaitGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning.Load() {
		return fmt.Errorf("source %s is already running", s.Name())
	}

	ctx, cancel := context.WithCancel(parentCtx)
	s.cancelFunc = cancel
	s.ctx = ctx
	s.outputChan = outputChan
	s.isRunning.Store(true)

	wg.Add(1)
	go s.runLoop(ctx, wg)
	s.Logger.Info("Started %s source, interval %s", s.Name(), s.Interval)
	return nil
}

// -----------------------------------------------------------------------------

// Stop signals the run loop to exit
func (s *SimulatedSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning.Load() {
		return fmt.Errorf("source %s is not running", s.Name())
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning.Store(false)
	s.Logger.Info("Stopped %s source", s.Name())
	return nil
}

// -----------------------------------------------------------------------------

func (s *SimulatedSource) push(ctx context.Context) error {
	symbols := s.Symbols()
	if len(symbols) == 0 {
		return nil
	}

	batch := s.Service.Snapshot(symbols)

	select {
	case s.outputChan <- batch:
		s.ticks.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// -----------------------------------------------------------------------------

func (s *SimulatedSource) runLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	defer s.isRunning.Store(false)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	if err := s.push(ctx); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.push(ctx); err != nil {
				return // context cancelled mid-push
			}
		}
	}
}
