package simulation

import (
	"context"
	"sync"
	"time"
	"unicode/utf16"

	"market-simulator/src/models"
)

// SearchFunc is the signature of Service.Search.
type SearchFunc func(ctx context.Context, query string) ([]models.MAsset, error)

// -----------------------------------------------------------------------------
// SearchSession debounces one caller's queries and drops superseded results.
// Only the latest submitted query may deliver. deliver must not call Submit
// synchronously.
// -----------------------------------------------------------------------------

type SearchSession struct {
	search    SearchFunc
	debounce  time.Duration
	minLength int
	deliver   func(query string, results []models.MAsset)

	mu        sync.Mutex
	deliverMu sync.Mutex
	seq       uint64
	timer     *time.Timer
	cancel    context.CancelFunc
	closed    bool
}

// -----------------------------------------------------------------------------

func NewSearchSession(search SearchFunc, debounce time.Duration, minLength int, deliver func(string, []models.MAsset)) *SearchSession {
	return &SearchSession{
		search:    search,
		debounce:  debounce,
		minLength: minLength,
		deliver:   deliver,
	}
}

// -----------------------------------------------------------------------------

// Submit supersedes any pending or running query with this one. Queries
// shorter than the minimum length, counted in UTF-16 code units like
// SeedPrice, clear the results right away.
func (s *SearchSession) Submit(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	id := s.seq
	s.stopLocked()

	if len(utf16.Encode([]rune(query))) < s.minLength {
		s.mu.Unlock()
		s.deliverMu.Lock()
		s.deliver(query, []models.MAsset{})
		s.deliverMu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(ctx, id, query)
	})
	s.mu.Unlock()
}

// -----------------------------------------------------------------------------

func (s *SearchSession) run(ctx context.Context, id uint64, query string) {
	results, err := s.search(ctx, query)
	if err != nil {
		return
	}

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	if !s.isCurrent(id) {
		return
	}
	s.deliver(query, results)
}

func (s *SearchSession) isCurrent(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && id == s.seq
}

// -----------------------------------------------------------------------------

func (s *SearchSession) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Close cancels any pending query; later Submits are ignored.
func (s *SearchSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopLocked()
}
