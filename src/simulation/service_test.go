package simulation

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"market-simulator/src/catalog"
	"market-simulator/src/helpers"

	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func newTestService(delay time.Duration) *Service {
	return NewService(Options{
		Cache:       NewPriceCache(catalog.SeedPrices()),
		Rand:        rand.New(rand.NewSource(42)),
		Clock:       func() time.Time { return fixedNow },
		SearchDelay: delay,
	})
}

func decimals(v float64) int32 {
	exp := decimal.NewFromFloat(v).Exponent()
	if exp >= 0 {
		return 0
	}
	return -exp
}

// -----------------------------------------------------------------------------

func TestGetOrInitSeededSymbols(t *testing.T) {
	cache := NewPriceCache(catalog.SeedPrices())
	for symbol, want := range catalog.SeedPrices() {
		if got := cache.GetOrInit(symbol); got != want {
			t.Errorf("GetOrInit(%s) = %v, want %v", symbol, got, want)
		}
		if got := cache.GetOrInit(symbol); got != want {
			t.Errorf("second GetOrInit(%s) = %v, want %v", symbol, got, want)
		}
	}
}

func TestGetOrInitUnknownIsDeterministic(t *testing.T) {
	a := NewPriceCache(nil)
	b := NewPriceCache(nil)
	for _, symbol := range []string{"ZZZ", "GBP/USD", "USD/JPY", "DOGE/BTC", "XRP"} {
		first := a.GetOrInit(symbol)
		if again := a.GetOrInit(symbol); again != first {
			t.Errorf("%s changed between calls: %v then %v", symbol, first, again)
		}
		if other := b.GetOrInit(symbol); other != first {
			t.Errorf("%s differs across caches: %v vs %v", symbol, first, other)
		}
	}
	if a.Len() != 5 {
		t.Errorf("cache holds %d entries, want 5", a.Len())
	}
}

func TestSeedPrice(t *testing.T) {
	// Z = 90, so the sum is 270
	if got := SeedPrice("ZZZ"); got != 290 {
		t.Errorf("SeedPrice(ZZZ) = %v, want 290", got)
	}
	// G B P / U S D sums to 500
	if got := SeedPrice("GBP/USD"); math.Abs(got-1.10) > 1e-9 {
		t.Errorf("SeedPrice(GBP/USD) = %v, want 1.10", got)
	}
	for _, s := range []string{"AUD/USD", "USD/CHF", "NZDUSD"} {
		p := SeedPrice(s)
		if p < 1.05 || p >= 1.15 {
			t.Errorf("SeedPrice(%s) = %v, outside forex band", s, p)
		}
	}
	for _, s := range []string{"BTC/USD", "ETH/USD", "AAPL", "ABCDEFGHIJ"} {
		p := SeedPrice(s)
		if p < 20 || p >= 520 {
			t.Errorf("SeedPrice(%s) = %v, outside 20..519", s, p)
		}
	}
}

func TestIsCurrencyPair(t *testing.T) {
	cases := map[string]bool{
		"EUR/USD": true,
		"USD/JPY": true,
		"BTC/USD": false,
		"ETH/USD": false,
		"AAPL":    false,
	}
	for s, want := range cases {
		if got := IsCurrencyPair(s); got != want {
			t.Errorf("IsCurrencyPair(%s) = %v, want %v", s, got, want)
		}
	}
}

// -----------------------------------------------------------------------------

func TestRandomWalkRounding(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		u := rng.Float64()

		big := RandomWalk(67540.2, WalkVolatility, u)
		if d := decimals(big); d > 2 {
			t.Fatalf("RandomWalk(67540.2) = %v has %d decimals", big, d)
		}

		small := RandomWalk(1.0845, WalkVolatility, u)
		if d := decimals(small); d > 4 {
			t.Fatalf("RandomWalk(1.0845) = %v has %d decimals", small, d)
		}
	}
}

func TestRandomWalkBounds(t *testing.T) {
	if got := RandomWalk(100, 0.002, 0.5); got != 100 {
		t.Errorf("midpoint draw should not move price, got %v", got)
	}
	if got := RandomWalk(100, 0.002, 1); got != 100.1 {
		t.Errorf("max draw = %v, want 100.1", got)
	}
	if got := RandomWalk(100, 0.002, 0); got != 99.9 {
		t.Errorf("min draw = %v, want 99.9", got)
	}
	// 1000 is not above the threshold, so 4 decimals apply
	if got := RandomWalk(1000, 0.00001, 1); got != 1000.005 {
		t.Errorf("RandomWalk(1000) = %v, want 1000.005", got)
	}
	if got := RandomWalk(1000.01, 0.00001, 1); got != 1000.02 {
		t.Errorf("RandomWalk(1000.01) = %v, want 1000.02", got)
	}
}

// -----------------------------------------------------------------------------

func TestSearchEmptyQuery(t *testing.T) {
	svc := newTestService(0)
	got, err := svc.Search(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("empty query should give an empty, non-nil list, got %v", got)
	}
}

func TestSearchBank(t *testing.T) {
	svc := newTestService(0)
	got, err := svc.Search(context.Background(), "bank")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"BAC", "RY", "TD", "DB"}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d: %v", len(got), len(want), got)
	}
	for i, a := range got {
		if a.Symbol != want[i] {
			t.Errorf("result %d = %s, want %s", i, a.Symbol, want[i])
		}
		hay := strings.ToLower(a.Symbol + "|" + a.Name + "|" + a.Sector)
		if !strings.Contains(hay, "bank") {
			t.Errorf("%s does not contain the query", a.Symbol)
		}
	}
}

func TestSearchCapAndOrder(t *testing.T) {
	svc := newTestService(0)
	got, err := svc.Search(context.Background(), "FINANCIALS")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != SearchLimit {
		t.Fatalf("got %d results, want %d", len(got), SearchLimit)
	}
	if got[0].Symbol != "JPM" || got[9].Symbol != "UBS" {
		t.Errorf("catalog order not kept: first %s last %s", got[0].Symbol, got[9].Symbol)
	}
}

func TestSearchMatchesSymbolName(t *testing.T) {
	svc := newTestService(0)
	got, _ := svc.Search(context.Background(), "usd")
	if len(got) != 6 {
		t.Errorf("usd matched %d assets, want 6", len(got))
	}
	got, _ = svc.Search(context.Background(), "micro")
	if len(got) != 2 || got[0].Symbol != "MSFT" || got[1].Symbol != "AMD" {
		t.Errorf("unexpected name matches: %v", got)
	}
}

func TestSearchHonoursDelayAndCancel(t *testing.T) {
	svc := newTestService(20 * time.Millisecond)
	start := time.Now()
	if _, err := svc.Search(context.Background(), "apple"); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("search returned after %v, expected the simulated latency", elapsed)
	}

	slow := newTestService(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := slow.Search(ctx, "apple"); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled search err = %v, want context.Canceled", err)
	}
}

// -----------------------------------------------------------------------------

func TestSnapshotOrderAndBands(t *testing.T) {
	svc := newTestService(0)
	snaps := svc.Snapshot([]string{"ETH/USD", "AAPL"})
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if snaps[0].Symbol != "ETH/USD" || snaps[1].Symbol != "AAPL" {
		t.Fatalf("order not kept: %s, %s", snaps[0].Symbol, snaps[1].Symbol)
	}

	for _, s := range snaps {
		if s.High < s.Price || s.Low > s.Price {
			t.Errorf("%s: price %v outside [%v, %v]", s.Symbol, s.Price, s.Low, s.High)
		}
		baseline := s.Price - s.Change
		wantHigh := math.Max(s.Price, baseline) * 1.005
		wantLow := math.Min(s.Price, baseline) * 0.995
		if math.Abs(s.High-wantHigh) > 0.01 || math.Abs(s.Low-wantLow) > 0.01 {
			t.Errorf("%s: high/low %v/%v, want about %v/%v", s.Symbol, s.High, s.Low, wantHigh, wantLow)
		}
		if s.Volume < 500000 || s.Volume >= 1500000 {
			t.Errorf("%s: volume %d out of range", s.Symbol, s.Volume)
		}
		if d := decimals(s.Change); d > 2 {
			t.Errorf("%s: change %v not rounded", s.Symbol, s.Change)
		}
		if d := decimals(s.ChangePercent); d > 2 {
			t.Errorf("%s: change percent %v not rounded", s.Symbol, s.ChangePercent)
		}
		if s.Timestamp != fixedNow.UnixMilli() {
			t.Errorf("%s: timestamp %d", s.Symbol, s.Timestamp)
		}
		if cached, _ := svc.Cache().Get(s.Symbol); cached != s.Price {
			t.Errorf("%s: cache %v not committed to %v", s.Symbol, cached, s.Price)
		}
	}
}

func TestSnapshotIsNotIdempotent(t *testing.T) {
	svc := newTestService(0)
	first := svc.Snapshot([]string{"BTC/USD"})[0].Price
	second := svc.Snapshot([]string{"BTC/USD"})[0].Price
	if first == second {
		t.Errorf("two snapshots gave the same price %v", first)
	}
}

func TestSnapshotDuplicatesWalkTwice(t *testing.T) {
	svc := newTestService(0)
	snaps := svc.Snapshot([]string{"AAPL", "AAPL"})
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	cached, _ := svc.Cache().Get("AAPL")
	if cached != snaps[1].Price {
		t.Errorf("cache %v should hold the second walk %v", cached, snaps[1].Price)
	}
	if snaps[0].Price == snaps[1].Price {
		t.Errorf("duplicate symbol should walk independently, both %v", snaps[0].Price)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	svc := newTestService(0)
	if got := svc.Snapshot(nil); len(got) != 0 {
		t.Errorf("expected no snapshots, got %v", got)
	}
}

// -----------------------------------------------------------------------------

func TestHistoryShape(t *testing.T) {
	svc := newTestService(0)
	points, err := svc.History("BTC/USD", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 10 {
		t.Fatalf("got %d points, want 10", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Timestamp-points[i-1].Timestamp != 60000 {
			t.Errorf("points %d and %d are not one minute apart", i-1, i)
		}
	}
	last := points[len(points)-1]
	if last.Timestamp != fixedNow.Add(-time.Minute).UnixMilli() {
		t.Errorf("last point at %d, want now minus one minute", last.Timestamp)
	}
	if last.Time != "14:29" || points[0].Time != "14:20" {
		t.Errorf("labels %s..%s, want 14:20..14:29", points[0].Time, last.Time)
	}
	for _, p := range points {
		if p.MA7 == nil || p.MA25 == nil {
			t.Fatal("moving average fields missing")
		}
		if math.Abs(*p.MA7-p.Price) > p.Price*0.01+1e-9 || math.Abs(*p.MA25-p.Price) > p.Price*0.02+1e-9 {
			t.Errorf("jitter too wide: price %v ma7 %v ma25 %v", p.Price, *p.MA7, *p.MA25)
		}
		if p.Volume < 0 || p.Volume >= 50000 {
			t.Errorf("volume %v out of range", p.Volume)
		}
	}
}

func TestHistoryDoesNotTouchCache(t *testing.T) {
	svc := newTestService(0)
	if _, err := svc.History("AAPL", 50); err != nil {
		t.Fatal(err)
	}
	if got, _ := svc.Cache().Get("AAPL"); got != 174.30 {
		t.Errorf("history moved the cached price to %v", got)
	}

	if _, err := svc.History("NEWCO", 5); err != nil {
		t.Fatal(err)
	}
	if got, ok := svc.Cache().Get("NEWCO"); !ok || got != SeedPrice("NEWCO") {
		t.Errorf("history should only seed unknown symbols, got %v %v", got, ok)
	}
}

func TestHistoryInvalidArguments(t *testing.T) {
	svc := newTestService(0)
	for _, n := range []int{0, -1, MaxHistoryPoints + 1, 1e15} {
		if _, err := svc.History("AAPL", n); !helpers.IsInvalidArgument(err) {
			t.Errorf("History(points=%d) err = %v, want invalid argument", n, err)
		}
	}
	if _, err := svc.History("", 10); !helpers.IsInvalidArgument(err) {
		t.Errorf("History(\"\") err = %v, want invalid argument", err)
	}
	if points, err := svc.History("AAPL", MaxHistoryPoints); err != nil || len(points) != MaxHistoryPoints {
		t.Errorf("History(points=%d) = %d points, err %v", MaxHistoryPoints, len(points), err)
	}
}

// -----------------------------------------------------------------------------

func TestConcurrentAccess(t *testing.T) {
	svc := newTestService(0)
	var wg sync.WaitGroup
	prices := make([]float64, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			prices[i] = svc.Price("RACE")
			svc.Snapshot([]string{"AAPL", "BTC/USD"})
			if _, err := svc.History("ETH/USD", 5); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	for i, p := range prices {
		if p != SeedPrice("RACE") {
			t.Errorf("goroutine %d saw %v, want the seed price", i, p)
		}
	}
}
