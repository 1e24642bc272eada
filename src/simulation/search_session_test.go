package simulation

import (
	"context"
	"sync"
	"testing"
	"time"

	"market-simulator/src/models"
)

type delivery struct {
	query   string
	results []models.MAsset
}

func collector() (chan delivery, func(string, []models.MAsset)) {
	ch := make(chan delivery, 16)
	return ch, func(q string, r []models.MAsset) { ch <- delivery{q, r} }
}

func expectNoDelivery(t *testing.T, ch chan delivery, wait time.Duration) {
	t.Helper()
	select {
	case d := <-ch:
		t.Errorf("unexpected delivery for %q", d.query)
	case <-time.After(wait):
	}
}

func TestSearchSessionShortQueryClears(t *testing.T) {
	ch, deliver := collector()
	called := false
	search := func(ctx context.Context, q string) ([]models.MAsset, error) {
		called = true
		return nil, nil
	}
	s := NewSearchSession(search, time.Millisecond, 2, deliver)
	defer s.Close()

	s.Submit("a")
	select {
	case d := <-ch:
		if d.query != "a" || len(d.results) != 0 {
			t.Errorf("unexpected delivery %+v", d)
		}
	default:
		t.Fatal("short query should clear results synchronously")
	}
	if called {
		t.Error("short query should not reach the service")
	}
}

func TestSearchSessionDebounceKeepsLatest(t *testing.T) {
	ch, deliver := collector()
	var mu sync.Mutex
	var queried []string
	svc := newTestService(0)
	search := func(ctx context.Context, q string) ([]models.MAsset, error) {
		mu.Lock()
		queried = append(queried, q)
		mu.Unlock()
		return svc.Search(ctx, q)
	}
	s := NewSearchSession(search, 30*time.Millisecond, 2, deliver)
	defer s.Close()

	s.Submit("ap")
	s.Submit("app")
	s.Submit("apple")

	select {
	case d := <-ch:
		if d.query != "apple" || len(d.results) != 1 || d.results[0].Symbol != "AAPL" {
			t.Errorf("unexpected delivery %+v", d)
		}
	case <-time.After(time.Second):
		t.Fatal("no delivery")
	}
	expectNoDelivery(t, ch, 80*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(queried) != 1 || queried[0] != "apple" {
		t.Errorf("debounce should collapse queries, service saw %v", queried)
	}
}

func TestSearchSessionDropsSupersededResult(t *testing.T) {
	ch, deliver := collector()
	started := make(chan string, 4)
	release := make(chan struct{})

	// The stale call ignores cancellation so its late result reaches the session.
	search := func(ctx context.Context, q string) ([]models.MAsset, error) {
		started <- q
		if q == "first" {
			<-release
		}
		return []models.MAsset{{Symbol: q}}, nil
	}
	s := NewSearchSession(search, 0, 2, deliver)
	defer s.Close()

	s.Submit("first")
	if q := <-started; q != "first" {
		t.Fatalf("started %q", q)
	}
	s.Submit("second")

	select {
	case d := <-ch:
		if d.query != "second" {
			t.Fatalf("delivered %q, want second", d.query)
		}
	case <-time.After(time.Second):
		t.Fatal("no delivery for second query")
	}

	close(release)
	expectNoDelivery(t, ch, 50*time.Millisecond)
}

func TestSearchSessionCloseStopsDelivery(t *testing.T) {
	ch, deliver := collector()
	search := func(ctx context.Context, q string) ([]models.MAsset, error) {
		return []models.MAsset{{Symbol: q}}, nil
	}
	s := NewSearchSession(search, 20*time.Millisecond, 2, deliver)

	s.Submit("bank")
	s.Close()
	s.Submit("visa")

	expectNoDelivery(t, ch, 60*time.Millisecond)
}

func TestSearchSessionMinLengthCountsUTF16Units(t *testing.T) {
	ch, deliver := collector()
	search := func(ctx context.Context, q string) ([]models.MAsset, error) {
		return []models.MAsset{{Symbol: q}}, nil
	}
	s := NewSearchSession(search, 0, 2, deliver)
	defer s.Close()

	// one BMP rune is one unit and clears synchronously
	s.Submit("é")
	select {
	case d := <-ch:
		if len(d.results) != 0 {
			t.Errorf("short query delivered %+v", d.results)
		}
	default:
		t.Fatal("single unit query should clear results synchronously")
	}

	// a supplementary rune is a surrogate pair, so it reaches the search
	s.Submit("😀")
	select {
	case d := <-ch:
		if d.query != "😀" || len(d.results) != 1 {
			t.Errorf("unexpected delivery %+v", d)
		}
	case <-time.After(time.Second):
		t.Fatal("surrogate pair query should be searched")
	}
}
