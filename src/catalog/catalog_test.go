package catalog

import (
	"testing"

	"market-simulator/src/models"
)

func TestAssetsShape(t *testing.T) {
	list := Assets()
	if len(list) != 42 {
		t.Fatalf("catalog size = %d, want 42", len(list))
	}
	seen := map[string]bool{}
	for _, a := range list {
		if seen[a.Symbol] {
			t.Errorf("duplicate symbol %s", a.Symbol)
		}
		seen[a.Symbol] = true
		switch a.Type {
		case models.AssetStock, models.AssetCrypto, models.AssetForex:
		default:
			t.Errorf("%s has unknown type %q", a.Symbol, a.Type)
		}
		if a.Holdings != nil {
			t.Errorf("catalog entry %s should not carry holdings", a.Symbol)
		}
	}
	if list[0].Symbol != "BTC/USD" || list[len(list)-1].Symbol != "UNH" {
		t.Errorf("catalog order changed: first %s last %s", list[0].Symbol, list[len(list)-1].Symbol)
	}
}

func TestAssetsReturnsCopy(t *testing.T) {
	list := Assets()
	list[0].Name = "mutated"
	if Assets()[0].Name != "Bitcoin" {
		t.Error("Assets must not expose the backing array")
	}
}

func TestSeedPricesCopy(t *testing.T) {
	prices := SeedPrices()
	if len(prices) != 19 {
		t.Errorf("seed table size = %d, want 19", len(prices))
	}
	if prices["BTC/USD"] != 67540.20 || prices["EUR/USD"] != 1.0845 {
		t.Errorf("unexpected seeds: %v", prices)
	}
	prices["BTC/USD"] = 1
	if SeedPrices()["BTC/USD"] != 67540.20 {
		t.Error("SeedPrices must return an independent map")
	}
}

func TestDefaultWatchlistAndAlerts(t *testing.T) {
	wl := DefaultWatchlist()
	if len(wl) != 8 {
		t.Fatalf("watchlist size = %d, want 8", len(wl))
	}
	for _, e := range wl {
		if _, ok := Find(e.Symbol); !ok {
			t.Errorf("watchlist symbol %s missing from catalog", e.Symbol)
		}
	}

	alerts := InitialAlerts()
	if len(alerts) != 3 {
		t.Fatalf("alerts = %d, want 3", len(alerts))
	}
	if alerts[1].Symbol != "AAPL" || alerts[1].Condition != models.AlertBelow {
		t.Errorf("unexpected alert %+v", alerts[1])
	}
}

func TestWithHoldings(t *testing.T) {
	a, ok := Find("TSLA")
	if !ok {
		t.Fatal("TSLA not found")
	}
	held := WithHoldings(a, 45)
	if held.Holdings == nil || *held.Holdings != 45 {
		t.Errorf("holdings not set: %+v", held)
	}
	if _, ok := Find("NOPE"); ok {
		t.Error("unknown symbol should not be found")
	}
}
