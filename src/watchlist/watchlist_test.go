package watchlist

import (
	"reflect"
	"testing"

	"market-simulator/src/helpers"
	"market-simulator/src/models"
)

func TestDefaultWatchlistTracked(t *testing.T) {
	w := New(nil, "BTC/USD")
	want := []string{"BTC/USD", "ETH/USD", "EUR/USD", "JPM", "BAC", "AAPL", "NVDA", "TSLA"}
	if got := w.Tracked(); !reflect.DeepEqual(got, want) {
		t.Errorf("Tracked() = %v, want %v", got, want)
	}

	if err := w.Select("SOL/USD"); err != nil {
		t.Fatal(err)
	}
	got := w.Tracked()
	if len(got) != 9 || got[8] != "SOL/USD" {
		t.Errorf("selected asset should be appended, got %v", got)
	}
}

func TestFromConfig(t *testing.T) {
	w := FromConfig([]models.MWatchlistConfig{{Symbol: "AAPL", Holdings: 2}, {Symbol: "AAPL", Holdings: 9}}, "AAPL")
	if got := w.Tracked(); !reflect.DeepEqual(got, []string{"AAPL"}) {
		t.Errorf("duplicates should collapse, got %v", got)
	}
	if len(FromConfig(nil, "AAPL").Entries()) != 8 {
		t.Error("empty config should fall back to the default watchlist")
	}
}

func TestAddRemove(t *testing.T) {
	w := New([]models.MWatchlistEntry{{Symbol: "AAPL", Holdings: 1}}, "AAPL")

	if err := w.Add("MSFT", 3); err != nil {
		t.Fatal(err)
	}
	if err := w.Add("AAPL", 10); err != nil {
		t.Fatal(err)
	}
	entries := w.Entries()
	if len(entries) != 2 || entries[0].Holdings != 10 || entries[1].Symbol != "MSFT" {
		t.Errorf("unexpected entries %+v", entries)
	}

	if err := w.Add("", 1); !helpers.IsInvalidArgument(err) {
		t.Errorf("empty symbol err = %v", err)
	}
	if err := w.Add("X", -1); !helpers.IsInvalidArgument(err) {
		t.Errorf("negative holdings err = %v", err)
	}
	if err := w.Remove("MSFT"); err != nil {
		t.Fatal(err)
	}
	if err := w.Remove("MSFT"); !helpers.IsNotFound(err) {
		t.Errorf("second remove err = %v, want not found", err)
	}
	if err := w.Select(""); !helpers.IsInvalidArgument(err) {
		t.Errorf("empty select err = %v", err)
	}
}

func TestAssetsCarryHoldings(t *testing.T) {
	w := New([]models.MWatchlistEntry{{Symbol: "TSLA", Holdings: 45}, {Symbol: "NVDA"}, {Symbol: "ZZZ"}}, "TSLA")
	assets := w.Assets()
	if len(assets) != 3 {
		t.Fatalf("got %d assets", len(assets))
	}
	if assets[0].Holdings == nil || *assets[0].Holdings != 45 || assets[0].Name != "Tesla Inc." {
		t.Errorf("unexpected TSLA asset %+v", assets[0])
	}
	if assets[1].Holdings != nil {
		t.Errorf("watch-only entry should have no holdings, got %v", *assets[1].Holdings)
	}
	if assets[2].Name != "ZZZ" {
		t.Errorf("unknown symbol should use symbol as name, got %q", assets[2].Name)
	}
}

func TestValuate(t *testing.T) {
	entries := []models.MWatchlistEntry{
		{Symbol: "BTC/USD", Holdings: 0.45},
		{Symbol: "AAPL", Holdings: 150},
		{Symbol: "NVDA"},
		{Symbol: "JPM", Holdings: 50},
	}
	snaps := []models.MMarketSnapshot{
		{Symbol: "BTC/USD", Price: 67540.20},
		{Symbol: "AAPL", Price: 174.30},
		{Symbol: "NVDA", Price: 890.12},
	}

	v := Valuate(entries, snaps, "USD")

	// 0.45*67540.20 + 150*174.30 + JPM unquoted
	if v.Total != 56538.09 {
		t.Errorf("Total = %v, want 56538.09", v.Total)
	}
	if v.Display != "$56,538.09" {
		t.Errorf("Display = %q", v.Display)
	}
	if len(v.Positions) != 3 {
		t.Fatalf("positions = %d, want 3 (watch-only entries skipped)", len(v.Positions))
	}
	if v.Positions[2].Symbol != "JPM" || v.Positions[2].Value != 0 {
		t.Errorf("unquoted position should be worth 0, got %+v", v.Positions[2])
	}
}
