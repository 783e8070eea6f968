package signal

import (
	"math"
	"testing"

	"sell-radar/internal/exchange"
)

func TestAnalyzeOrderbook_EmptySnapshotReturnsNil(t *testing.T) {
	if got := AnalyzeOrderbook(exchange.OrderBookSnapshot{Symbol: "BTC/KRW"}); got != nil {
		t.Fatalf("expected nil for empty snapshot, got %+v", got)
	}
}

func TestAnalyzeOrderbook_Totals(t *testing.T) {
	snapshot := exchange.OrderBookSnapshot{
		Symbol: "BTC/KRW",
		Bids: []exchange.OrderBookLevel{
			{Price: 100, Amount: 2},
			{Price: 99, Amount: 3},
		},
		Asks: []exchange.OrderBookLevel{
			{Price: 101, Amount: 6},
			{Price: 102, Amount: 4},
		},
	}

	pressure := AnalyzeOrderbook(snapshot)
	if pressure == nil {
		t.Fatal("expected pressure, got nil")
	}
	if pressure.TotalBid != 5 {
		t.Errorf("TotalBid = %f, want 5", pressure.TotalBid)
	}
	if pressure.TotalAsk != 10 {
		t.Errorf("TotalAsk = %f, want 10", pressure.TotalAsk)
	}
	if math.Abs(pressure.AskBidRatio-2.0) > 1e-9 {
		t.Errorf("AskBidRatio = %f, want 2", pressure.AskBidRatio)
	}
	if pressure.TopBid != 2 || pressure.TopAsk != 6 {
		t.Errorf("top levels = %f/%f, want 2/6", pressure.TopBid, pressure.TopAsk)
	}
}

func TestAnalyzeOrderbook_ZeroBidRatio(t *testing.T) {
	snapshot := exchange.OrderBookSnapshot{
		Symbol: "BTC/KRW",
		Asks: []exchange.OrderBookLevel{
			{Price: 101, Amount: 5},
		},
	}

	pressure := AnalyzeOrderbook(snapshot)
	if pressure == nil {
		t.Fatal("expected pressure, got nil")
	}
	if pressure.AskBidRatio != 0 {
		t.Errorf("AskBidRatio = %f, want 0 when total bid is 0", pressure.AskBidRatio)
	}
	if pressure.TopBid != 0 {
		t.Errorf("TopBid = %f, want 0", pressure.TopBid)
	}
}
