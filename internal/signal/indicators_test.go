package signal

import (
	"testing"
	"time"

	"sell-radar/internal/exchange"
)

func TestComputeIndicators_TooShortReturnsNil(t *testing.T) {
	th := testThresholds()
	daily := flatCandles(49, 24*time.Hour, 100, 1)
	if got := ComputeIndicators(daily, th); got != nil {
		t.Fatalf("expected nil for short series, got %+v", got)
	}
}

func TestComputeIndicators_Uptrend(t *testing.T) {
	th := testThresholds()

	daily := makeCandles(60, 24*time.Hour, func(i int) exchange.Candle {
		price := 100 + float64(i)
		return exchange.Candle{Open: price - 0.5, High: price + 1, Low: price - 1, Close: price, Volume: 1000}
	})

	ind := ComputeIndicators(daily, th)
	if ind == nil {
		t.Fatal("expected indicators, got nil")
	}

	// 持续单边上涨：RSI与随机指标应接近满值。
	if ind.RSISignal != StateOverbought {
		t.Errorf("RSISignal = %s, want overbought (rsi=%f)", ind.RSISignal, ind.RSI)
	}
	if ind.StochSignal != StateOverbought {
		t.Errorf("StochSignal = %s, want overbought (stoch=%f)", ind.StochSignal, ind.Stoch)
	}
	if ind.MACDSignal != StateNeutral {
		t.Errorf("MACDSignal = %s, want neutral in steady uptrend", ind.MACDSignal)
	}
	if ind.MASignal != StateNeutral {
		t.Errorf("MASignal = %s, want neutral when price above rising MA5", ind.MASignal)
	}
	if ind.BBPosition <= 50 {
		t.Errorf("BBPosition = %f, want above mid-band", ind.BBPosition)
	}
}

func TestComputeIndicators_Downtrend(t *testing.T) {
	th := testThresholds()

	daily := makeCandles(60, 24*time.Hour, func(i int) exchange.Candle {
		price := 200 - float64(i)
		return exchange.Candle{Open: price + 0.5, High: price + 1, Low: price - 1, Close: price, Volume: 1000}
	})

	ind := ComputeIndicators(daily, th)
	if ind == nil {
		t.Fatal("expected indicators, got nil")
	}

	if ind.MACDSignal != StateDeadCross {
		t.Errorf("MACDSignal = %s, want dead_cross in steady downtrend", ind.MACDSignal)
	}
	if ind.MASignal != StateBearishCross {
		t.Errorf("MASignal = %s, want bearish_cross when MA5 below MA20", ind.MASignal)
	}
	if ind.RSISignal != StateNeutral {
		t.Errorf("RSISignal = %s, want neutral (rsi=%f)", ind.RSISignal, ind.RSI)
	}
}

func TestRsiState(t *testing.T) {
	th := testThresholds()

	cases := []struct {
		rsi  float64
		want string
	}{
		{75, StateOverbought},
		{70, StateElevated}, // 阈值本身不算超买，严格大于
		{65, StateElevated},
		{60, StateNeutral},
		{30, StateNeutral},
	}
	for _, tc := range cases {
		if got := rsiState(tc.rsi, th); got != tc.want {
			t.Errorf("rsiState(%f) = %s, want %s", tc.rsi, got, tc.want)
		}
	}
}

func TestMacdState(t *testing.T) {
	cases := []struct {
		line, signal, hist float64
		want               string
	}{
		{-1, 1, -2, StateDeadCross},
		{-1, 1, 1, StateBearishTurn},
		{1, -1, 2, StateNeutral},
	}
	for _, tc := range cases {
		if got := macdState(tc.line, tc.signal, tc.hist); got != tc.want {
			t.Errorf("macdState(%f,%f,%f) = %s, want %s", tc.line, tc.signal, tc.hist, got, tc.want)
		}
	}
}

func TestBbState(t *testing.T) {
	th := testThresholds()

	if got := bbState(105, 104, 110, th); got != StateBreakoutUpper {
		t.Errorf("expected breakout_upper, got %s", got)
	}
	if got := bbState(103, 104, 85, th); got != StateNearUpper {
		t.Errorf("expected near_upper, got %s", got)
	}
	if got := bbState(100, 104, 50, th); got != StateNeutral {
		t.Errorf("expected neutral, got %s", got)
	}
}

func TestMaState(t *testing.T) {
	if got := maState(100, 99, 101); got != StateBearishCross {
		t.Errorf("expected bearish_cross, got %s", got)
	}
	if got := maState(100, 101, 99); got != StateApproachingDown {
		t.Errorf("expected approaching_down, got %s", got)
	}
	if got := maState(102, 101, 99); got != StateNeutral {
		t.Errorf("expected neutral, got %s", got)
	}
}

func TestStochState(t *testing.T) {
	th := testThresholds()

	if got := stochState(85, th); got != StateOverbought {
		t.Errorf("expected overbought, got %s", got)
	}
	if got := stochState(75, th); got != StateElevated {
		t.Errorf("expected elevated, got %s", got)
	}
	if got := stochState(50, th); got != StateNeutral {
		t.Errorf("expected neutral, got %s", got)
	}
}
