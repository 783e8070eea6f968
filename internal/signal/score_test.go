package signal

import (
	"strings"
	"testing"
)

func triggeringInputs() (*PricePattern, *VolumeProfile, *OrderbookPressure, *TechnicalIndicators) {
	pattern := &PricePattern{
		CurrentPrice:     95,
		QuickDrop:        5.0,
		MinutesSinceHigh: 30,
		DropFromHigh12h:  8.0,
		Surge6h:          15.0,
		Change1h:         -2.0,
		AvgVolatility:    3.0,
	}
	volume := &VolumeProfile{
		VolumeDeclining: true,
		Divergence:      true,
	}
	book := &OrderbookPressure{
		AskBidRatio: 2.0,
	}
	ind := &TechnicalIndicators{
		RSI:        75,
		RSISignal:  StateOverbought,
		MACDSignal: StateDeadCross,
		BBSignal:   StateBreakoutUpper,
	}
	return pattern, volume, book, ind
}

func TestScore_AllAbsentIsZero(t *testing.T) {
	th := testThresholds()

	score, signals := Score(nil, nil, nil, nil, th)
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	if len(signals) != 0 {
		t.Errorf("signals = %v, want empty", signals)
	}
	if stage := ClassifyStage(score, th); stage != StageNone {
		t.Errorf("stage = %s, want none", stage)
	}
}

func TestScore_AllChecksTriggered(t *testing.T) {
	th := testThresholds()
	pattern, volume, book, ind := triggeringInputs()

	score, signals := Score(pattern, volume, book, ind, th)
	if score != 10 {
		t.Fatalf("score = %d, want 10 (signals: %v)", score, signals)
	}
	if len(signals) != 10 {
		t.Fatalf("signals count = %d, want 10", len(signals))
	}

	// 描述顺序必须与检查顺序一致。
	wantPrefixes := []string{
		"短线急跌", "12小时高点回落", "急涨后转跌", "高波动",
		"成交量持续萎缩", "量价背离", "卖压盘口占优",
		"RSI 超买", "MACD 死叉", "布林带上轨区",
	}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(signals[i], prefix) {
			t.Errorf("signals[%d] = %q, want prefix %q", i, signals[i], prefix)
		}
	}

	if stage := ClassifyStage(score, th); stage != StageImmediate {
		t.Errorf("stage = %s, want immediate", stage)
	}
}

func TestScore_ThresholdBoundaryIsStrict(t *testing.T) {
	th := testThresholds()
	pattern, _, _, _ := triggeringInputs()
	pattern.QuickDrop = th.QuickDropThreshold // 等于阈值不应触发

	score, signals := Score(pattern, nil, nil, nil, th)
	for _, s := range signals {
		if strings.HasPrefix(s, "短线急跌") {
			t.Errorf("quick drop equal to threshold must not trigger, signals=%v", signals)
		}
	}
	if score != 3 {
		t.Errorf("score = %d, want 3 (remaining pattern checks)", score)
	}
}

func TestScore_AbsentGroupContributesNothing(t *testing.T) {
	th := testThresholds()
	pattern, volume, _, ind := triggeringInputs()

	withBook, _ := Score(pattern, volume, &OrderbookPressure{AskBidRatio: 2.0}, ind, th)
	withoutBook, _ := Score(pattern, volume, nil, ind, th)
	if withBook-withoutBook != 1 {
		t.Errorf("orderbook group should contribute exactly 1, got %d vs %d", withBook, withoutBook)
	}
}

func TestClassifyStage_Ladder(t *testing.T) {
	th := testThresholds() // review=3 prepare=5 immediate=7

	cases := []struct {
		score int
		want  Stage
	}{
		{0, StageNone},
		{2, StageNone},
		{3, StageReview},
		{4, StageReview},
		{5, StagePrepare},
		{6, StagePrepare},
		{7, StageImmediate},
		{10, StageImmediate},
	}
	for _, tc := range cases {
		if got := ClassifyStage(tc.score, th); got != tc.want {
			t.Errorf("ClassifyStage(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}

	// 分级必须随得分单调不降。
	prev := StageNone
	for score := 0; score <= 10; score++ {
		stage := ClassifyStage(score, th)
		if stage < prev {
			t.Errorf("stage regressed at score %d: %s < %s", score, stage, prev)
		}
		prev = stage
	}
}
