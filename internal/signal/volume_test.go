package signal

import (
	"math"
	"testing"
	"time"

	"sell-radar/internal/exchange"
)

func dailyWithVolumes(volumes []float64, closePrice float64) []exchange.Candle {
	return makeCandles(len(volumes), 24*time.Hour, func(i int) exchange.Candle {
		return exchange.Candle{Open: closePrice, High: closePrice, Low: closePrice, Close: closePrice, Volume: volumes[i]}
	})
}

func TestAnalyzeVolume_TooShortReturnsNil(t *testing.T) {
	th := testThresholds()
	daily := flatCandles(19, 24*time.Hour, 100, 1)
	if got := AnalyzeVolume(daily, th); got != nil {
		t.Fatalf("expected nil for short series, got %+v", got)
	}
}

func TestAnalyzeVolume_Ratio(t *testing.T) {
	th := testThresholds()
	volumes := make([]float64, 20)
	for i := range volumes {
		volumes[i] = 100
	}
	volumes[19] = 290 // 均量 109.5，量比 290/109.5

	profile := AnalyzeVolume(dailyWithVolumes(volumes, 100), th)
	if profile == nil {
		t.Fatal("expected profile, got nil")
	}
	want := 290.0 / 109.5
	if math.Abs(profile.VolumeRatio-want) > 1e-9 {
		t.Errorf("VolumeRatio = %f, want %f", profile.VolumeRatio, want)
	}
}

func TestAnalyzeVolume_DecliningTrend(t *testing.T) {
	th := testThresholds()
	th.VolumeDeclineDays = 5

	volumes := make([]float64, 20)
	for i := range volumes {
		volumes[i] = 100
	}
	// 最后5天严格递减。
	for i, v := range []float64{90, 80, 70, 60, 50} {
		volumes[15+i] = v
	}

	profile := AnalyzeVolume(dailyWithVolumes(volumes, 100), th)
	if profile == nil {
		t.Fatal("expected profile, got nil")
	}
	if !profile.VolumeDeclining {
		t.Error("expected VolumeDeclining=true for strictly decreasing volumes")
	}
}

func TestAnalyzeVolume_NotStrictlyDeclining(t *testing.T) {
	th := testThresholds()
	th.VolumeDeclineDays = 5

	volumes := make([]float64, 20)
	for i := range volumes {
		volumes[i] = 100
	}
	for i, v := range []float64{90, 80, 80, 60, 50} {
		volumes[15+i] = v
	}

	profile := AnalyzeVolume(dailyWithVolumes(volumes, 100), th)
	if profile == nil {
		t.Fatal("expected profile, got nil")
	}
	if profile.VolumeDeclining {
		t.Error("expected VolumeDeclining=false when a day fails strict decrease")
	}
}

func TestAnalyzeVolume_DeclineWindowTooSmall(t *testing.T) {
	th := testThresholds()
	th.VolumeDeclineDays = 1

	volumes := make([]float64, 20)
	for i := range volumes {
		volumes[i] = float64(100 - i)
	}

	profile := AnalyzeVolume(dailyWithVolumes(volumes, 100), th)
	if profile == nil {
		t.Fatal("expected profile, got nil")
	}
	if profile.VolumeDeclining {
		t.Error("expected VolumeDeclining=false when window has fewer than 2 observations")
	}
}

func TestAnalyzeVolume_BearishDivergence(t *testing.T) {
	th := testThresholds()
	th.DivergenceLookbackDays = 5
	th.DivergencePriceThreshold = 5.0
	th.DivergenceVolumeThreshold = -20.0

	candles := makeCandles(20, 24*time.Hour, func(i int) exchange.Candle {
		closePrice := 100.0
		volume := 1000.0
		if i == 19 {
			closePrice = 110 // 价格 +10%
			volume = 500     // 成交量 -50%
		}
		return exchange.Candle{Open: closePrice, High: closePrice, Low: closePrice, Close: closePrice, Volume: volume}
	})

	profile := AnalyzeVolume(candles, th)
	if profile == nil {
		t.Fatal("expected profile, got nil")
	}
	if !profile.Divergence {
		t.Errorf("expected divergence, price=%f volume=%f", profile.PriceChange, profile.VolumeChange)
	}
	if math.Abs(profile.PriceChange-10.0) > 1e-9 {
		t.Errorf("PriceChange = %f, want 10", profile.PriceChange)
	}
	if math.Abs(profile.VolumeChange-(-50.0)) > 1e-9 {
		t.Errorf("VolumeChange = %f, want -50", profile.VolumeChange)
	}
}

func TestAnalyzeVolume_LookbackLongerThanSeries(t *testing.T) {
	th := testThresholds()
	th.DivergenceLookbackDays = 25

	profile := AnalyzeVolume(dailyWithVolumes(make([]float64, 20), 100), th)
	if profile == nil {
		t.Fatal("expected profile, got nil")
	}
	if profile.Divergence {
		t.Error("expected no divergence when series shorter than lookback")
	}
	if profile.PriceChange != 0 || profile.VolumeChange != 0 {
		t.Errorf("expected zero changes, got price=%f volume=%f", profile.PriceChange, profile.VolumeChange)
	}
}
