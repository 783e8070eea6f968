package signal

import (
	"sell-radar/internal/config"
	"sell-radar/internal/exchange"
)

// AnalyzeVolume 从日线K线推导成交量趋势与量价背离。
// 序列不足20根时返回 nil。
func AnalyzeVolume(daily []exchange.Candle, th config.Thresholds) *VolumeProfile {
	if len(daily) < minCandlesDaily {
		return nil
	}

	series := NewSeries(daily)
	volumes := series.Volume
	closes := series.Close

	currentVolume := Last(volumes)
	volumeMA20 := average(SliceTail(volumes, 20))
	volumeRatio := SafeDivide(currentVolume, volumeMA20)

	declining := volumeDeclining(volumes, th.VolumeDeclineDays)

	// 量价背离：回看窗口内价格上涨而成交量下滑视为看跌信号。
	lookback := th.DivergenceLookbackDays
	var priceChange, volumeChange float64
	if lookback > 0 && len(daily) > lookback {
		priceChange = PercentChange(Last(closes), closes[len(closes)-1-lookback])
		volumeChange = PercentChange(currentVolume, volumes[len(volumes)-1-lookback])
	}

	divergence := priceChange > th.DivergencePriceThreshold && volumeChange < th.DivergenceVolumeThreshold

	return &VolumeProfile{
		VolumeRatio:     clean(volumeRatio),
		VolumeDeclining: declining,
		Divergence:      divergence,
		PriceChange:     clean(priceChange),
		VolumeChange:    clean(volumeChange),
	}
}

// volumeDeclining 判断最近 days 个成交量是否严格单调递减。
// 窗口内观测值不足2个时返回 false。
func volumeDeclining(volumes []float64, days int) bool {
	window := SliceTail(volumes, days)
	if len(window) < 2 {
		return false
	}
	for i := 1; i < len(window); i++ {
		if window[i] >= window[i-1] {
			return false
		}
	}
	return true
}
