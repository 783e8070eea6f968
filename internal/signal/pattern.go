package signal

import (
	"math"

	"sell-radar/internal/config"
	"sell-radar/internal/exchange"
)

const (
	minCandles10M   = 30
	minCandles1H    = 12
	minCandlesDaily = 20

	shortIntervalMinutes = 10
)

// AnalyzePattern 从三个周期的K线推导价格形态。
// 任意一个序列长度不足时返回 nil，表示本轮放弃该资产的形态分析。
func AnalyzePattern(short, medium, daily []exchange.Candle, th config.Thresholds) *PricePattern {
	if len(short) < minCandles10M || len(medium) < minCandles1H || len(daily) < minCandlesDaily {
		return nil
	}

	currentPrice := short[len(short)-1].Close

	// 短线急跌：回看窗口内最高价与当前价的落差。
	// 多根K线并列最高时取最早出现的一根，保证结果确定。
	window := short
	if th.QuickDropLookback > 0 && len(window) > th.QuickDropLookback {
		window = window[len(window)-th.QuickDropLookback:]
	}

	recentHigh := window[0].High
	highIdx := 0
	for i, candle := range window {
		if candle.High > recentHigh {
			recentHigh = candle.High
			highIdx = i
		}
	}

	quickDrop := SafeDivide(recentHigh-currentPrice, recentHigh) * 100
	minutesSinceHigh := (len(window) - highIdx - 1) * shortIntervalMinutes

	// 中期走势：12小时窗口高点回落与近6小时、1小时变化。
	high12h := medium[0].High
	for _, candle := range medium {
		if candle.High > high12h {
			high12h = candle.High
		}
	}
	dropFromHigh12h := SafeDivide(high12h-currentPrice, high12h) * 100

	surge6h := 0.0
	if len(medium) >= 7 {
		surge6h = PercentChange(currentPrice, medium[len(medium)-7].Close)
	}

	change1h := PercentChange(currentPrice, medium[len(medium)-2].Close)

	// 长期趋势：7日变化，不足7日时以序列起点为基准。
	reference := daily[0].Close
	if len(daily) >= 8 {
		reference = daily[len(daily)-8].Close
	}
	change7d := PercentChange(currentPrice, reference)

	avgVolatility := averageVolatility(short, th.VolatilityCheckCandles)

	return &PricePattern{
		CurrentPrice:     currentPrice,
		QuickDrop:        clean(quickDrop),
		MinutesSinceHigh: minutesSinceHigh,
		RecentHigh:       recentHigh,
		High12h:          high12h,
		DropFromHigh12h:  clean(dropFromHigh12h),
		Surge6h:          clean(surge6h),
		Change1h:         clean(change1h),
		Change7d:         clean(change7d),
		AvgVolatility:    clean(avgVolatility),
	}
}

// averageVolatility 计算最近 count 根K线的平均逐根涨跌幅绝对值。
func averageVolatility(candles []exchange.Candle, count int) float64 {
	changes := make([]float64, 0, count)
	for i := 1; i <= count && i+1 <= len(candles); i++ {
		prev := candles[len(candles)-i-1].Close
		curr := candles[len(candles)-i].Close
		if prev == 0 {
			continue
		}
		changes = append(changes, math.Abs((curr-prev)/prev)*100)
	}
	return average(changes)
}
