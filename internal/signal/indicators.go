package signal

import (
	talib "github.com/markcheno/go-talib"

	"sell-radar/internal/config"
	"sell-radar/internal/exchange"
)

const minCandlesIndicator = 50

// ComputeIndicators 基于日线K线计算技术指标并给出分类状态。
// 序列不足50根时返回 nil，避免输出未完成预热的指标值。
func ComputeIndicators(daily []exchange.Candle, th config.Thresholds) *TechnicalIndicators {
	if len(daily) < minCandlesIndicator {
		return nil
	}

	series := NewSeries(daily)
	closes := series.Close
	currentPrice := Last(closes)

	rsi := clean(Last(talib.Rsi(closes, 14)))

	macdLine, signalLine, macdHist := talib.Macd(closes, 12, 26, 9)
	macdSignal := macdState(Last(macdLine), Last(signalLine), Last(macdHist))

	bbUpper, _, bbLower := talib.BBands(closes, 20, 2, 2, talib.SMA)
	upper := Last(bbUpper)
	lower := Last(bbLower)
	bbPosition := clean(SafeDivide(currentPrice-lower, upper-lower) * 100)
	bbSignal := bbState(currentPrice, upper, bbPosition, th)

	ma5 := Last(talib.Sma(closes, 5))
	ma20 := Last(talib.Sma(closes, 20))
	maSignal := maState(currentPrice, ma5, ma20)

	fastK, _ := talib.StochF(series.High, series.Low, closes, 14, 3, talib.SMA)
	stoch := clean(Last(fastK))

	return &TechnicalIndicators{
		RSI:         rsi,
		RSISignal:   rsiState(rsi, th),
		MACDSignal:  macdSignal,
		BBSignal:    bbSignal,
		BBPosition:  bbPosition,
		MASignal:    maSignal,
		Stoch:       stoch,
		StochSignal: stochState(stoch, th),
	}
}

func rsiState(rsi float64, th config.Thresholds) string {
	switch {
	case rsi > th.RsiOverbought:
		return StateOverbought
	case rsi > th.RsiHigh:
		return StateElevated
	default:
		return StateNeutral
	}
}

func macdState(line, signal, hist float64) string {
	switch {
	case line < signal && hist < 0:
		return StateDeadCross
	case line < signal:
		return StateBearishTurn
	default:
		return StateNeutral
	}
}

func bbState(price, upper, position float64, th config.Thresholds) string {
	switch {
	case price >= upper:
		return StateBreakoutUpper
	case position > th.BbHighThreshold:
		return StateNearUpper
	default:
		return StateNeutral
	}
}

func maState(price, ma5, ma20 float64) string {
	switch {
	case ma5 < ma20:
		return StateBearishCross
	case price < ma5:
		return StateApproachingDown
	default:
		return StateNeutral
	}
}

func stochState(k float64, th config.Thresholds) string {
	switch {
	case k > th.StochOverbought:
		return StateOverbought
	case k > th.StochHigh:
		return StateElevated
	default:
		return StateNeutral
	}
}
