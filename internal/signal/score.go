package signal

import (
	"fmt"

	"sell-radar/internal/config"
)

// Score 依据十项独立检查计算卖出压力得分（0~10），
// 并返回按检查顺序排列的触发信号描述。缺失的分析结果不参与计分。
func Score(pattern *PricePattern, volume *VolumeProfile, book *OrderbookPressure, ind *TechnicalIndicators, th config.Thresholds) (int, []string) {
	score := 0
	signals := make([]string, 0, 10)

	if pattern != nil {
		if pattern.QuickDrop > th.QuickDropThreshold {
			score++
			signals = append(signals, fmt.Sprintf("短线急跌 %d分钟前 -%.1f%%", pattern.MinutesSinceHigh, pattern.QuickDrop))
		}
		if pattern.DropFromHigh12h > th.DropFromHigh12hThreshold {
			score++
			signals = append(signals, fmt.Sprintf("12小时高点回落 -%.1f%%", pattern.DropFromHigh12h))
		}
		if pattern.Surge6h > th.Surge6hThreshold && pattern.Change1h < th.Change1hThreshold {
			score++
			signals = append(signals, "急涨后转跌")
		}
		if pattern.AvgVolatility > th.VolatilityThreshold {
			score++
			signals = append(signals, fmt.Sprintf("高波动 %.1f%%", pattern.AvgVolatility))
		}
	}

	if volume != nil {
		if volume.VolumeDeclining {
			score++
			signals = append(signals, "成交量持续萎缩")
		}
		if volume.Divergence {
			score++
			signals = append(signals, "量价背离")
		}
	}

	if book != nil {
		if book.AskBidRatio > th.OrderbookThreshold {
			score++
			signals = append(signals, "卖压盘口占优")
		}
	}

	if ind != nil {
		if ind.RSI > th.RsiOverbought {
			score++
			signals = append(signals, "RSI 超买")
		}
		if ind.MACDSignal == StateDeadCross {
			score++
			signals = append(signals, "MACD 死叉")
		}
		if ind.BBSignal == StateBreakoutUpper || ind.BBSignal == StateNearUpper {
			score++
			signals = append(signals, "布林带上轨区")
		}
	}

	return score, signals
}
