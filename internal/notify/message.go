package notify

import (
	"fmt"
	"math"
	"strings"

	"sell-radar/internal/config"
	"sell-radar/internal/signal"
)

// FormatAlert 将评估结果渲染为告警消息文本。
// 各分析段落按数据是否存在及幅度是否值得展示逐行拼装。
func FormatAlert(a signal.Assessment, th config.Thresholds) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s [%s] %s %s\n", a.Stage.Emoji(), assetName(a.Asset), a.Stage.Label(), a.Stage.Stars())
	b.WriteString("━━━━━━━━━━━━━━━━━━━━━\n")
	if a.Pattern != nil {
		fmt.Fprintf(&b, "💰 当前价: %s\n", formatPrice(a.Pattern.CurrentPrice))
	}
	fmt.Fprintf(&b, "🎯 建议操作: %s\n\n", a.Stage.Action())

	b.WriteString("【 价格形态 】\n")
	if p := a.Pattern; p != nil {
		if p.QuickDrop > 3 {
			fmt.Fprintf(&b, "🚨 短线急跌: %d分钟前高点(%s)以来 -%.1f%%\n", p.MinutesSinceHigh, formatPrice(p.RecentHigh), p.QuickDrop)
		}
		if p.DropFromHigh12h > 5 {
			fmt.Fprintf(&b, "📉 12小时高点(%s)回落: -%.1f%%\n", formatPrice(p.High12h), p.DropFromHigh12h)
		}
		if math.Abs(p.Surge6h) > 10 {
			emoji := "📈"
			if p.Surge6h < 0 {
				emoji = "📉"
			}
			fmt.Fprintf(&b, "%s 6小时变化: %+.1f%%\n", emoji, p.Surge6h)
		}
		if math.Abs(p.Change1h) > 2 {
			emoji := "📊"
			if p.Change1h < 0 {
				emoji = "⚠️"
			}
			fmt.Fprintf(&b, "%s 1小时变化: %+.1f%%\n", emoji, p.Change1h)
		}
		if p.AvgVolatility > 2 {
			fmt.Fprintf(&b, "⚡ 波动率: %.1f%% (最近%d根)\n", p.AvgVolatility, th.VolatilityCheckCandles)
		}
	}

	b.WriteString("\n【 成交量 】\n")
	if v := a.Volume; v != nil {
		if v.VolumeDeclining {
			fmt.Fprintf(&b, "⚠️ 成交量: 连续%d日萎缩 ▶ 上行动能减弱\n", th.VolumeDeclineDays)
		}
		if v.Divergence {
			b.WriteString("⚡ 量价背离:\n")
			fmt.Fprintf(&b, "   └ 价格 %+.1f%%, 成交量 %+.1f%%\n", v.PriceChange, v.VolumeChange)
			b.WriteString("   └ 价涨量缩 ▶ 卖出信号\n")
		}
		fmt.Fprintf(&b, "📊 量比(对20日均量): %.2f\n", v.VolumeRatio)
	}

	if o := a.Orderbook; o != nil {
		fmt.Fprintf(&b, "\n📊 盘口: 卖/买比 %.2f\n", o.AskBidRatio)
		if o.AskBidRatio > th.OrderbookThreshold {
			b.WriteString("   └ 卖压占优 ▶ 下行压力\n")
		}
	}

	b.WriteString("\n【 技术指标 】\n")
	if ind := a.Indicators; ind != nil {
		fmt.Fprintf(&b, "%s RSI: %.1f → %s\n", stateEmoji(ind.RSISignal == signal.StateOverbought, ind.RSISignal == signal.StateElevated), ind.RSI, indicatorLabel(ind.RSISignal))
		fmt.Fprintf(&b, "%s MACD: %s\n", stateEmoji(ind.MACDSignal == signal.StateDeadCross, false), indicatorLabel(ind.MACDSignal))
		bbHot := ind.BBSignal == signal.StateBreakoutUpper || ind.BBSignal == signal.StateNearUpper
		fmt.Fprintf(&b, "%s 布林带: %s (%.0f%%)\n", stateEmoji(bbHot, false), indicatorLabel(ind.BBSignal), ind.BBPosition)
		fmt.Fprintf(&b, "%s 均线: %s\n", stateEmoji(ind.MASignal == signal.StateBearishCross, false), indicatorLabel(ind.MASignal))
		fmt.Fprintf(&b, "%s 随机指标: %.1f → %s\n", stateEmoji(ind.StochSignal == signal.StateOverbought, ind.StochSignal == signal.StateElevated), ind.Stoch, indicatorLabel(ind.StochSignal))
	}

	b.WriteString("\n━━━━━━━━━━━━━━━━━━━━━\n")
	fmt.Fprintf(&b, "🎯 综合判断: %d/10 项指标一致\n", a.Score)
	fmt.Fprintf(&b, "⏰ 触发时间(UTC): %s", a.GeneratedAt.UTC().Format("2006-01-02 15:04:05"))

	return b.String()
}

// indicatorLabel 将指标状态翻译为展示文案。
func indicatorLabel(state string) string {
	switch state {
	case signal.StateOverbought:
		return "超买"
	case signal.StateElevated:
		return "高位"
	case signal.StateDeadCross:
		return "死叉"
	case signal.StateBearishTurn:
		return "转弱"
	case signal.StateBreakoutUpper:
		return "突破上轨"
	case signal.StateNearUpper:
		return "逼近上轨"
	case signal.StateBearishCross:
		return "均线下穿"
	case signal.StateApproachingDown:
		return "跌破短均线"
	default:
		return "中性"
	}
}

func stateEmoji(triggered, warning bool) string {
	switch {
	case triggered:
		return "✅"
	case warning:
		return "⚠️"
	default:
		return "📊"
	}
}

func assetName(symbol string) string {
	if idx := strings.Index(symbol, "/"); idx > 0 {
		return symbol[:idx]
	}
	return symbol
}

func formatPrice(price float64) string {
	if price >= 100 {
		return fmt.Sprintf("%.0f", price)
	}
	return fmt.Sprintf("%.4g", price)
}
