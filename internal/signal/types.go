package signal

import "time"

// 指标分类状态，与消息渲染及计分逻辑共用。
const (
	StateNeutral         = "neutral"
	StateOverbought      = "overbought"
	StateElevated        = "elevated"
	StateDeadCross       = "dead_cross"
	StateBearishTurn     = "bearish_turn"
	StateBreakoutUpper   = "breakout_upper"
	StateNearUpper       = "near_upper"
	StateBearishCross    = "bearish_cross"
	StateApproachingDown = "approaching_down"
)

// PricePattern 描述单个资产在一次扫描中的多周期价格形态。
type PricePattern struct {
	CurrentPrice     float64
	QuickDrop        float64
	MinutesSinceHigh int
	RecentHigh       float64
	High12h          float64
	DropFromHigh12h  float64
	Surge6h          float64
	Change1h         float64
	Change7d         float64
	AvgVolatility    float64
}

// VolumeProfile 描述成交量趋势与量价背离。
type VolumeProfile struct {
	VolumeRatio     float64
	VolumeDeclining bool
	Divergence      bool
	PriceChange     float64
	VolumeChange    float64
}

// OrderbookPressure 描述盘口买卖压力。
type OrderbookPressure struct {
	TotalBid    float64
	TotalAsk    float64
	AskBidRatio float64
	TopBid      float64
	TopAsk      float64
}

// TechnicalIndicators 描述日线级别技术指标及其分类状态。
type TechnicalIndicators struct {
	RSI         float64
	RSISignal   string
	MACDSignal  string
	BBSignal    string
	BBPosition  float64
	MASignal    string
	Stoch       float64
	StochSignal string
}

// Assessment 为单个资产一次扫描的完整评估结果。
type Assessment struct {
	Asset       string
	Score       int
	Signals     []string
	Stage       Stage
	Pattern     *PricePattern
	Volume      *VolumeProfile
	Orderbook   *OrderbookPressure
	Indicators  *TechnicalIndicators
	GeneratedAt time.Time
}
