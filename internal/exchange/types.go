package exchange

import "time"

const (
	// Timeframe10m 为短线急跌检测周期。
	Timeframe10m = "10m"
	// Timeframe1h 为中期走势周期。
	Timeframe1h = "1h"
	// Timeframe1d 为长期趋势与技术指标周期。
	Timeframe1d = "1d"
)

// Candle 代表单根K线。
type Candle struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// OrderBookLevel 表示盘口档位。
type OrderBookLevel struct {
	Price  float64
	Amount float64
}

// OrderBookSnapshot 为订单簿快照。
type OrderBookSnapshot struct {
	Symbol    string
	Bids      []OrderBookLevel
	Asks      []OrderBookLevel
	Timestamp time.Time
}

// CandleSnapshot 聚合单个资产三个时间框架的K线数据。
type CandleSnapshot struct {
	Symbol      string
	Candles10M  []Candle
	Candles1H   []Candle
	Candles1D   []Candle
	RetrievedAt time.Time
}

// SnapshotRequest 控制一次K线采集的参数。
type SnapshotRequest struct {
	Limit10M int
	Limit1H  int
	Limit1D  int
}

// DefaultSnapshotRequest 返回默认快照参数。
func DefaultSnapshotRequest() SnapshotRequest {
	return SnapshotRequest{
		Limit10M: 72,
		Limit1H:  24,
		Limit1D:  100,
	}
}
