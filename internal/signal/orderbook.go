package signal

import "sell-radar/internal/exchange"

// AnalyzeOrderbook 从单次盘口快照推导买卖压力。
// 快照两侧均为空视为畸形数据，返回 nil。
func AnalyzeOrderbook(snapshot exchange.OrderBookSnapshot) *OrderbookPressure {
	if len(snapshot.Bids) == 0 && len(snapshot.Asks) == 0 {
		return nil
	}

	var totalBid, totalAsk float64
	for _, level := range snapshot.Bids {
		totalBid += level.Amount
	}
	for _, level := range snapshot.Asks {
		totalAsk += level.Amount
	}

	// 买单总量为0时比率记为0，避免除零。
	askBidRatio := SafeDivide(totalAsk, totalBid)

	var topBid, topAsk float64
	if len(snapshot.Bids) > 0 {
		topBid = snapshot.Bids[0].Amount
	}
	if len(snapshot.Asks) > 0 {
		topAsk = snapshot.Asks[0].Amount
	}

	return &OrderbookPressure{
		TotalBid:    totalBid,
		TotalAsk:    totalAsk,
		AskBidRatio: askBidRatio,
		TopBid:      topBid,
		TopAsk:      topAsk,
	}
}
