package exchange

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MarketDataService 聚合K线及盘口数据获取。
type MarketDataService struct {
	client *Client
	logger *zap.Logger
}

// NewMarketDataService 创建市场数据服务。
func NewMarketDataService(client *Client, logger *zap.Logger) *MarketDataService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarketDataService{
		client: client,
		logger: logger,
	}
}

// ListAssets 返回指定计价货币下的资产列表。
func (s *MarketDataService) ListAssets(ctx context.Context, quote string) ([]string, error) {
	return s.client.ListSymbols(ctx, quote)
}

// GetCandleSnapshot 并发拉取10分钟、1小时、日线三个周期的K线。
// 盘口快照单独获取，便于调用方在预筛选之后再决定是否拉取。
func (s *MarketDataService) GetCandleSnapshot(ctx context.Context, symbol string, req SnapshotRequest) (CandleSnapshot, error) {
	defaultReq := DefaultSnapshotRequest()
	if req.Limit10M <= 0 {
		req.Limit10M = defaultReq.Limit10M
	}
	if req.Limit1H <= 0 {
		req.Limit1H = defaultReq.Limit1H
	}
	if req.Limit1D <= 0 {
		req.Limit1D = defaultReq.Limit1D
	}

	var (
		candles10M []Candle
		candles1H  []Candle
		candles1D  []Candle
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		data, err := s.client.FetchCandles(groupCtx, symbol, Timeframe10m, int64(req.Limit10M))
		if err != nil {
			return err
		}
		candles10M = data
		return nil
	})

	group.Go(func() error {
		data, err := s.client.FetchCandles(groupCtx, symbol, Timeframe1h, int64(req.Limit1H))
		if err != nil {
			return err
		}
		candles1H = data
		return nil
	})

	group.Go(func() error {
		data, err := s.client.FetchCandles(groupCtx, symbol, Timeframe1d, int64(req.Limit1D))
		if err != nil {
			return err
		}
		candles1D = data
		return nil
	})

	if err := group.Wait(); err != nil {
		return CandleSnapshot{}, err
	}

	snapshot := CandleSnapshot{
		Symbol:      symbol,
		Candles10M:  candles10M,
		Candles1H:   candles1H,
		Candles1D:   candles1D,
		RetrievedAt: time.Now().UTC(),
	}

	s.logger.Debug("K线快照获取完成",
		zap.String("symbol", snapshot.Symbol),
		zap.Time("retrieved_at", snapshot.RetrievedAt),
		zap.Int("candle_10m_count", len(snapshot.Candles10M)),
		zap.Int("candle_1h_count", len(snapshot.Candles1H)),
		zap.Int("candle_1d_count", len(snapshot.Candles1D)),
	)

	return snapshot, nil
}

// GetOrderBook 获取订单簿快照。
func (s *MarketDataService) GetOrderBook(ctx context.Context, symbol string, depth int) (OrderBookSnapshot, error) {
	return s.client.FetchOrderBook(ctx, symbol, int64(depth))
}
