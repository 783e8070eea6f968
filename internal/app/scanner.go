package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"sell-radar/internal/config"
	"sell-radar/internal/exchange"
	"sell-radar/internal/notify"
	"sell-radar/internal/ratelimit"
	"sell-radar/internal/signal"
	"sell-radar/internal/store"
)

// MarketData 抽象行情数据源。
type MarketData interface {
	ListAssets(ctx context.Context, quote string) ([]string, error)
	GetCandleSnapshot(ctx context.Context, symbol string, req exchange.SnapshotRequest) (exchange.CandleSnapshot, error)
	GetOrderBook(ctx context.Context, symbol string, depth int) (exchange.OrderBookSnapshot, error)
}

// Notifier 抽象告警推送端。
type Notifier interface {
	Send(text string) error
}

// SignalSink 抽象信号持久化端。
type SignalSink interface {
	AppendSignal(ctx context.Context, rec store.SignalRecord) error
}

// Scanner 驱动一轮完整的资产扫描：
// 逐个资产拉取K线、做形态预筛选、跑齐分析器并计分分级，
// 达到告警等级的评估结果交给推送与持久化。
type Scanner struct {
	market     MarketData
	notifier   Notifier
	sink       SignalSink
	limiter    *ratelimit.Limiter
	exchange   config.ExchangeConfig
	thresholds config.Thresholds
	logger     *zap.Logger
}

// NewScanner 创建扫描器。notifier 可为 nil（推送关闭时）。
func NewScanner(market MarketData, notifier Notifier, sink SignalSink, limiter *ratelimit.Limiter, exchangeCfg config.ExchangeConfig, th config.Thresholds, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		market:     market,
		notifier:   notifier,
		sink:       sink,
		limiter:    limiter,
		exchange:   exchangeCfg,
		thresholds: th,
		logger:     logger,
	}
}

// Scan 执行一轮扫描并返回产生的告警数量。
// 单个资产的任何失败只跳过该资产，不会中断整轮扫描。
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	assets, err := s.market.ListAssets(ctx, s.exchange.QuoteCurrency)
	if err != nil {
		return 0, err
	}

	s.logger.Info("开始扫描",
		zap.Int("asset_count", len(assets)),
		zap.String("quote", s.exchange.QuoteCurrency),
	)

	req := exchange.SnapshotRequest{
		Limit10M: s.exchange.Candle10m,
		Limit1H:  s.exchange.Candle1h,
		Limit1D:  s.exchange.Candle1d,
	}

	signalCount := 0
	for idx, asset := range assets {
		if idx > 0 && idx%50 == 0 {
			s.logger.Info("扫描进度",
				zap.Int("done", idx),
				zap.Int("total", len(assets)),
			)
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return signalCount, err
		}

		delivered, err := s.scanAsset(ctx, asset, req)
		if err != nil {
			if ctx.Err() != nil {
				return signalCount, ctx.Err()
			}
			if errors.Is(err, exchange.ErrMaintenance) {
				s.logger.Warn("交易所维护中，终止本轮扫描", zap.Error(err))
				return signalCount, nil
			}
			s.logger.Warn("资产扫描失败，已跳过",
				zap.String("asset", asset),
				zap.Error(err),
			)
			continue
		}
		if delivered {
			signalCount++
		}
	}

	s.logger.Info("扫描完成", zap.Int("signal_count", signalCount))
	return signalCount, nil
}

// scanAsset 处理单个资产，返回是否产生了告警。
func (s *Scanner) scanAsset(ctx context.Context, asset string, req exchange.SnapshotRequest) (bool, error) {
	snapshot, err := s.market.GetCandleSnapshot(ctx, asset, req)
	if err != nil {
		return false, err
	}

	pattern := signal.AnalyzePattern(snapshot.Candles10M, snapshot.Candles1H, snapshot.Candles1D, s.thresholds)
	if pattern == nil {
		return false, nil
	}

	// 廉价预筛选：波动不足的资产不再做后续分析与盘口拉取。
	if pattern.QuickDrop < s.thresholds.MinQuickDrop && pattern.DropFromHigh12h < s.thresholds.MinDrop12h {
		return false, nil
	}

	s.logger.Debug("检测到价格波动，进入精细分析", zap.String("asset", asset))

	volume := signal.AnalyzeVolume(snapshot.Candles1D, s.thresholds)

	var pressure *signal.OrderbookPressure
	book, err := s.market.GetOrderBook(ctx, asset, s.exchange.OrderBookDepth)
	if err != nil {
		// 盘口失败只损失对应信号分量，不影响其余计分。
		s.logger.Warn("拉取盘口失败", zap.String("asset", asset), zap.Error(err))
	} else {
		pressure = signal.AnalyzeOrderbook(book)
	}

	indicators := signal.ComputeIndicators(snapshot.Candles1D, s.thresholds)

	score, triggered := signal.Score(pattern, volume, pressure, indicators, s.thresholds)
	stage := signal.ClassifyStage(score, s.thresholds)
	if stage == signal.StageNone {
		return false, nil
	}

	assessment := signal.Assessment{
		Asset:       asset,
		Score:       score,
		Signals:     triggered,
		Stage:       stage,
		Pattern:     pattern,
		Volume:      volume,
		Orderbook:   pressure,
		Indicators:  indicators,
		GeneratedAt: snapshot.RetrievedAt,
	}

	s.deliver(ctx, assessment)

	s.logger.Info("卖出信号已发出",
		zap.String("asset", asset),
		zap.String("stage", stage.String()),
		zap.Int("score", score),
	)

	return true, nil
}

// deliver 将评估结果交给推送与持久化，两者失败均不影响扫描。
func (s *Scanner) deliver(ctx context.Context, assessment signal.Assessment) {
	if s.notifier != nil {
		message := notify.FormatAlert(assessment, s.thresholds)
		if err := s.notifier.Send(message); err != nil {
			s.logger.Warn("推送告警失败",
				zap.String("asset", assessment.Asset),
				zap.Error(err),
			)
		}
	}

	if s.sink != nil {
		if err := s.sink.AppendSignal(ctx, store.NewSignalRecord(assessment)); err != nil {
			s.logger.Warn("持久化信号失败",
				zap.String("asset", assessment.Asset),
				zap.Error(err),
			)
		}
	}
}
