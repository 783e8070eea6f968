package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"sell-radar/internal/config"
	"sell-radar/internal/exchange"
	"sell-radar/internal/notify"
	"sell-radar/internal/ratelimit"
	"sell-radar/internal/store"
)

// App 聚合核心依赖并驱动系统生命周期。
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
}

// New 创建 App 实例。
func New(cfg *config.Config, logger *zap.Logger, store *store.Store) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		store:  store,
	}
}

// Run 按配置的扫描周期驱动扫描循环，直到收到退出信号。
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("卖出信号监控已初始化",
		zap.String("environment", a.cfg.App.Environment),
		zap.String("exchange", a.cfg.Exchange.Name),
		zap.String("quote", a.cfg.Exchange.QuoteCurrency),
		zap.Duration("scan_interval", a.cfg.Scheduler.ScanInterval),
	)

	client, err := exchange.NewClient(a.cfg.Exchange, a.logger)
	if err != nil {
		return fmt.Errorf("初始化行情客户端失败: %w", err)
	}
	market := exchange.NewMarketDataService(client, a.logger)

	var notifier Notifier
	if a.cfg.Telegram.Enabled {
		client, err := notify.NewClient(a.cfg.Telegram, a.logger)
		if err != nil {
			return fmt.Errorf("初始化 Telegram 客户端失败: %w", err)
		}
		notifier = client

		if err := client.Send(fmt.Sprintf("🔴 卖出信号监控已启动 (%s)", time.Now().UTC().Format("2006-01-02 15:04:05"))); err != nil {
			// 推送不可用不阻止扫描，只降级为日志告警。
			a.logger.Warn("启动通知发送失败", zap.Error(err))
		}
	}

	limiter := ratelimit.NewLimiter(a.cfg.Scheduler.AssetsPerMinute)
	scanner := NewScanner(market, notifier, a.store, limiter, a.cfg.Exchange, a.cfg.Thresholds, a.logger)

	if _, err := scanner.Scan(ctx); err != nil && ctx.Err() == nil {
		a.logger.Error("首轮扫描失败", zap.Error(err))
	}

	ticker := time.NewTicker(a.cfg.Scheduler.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if notifier != nil {
				if err := notifier.Send(fmt.Sprintf("🛑 卖出信号监控已停止 (%s)", time.Now().UTC().Format("2006-01-02 15:04:05"))); err != nil {
					a.logger.Warn("停止通知发送失败", zap.Error(err))
				}
			}
			if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("系统异常退出: %w", err)
			}
			a.logger.Info("系统收到退出信号，正在停止")
			return nil
		case <-ticker.C:
			if _, err := scanner.Scan(ctx); err != nil && ctx.Err() == nil {
				a.logger.Error("执行扫描失败", zap.Error(err))
			}
		}
	}
}
