package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Config 聚合了系统运行所需的全部配置项。
type Config struct {
	App        AppConfig       `mapstructure:"app"`
	Exchange   ExchangeConfig  `mapstructure:"exchange"`
	Telegram   TelegramConfig  `mapstructure:"telegram"`
	Thresholds Thresholds      `mapstructure:"thresholds"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Logging    LoggingConfig   `mapstructure:"logging"`
	Scheduler  SchedulerConfig `mapstructure:"scheduler"`
}

// AppConfig 控制应用级参数。
type AppConfig struct {
	Environment string `mapstructure:"environment"`
}

// ExchangeConfig 描述行情数据源配置。
type ExchangeConfig struct {
	Name           string      `mapstructure:"name"`
	QuoteCurrency  string      `mapstructure:"quote_currency"`
	Candle10m      int         `mapstructure:"candle_10m_count"`
	Candle1h       int         `mapstructure:"candle_1h_count"`
	Candle1d       int         `mapstructure:"candle_1d_count"`
	OrderBookDepth int         `mapstructure:"order_book_depth"`
	Retry          RetryConfig `mapstructure:"retry"`
}

// RetryConfig 统一控制重试机制。
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	MinDelay    time.Duration `mapstructure:"min_delay"`
	MaxDelay    time.Duration `mapstructure:"max_delay"`
}

// TelegramConfig 描述告警推送配置。
type TelegramConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	BotToken   string        `mapstructure:"bot_token"`
	ChatID     int64         `mapstructure:"chat_id"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// Thresholds 汇总全部信号阈值与窗口参数，启动时加载一次，之后只读。
type Thresholds struct {
	QuickDropLookback         int     `mapstructure:"quick_drop_lookback"`
	QuickDropThreshold        float64 `mapstructure:"quick_drop_threshold"`
	MinQuickDrop              float64 `mapstructure:"min_quick_drop"`
	DropFromHigh12hThreshold  float64 `mapstructure:"drop_from_high_12h_threshold"`
	MinDrop12h                float64 `mapstructure:"min_drop_12h"`
	Surge6hThreshold          float64 `mapstructure:"surge_6h_threshold"`
	Change1hThreshold         float64 `mapstructure:"change_1h_threshold"`
	VolatilityCheckCandles    int     `mapstructure:"volatility_check_candles"`
	VolatilityThreshold       float64 `mapstructure:"volatility_threshold"`
	VolumeDeclineDays         int     `mapstructure:"volume_decline_days"`
	DivergenceLookbackDays    int     `mapstructure:"divergence_lookback_days"`
	DivergencePriceThreshold  float64 `mapstructure:"divergence_price_threshold"`
	DivergenceVolumeThreshold float64 `mapstructure:"divergence_volume_threshold"`
	OrderbookThreshold        float64 `mapstructure:"orderbook_threshold"`
	RsiOverbought             float64 `mapstructure:"rsi_overbought"`
	RsiHigh                   float64 `mapstructure:"rsi_high"`
	BbHighThreshold           float64 `mapstructure:"bb_high_threshold"`
	StochOverbought           float64 `mapstructure:"stoch_overbought"`
	StochHigh                 float64 `mapstructure:"stoch_high"`
	StageImmediate            int     `mapstructure:"stage_immediate"`
	StagePrepare              int     `mapstructure:"stage_prepare"`
	StageReview               int     `mapstructure:"stage_review"`
}

// DatabaseConfig 管理数据库连接与信号留存策略。
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	InMemory        bool          `mapstructure:"in_memory"`
	Retention       int           `mapstructure:"retention"`
}

// LoggingConfig 控制日志输出。
type LoggingConfig struct {
	Level            string   `mapstructure:"level"`
	Encoding         string   `mapstructure:"encoding"`
	Development      bool     `mapstructure:"development"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// SchedulerConfig 控制扫描循环节奏。
type SchedulerConfig struct {
	ScanInterval    time.Duration `mapstructure:"scan_interval"`
	AssetsPerMinute int           `mapstructure:"assets_per_minute"`
}

// Validate 对配置进行基本校验。
func (c *Config) Validate() error {
	var err error

	if c.App.Environment == "" {
		err = multierr.Append(err, errors.New("app.environment 不能为空"))
	}
	if c.Exchange.Name == "" {
		err = multierr.Append(err, errors.New("exchange.name 不能为空"))
	}
	if c.Exchange.QuoteCurrency == "" {
		err = multierr.Append(err, errors.New("exchange.quote_currency 不能为空"))
	}
	if c.Exchange.Candle10m < 30 {
		err = multierr.Append(err, errors.New("exchange.candle_10m_count 不能小于30"))
	}
	if c.Exchange.Candle1h < 12 {
		err = multierr.Append(err, errors.New("exchange.candle_1h_count 不能小于12"))
	}
	if c.Exchange.Candle1d < 50 {
		err = multierr.Append(err, errors.New("exchange.candle_1d_count 不能小于50"))
	}
	if c.Exchange.OrderBookDepth <= 0 {
		err = multierr.Append(err, errors.New("exchange.order_book_depth 必须大于0"))
	}
	if c.Exchange.Retry.MaxAttempts <= 0 {
		err = multierr.Append(err, errors.New("exchange.retry.max_attempts 必须大于0"))
	}
	if c.Exchange.Retry.MinDelay <= 0 || c.Exchange.Retry.MaxDelay <= 0 {
		err = multierr.Append(err, errors.New("exchange.retry.delay 必须为正"))
	}
	if c.Exchange.Retry.MinDelay > c.Exchange.Retry.MaxDelay {
		err = multierr.Append(err, errors.New("exchange.retry.min_delay 不能大于 max_delay"))
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			err = multierr.Append(err, errors.New("telegram.bot_token 不能为空"))
		}
		if c.Telegram.ChatID == 0 {
			err = multierr.Append(err, errors.New("telegram.chat_id 不能为空"))
		}
	}
	err = multierr.Append(err, c.Thresholds.validate())
	if c.Database.Path == "" && !c.Database.InMemory {
		err = multierr.Append(err, errors.New("database.path 不能为空"))
	}
	if c.Database.MaxOpenConns <= 0 {
		err = multierr.Append(err, errors.New("database.max_open_conns 必须大于0"))
	}
	if c.Database.MaxIdleConns < 0 {
		err = multierr.Append(err, errors.New("database.max_idle_conns 不能为负"))
	}
	if c.Database.ConnMaxLifetime < 0 {
		err = multierr.Append(err, errors.New("database.conn_max_lifetime 不能为负"))
	}
	if c.Database.Retention <= 0 {
		err = multierr.Append(err, errors.New("database.retention 必须大于0"))
	}
	if c.Logging.Level == "" {
		err = multierr.Append(err, errors.New("logging.level 不能为空"))
	}
	if c.Logging.Encoding == "" {
		err = multierr.Append(err, errors.New("logging.encoding 不能为空"))
	}
	if len(c.Logging.OutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.output_paths 至少包含一个输出目标"))
	}
	if len(c.Logging.ErrorOutputPaths) == 0 {
		err = multierr.Append(err, errors.New("logging.error_output_paths 至少包含一个输出目标"))
	}
	if c.Scheduler.ScanInterval <= 0 {
		err = multierr.Append(err, errors.New("scheduler.scan_interval 必须大于0"))
	}
	if c.Scheduler.AssetsPerMinute <= 0 {
		err = multierr.Append(err, errors.New("scheduler.assets_per_minute 必须大于0"))
	}

	if err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}

	return nil
}

func (t Thresholds) validate() error {
	var err error

	if t.QuickDropLookback <= 0 {
		err = multierr.Append(err, errors.New("thresholds.quick_drop_lookback 必须大于0"))
	}
	if t.VolatilityCheckCandles <= 0 {
		err = multierr.Append(err, errors.New("thresholds.volatility_check_candles 必须大于0"))
	}
	if t.VolumeDeclineDays <= 0 {
		err = multierr.Append(err, errors.New("thresholds.volume_decline_days 必须大于0"))
	}
	if t.DivergenceLookbackDays <= 0 {
		err = multierr.Append(err, errors.New("thresholds.divergence_lookback_days 必须大于0"))
	}
	if t.OrderbookThreshold <= 0 {
		err = multierr.Append(err, errors.New("thresholds.orderbook_threshold 必须大于0"))
	}
	if t.RsiHigh > t.RsiOverbought {
		err = multierr.Append(err, errors.New("thresholds.rsi_high 不能大于 rsi_overbought"))
	}
	if t.StochHigh > t.StochOverbought {
		err = multierr.Append(err, errors.New("thresholds.stoch_high 不能大于 stoch_overbought"))
	}
	// 阈值阶梯必须满足 immediate ≥ prepare ≥ review，否则分级无从谈起。
	if t.StageReview <= 0 {
		err = multierr.Append(err, errors.New("thresholds.stage_review 必须大于0"))
	}
	if t.StagePrepare < t.StageReview {
		err = multierr.Append(err, errors.New("thresholds.stage_prepare 不能小于 stage_review"))
	}
	if t.StageImmediate < t.StagePrepare {
		err = multierr.Append(err, errors.New("thresholds.stage_immediate 不能小于 stage_prepare"))
	}

	return err
}
