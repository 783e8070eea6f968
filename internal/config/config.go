package config

import (
	"errors"
	"fmt"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "configs/config.yaml"
	envPrefix         = "radar"
)

// Load 读取配置文件并结合环境变量返回 Config。
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		path = defaultConfigPath
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	replacer := strings.NewReplacer(".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("未找到配置文件 %q: %w", path, err)
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "development")

	v.SetDefault("exchange.name", "upbit")
	v.SetDefault("exchange.quote_currency", "KRW")
	v.SetDefault("exchange.candle_10m_count", 72)
	v.SetDefault("exchange.candle_1h_count", 24)
	v.SetDefault("exchange.candle_1d_count", 100)
	v.SetDefault("exchange.order_book_depth", 15)
	v.SetDefault("exchange.retry.max_attempts", 5)
	v.SetDefault("exchange.retry.min_delay", "500ms")
	v.SetDefault("exchange.retry.max_delay", "5s")

	v.SetDefault("telegram.enabled", true)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay", "1s")

	v.SetDefault("thresholds.quick_drop_lookback", 12)
	v.SetDefault("thresholds.quick_drop_threshold", 3.0)
	v.SetDefault("thresholds.min_quick_drop", 2.0)
	v.SetDefault("thresholds.drop_from_high_12h_threshold", 5.0)
	v.SetDefault("thresholds.min_drop_12h", 3.0)
	v.SetDefault("thresholds.surge_6h_threshold", 10.0)
	v.SetDefault("thresholds.change_1h_threshold", -1.0)
	v.SetDefault("thresholds.volatility_check_candles", 6)
	v.SetDefault("thresholds.volatility_threshold", 2.0)
	v.SetDefault("thresholds.volume_decline_days", 3)
	v.SetDefault("thresholds.divergence_lookback_days", 5)
	v.SetDefault("thresholds.divergence_price_threshold", 5.0)
	v.SetDefault("thresholds.divergence_volume_threshold", -20.0)
	v.SetDefault("thresholds.orderbook_threshold", 1.5)
	v.SetDefault("thresholds.rsi_overbought", 70.0)
	v.SetDefault("thresholds.rsi_high", 60.0)
	v.SetDefault("thresholds.bb_high_threshold", 80.0)
	v.SetDefault("thresholds.stoch_overbought", 80.0)
	v.SetDefault("thresholds.stoch_high", 70.0)
	v.SetDefault("thresholds.stage_immediate", 7)
	v.SetDefault("thresholds.stage_prepare", 5)
	v.SetDefault("thresholds.stage_review", 3)

	v.SetDefault("database.path", "data/sell_radar.db")
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.max_idle_conns", 4)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.in_memory", false)
	v.SetDefault("database.retention", 100)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.encoding", "console")
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.output_paths", []string{"stdout"})
	v.SetDefault("logging.error_output_paths", []string{"stderr"})

	v.SetDefault("scheduler.scan_interval", "30m")
	v.SetDefault("scheduler.assets_per_minute", 60)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
