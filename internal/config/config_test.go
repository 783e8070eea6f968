package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  enabled: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}

	if cfg.Exchange.QuoteCurrency != "KRW" {
		t.Errorf("QuoteCurrency = %s, want KRW", cfg.Exchange.QuoteCurrency)
	}
	if cfg.Exchange.Candle1d != 100 {
		t.Errorf("Candle1d = %d, want 100", cfg.Exchange.Candle1d)
	}
	if cfg.Thresholds.QuickDropLookback != 12 {
		t.Errorf("QuickDropLookback = %d, want 12", cfg.Thresholds.QuickDropLookback)
	}
	if cfg.Thresholds.StageImmediate != 7 || cfg.Thresholds.StagePrepare != 5 || cfg.Thresholds.StageReview != 3 {
		t.Errorf("阶梯默认值异常: %d/%d/%d", cfg.Thresholds.StageImmediate, cfg.Thresholds.StagePrepare, cfg.Thresholds.StageReview)
	}
	if cfg.Database.Retention != 100 {
		t.Errorf("Retention = %d, want 100", cfg.Database.Retention)
	}
	if cfg.Scheduler.ScanInterval != 30*time.Minute {
		t.Errorf("ScanInterval = %v, want 30m", cfg.Scheduler.ScanInterval)
	}
	if cfg.Telegram.Enabled {
		t.Error("telegram.enabled 应被文件覆盖为 false")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  enabled: false
thresholds:
  quick_drop_threshold: 4.5
  stage_review: 4
  stage_prepare: 6
  stage_immediate: 8
scheduler:
  scan_interval: 10m
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Thresholds.QuickDropThreshold != 4.5 {
		t.Errorf("QuickDropThreshold = %f, want 4.5", cfg.Thresholds.QuickDropThreshold)
	}
	if cfg.Thresholds.StageReview != 4 {
		t.Errorf("StageReview = %d, want 4", cfg.Thresholds.StageReview)
	}
	if cfg.Scheduler.ScanInterval != 10*time.Minute {
		t.Errorf("ScanInterval = %v, want 10m", cfg.Scheduler.ScanInterval)
	}
}

func TestLoad_TelegramEnabledRequiresCredentials(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  enabled: true
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("缺少 bot_token 时 Load 应失败")
	}
	if !strings.Contains(err.Error(), "telegram.bot_token") {
		t.Errorf("错误信息未提及 bot_token: %v", err)
	}
}

func TestLoad_InvalidStageLadder(t *testing.T) {
	path := writeConfigFile(t, `
telegram:
  enabled: false
thresholds:
  stage_review: 6
  stage_prepare: 4
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("阶梯倒挂时 Load 应失败")
	}
	if !strings.Contains(err.Error(), "stage_prepare") {
		t.Errorf("错误信息未提及 stage_prepare: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("配置文件不存在时 Load 应失败")
	}
}
