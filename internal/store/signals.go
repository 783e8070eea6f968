package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sell-radar/internal/signal"
)

const createSignalsTable = `
CREATE TABLE IF NOT EXISTS sell_signals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TIMESTAMP NOT NULL,
	asset TEXT NOT NULL,
	stage TEXT NOT NULL,
	score INTEGER NOT NULL,
	price REAL,
	quick_drop REAL,
	minutes_since_high INTEGER,
	drop_from_high_12h REAL,
	surge_6h REAL,
	volume_declining INTEGER,
	divergence INTEGER,
	ask_bid_ratio REAL,
	rsi REAL,
	macd_signal TEXT,
	bb_signal TEXT,
	ma_signal TEXT,
	stoch REAL,
	triggered TEXT
);`

func (s *Store) migrate() error {
	if _, err := s.db.Exec(createSignalsTable); err != nil {
		return fmt.Errorf("初始化信号表失败: %w", err)
	}
	return nil
}

// SignalRecord 为落库的扁平化信号记录。
type SignalRecord struct {
	CreatedAt        time.Time
	Asset            string
	Stage            string
	Score            int
	Price            float64
	QuickDrop        float64
	MinutesSinceHigh int
	DropFromHigh12h  float64
	Surge6h          float64
	VolumeDeclining  bool
	Divergence       bool
	AskBidRatio      float64
	RSI              float64
	MACDSignal       string
	BBSignal         string
	MASignal         string
	Stoch            float64
	Triggered        string
}

// NewSignalRecord 将评估结果摊平为一条待落库记录。
func NewSignalRecord(a signal.Assessment) SignalRecord {
	rec := SignalRecord{
		CreatedAt: a.GeneratedAt.UTC(),
		Asset:     a.Asset,
		Stage:     a.Stage.String(),
		Score:     a.Score,
		Triggered: strings.Join(a.Signals, "; "),
	}

	if p := a.Pattern; p != nil {
		rec.Price = p.CurrentPrice
		rec.QuickDrop = p.QuickDrop
		rec.MinutesSinceHigh = p.MinutesSinceHigh
		rec.DropFromHigh12h = p.DropFromHigh12h
		rec.Surge6h = p.Surge6h
	}
	if v := a.Volume; v != nil {
		rec.VolumeDeclining = v.VolumeDeclining
		rec.Divergence = v.Divergence
	}
	if o := a.Orderbook; o != nil {
		rec.AskBidRatio = o.AskBidRatio
	}
	if ind := a.Indicators; ind != nil {
		rec.RSI = ind.RSI
		rec.MACDSignal = ind.MACDSignal
		rec.BBSignal = ind.BBSignal
		rec.MASignal = ind.MASignal
		rec.Stoch = ind.Stoch
	}

	return rec
}

// AppendSignal 追加一条信号记录，并按留存上限淘汰最旧的行。
func (s *Store) AppendSignal(ctx context.Context, rec SignalRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO sell_signals (
	created_at, asset, stage, score, price,
	quick_drop, minutes_since_high, drop_from_high_12h, surge_6h,
	volume_declining, divergence, ask_bid_ratio,
	rsi, macd_signal, bb_signal, ma_signal, stoch, triggered
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt, rec.Asset, rec.Stage, rec.Score, rec.Price,
		rec.QuickDrop, rec.MinutesSinceHigh, rec.DropFromHigh12h, rec.Surge6h,
		rec.VolumeDeclining, rec.Divergence, rec.AskBidRatio,
		rec.RSI, rec.MACDSignal, rec.BBSignal, rec.MASignal, rec.Stoch, rec.Triggered,
	)
	if err != nil {
		return fmt.Errorf("写入信号记录失败: %w", err)
	}

	// 只保留最近 retention 条记录。
	_, err = tx.ExecContext(ctx, `
DELETE FROM sell_signals
WHERE id NOT IN (SELECT id FROM sell_signals ORDER BY id DESC LIMIT ?)`, s.retention)
	if err != nil {
		return fmt.Errorf("清理历史信号失败: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}

	return nil
}

// CountSignals 返回当前留存的信号记录数。
func (s *Store) CountSignals(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sell_signals").Scan(&count); err != nil {
		return 0, fmt.Errorf("统计信号记录失败: %w", err)
	}
	return count, nil
}

// RecentSignals 返回最近 limit 条信号记录，按时间倒序。
func (s *Store) RecentSignals(ctx context.Context, limit int) ([]SignalRecord, error) {
	if limit <= 0 {
		limit = s.retention
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT created_at, asset, stage, score, price,
	quick_drop, minutes_since_high, drop_from_high_12h, surge_6h,
	volume_declining, divergence, ask_bid_ratio,
	rsi, macd_signal, bb_signal, ma_signal, stoch, triggered
FROM sell_signals ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("查询信号记录失败: %w", err)
	}
	defer rows.Close()

	records := make([]SignalRecord, 0, limit)
	for rows.Next() {
		var rec SignalRecord
		if err := rows.Scan(
			&rec.CreatedAt, &rec.Asset, &rec.Stage, &rec.Score, &rec.Price,
			&rec.QuickDrop, &rec.MinutesSinceHigh, &rec.DropFromHigh12h, &rec.Surge6h,
			&rec.VolumeDeclining, &rec.Divergence, &rec.AskBidRatio,
			&rec.RSI, &rec.MACDSignal, &rec.BBSignal, &rec.MASignal, &rec.Stoch, &rec.Triggered,
		); err != nil {
			return nil, fmt.Errorf("扫描信号记录失败: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历信号记录失败: %w", err)
	}

	return records, nil
}
