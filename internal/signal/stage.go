package signal

import "sell-radar/internal/config"

// Stage 表示卖出告警等级。
type Stage int

const (
	// StageNone 表示无告警，评估结果被丢弃。
	StageNone Stage = iota
	// StageReview 表示需要关注。
	StageReview
	// StagePrepare 表示建议准备减仓。
	StagePrepare
	// StageImmediate 表示建议立即卖出。
	StageImmediate
)

// ClassifyStage 将得分映射到告警等级，从高到低逐级判断。
func ClassifyStage(score int, th config.Thresholds) Stage {
	switch {
	case score >= th.StageImmediate:
		return StageImmediate
	case score >= th.StagePrepare:
		return StagePrepare
	case score >= th.StageReview:
		return StageReview
	default:
		return StageNone
	}
}

// String 返回等级的英文标识，用于日志与持久化。
func (s Stage) String() string {
	switch s {
	case StageImmediate:
		return "immediate"
	case StagePrepare:
		return "prepare"
	case StageReview:
		return "review"
	default:
		return "none"
	}
}

// Label 返回等级的展示名称。
func (s Stage) Label() string {
	switch s {
	case StageImmediate:
		return "立即卖出"
	case StagePrepare:
		return "卖出准备"
	case StageReview:
		return "卖出观察"
	default:
		return "无告警"
	}
}

// Emoji 返回等级对应的提示符号。
func (s Stage) Emoji() string {
	switch s {
	case StageImmediate:
		return "🔴"
	case StagePrepare:
		return "🟠"
	case StageReview:
		return "🟡"
	default:
		return ""
	}
}

// Stars 返回等级对应的星级标记。
func (s Stage) Stars() string {
	switch s {
	case StageImmediate:
		return "⭐⭐⭐⭐⭐"
	case StagePrepare:
		return "⭐⭐⭐"
	case StageReview:
		return "⭐⭐"
	default:
		return ""
	}
}

// Action 返回等级对应的建议操作。
func (s Stage) Action() string {
	switch s {
	case StageImmediate:
		return "建议立即卖出"
	case StagePrepare:
		return "考虑部分卖出"
	case StageReview:
		return "需要重点观察"
	default:
		return ""
	}
}
