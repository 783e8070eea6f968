package notify

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"sell-radar/internal/config"
)

// Client 通过 Telegram Bot API 推送告警消息，失败时线性退避重试。
type Client struct {
	bot        *tgbotapi.BotAPI
	chatID     int64
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewClient 创建 Telegram 推送客户端。
func NewClient(cfg config.TelegramConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("创建 Telegram Bot 失败: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}

	return &Client{
		bot:        bot,
		chatID:     cfg.ChatID,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger,
	}, nil
}

// Send 发送纯文本消息。
func (c *Client) Send(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if _, err := c.bot.Send(msg); err == nil {
			return nil
		} else {
			lastErr = err
			c.logger.Warn("Telegram 发送失败，准备重试",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
		}
		time.Sleep(c.retryDelay * time.Duration(i+1))
	}

	return fmt.Errorf("Telegram 发送重试 %d 次后仍失败: %w", c.maxRetries, lastErr)
}
