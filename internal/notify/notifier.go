package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ChainPort/internal/chain"
)

// Event 描述一次链状态跃迁。
type Event struct {
	ID      string       `json:"id"`
	ChainID uint64       `json:"chainId"`
	From    chain.Status `json:"from"`
	To      chain.Status `json:"to"`
	At      time.Time    `json:"at"`
}

// NewEvent 生成带唯一标识的状态跃迁事件。
func NewEvent(chainID uint64, from, to chain.Status) Event {
	return Event{
		ID:      uuid.NewString(),
		ChainID: chainID,
		From:    from,
		To:      to,
		At:      time.Now().UTC(),
	}
}

// Notifier 把状态跃迁广播给外部订阅方。
type Notifier interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Log 只把事件写入应用日志，是默认驱动。
type Log struct {
	logger *slog.Logger
}

// NewLog 创建日志通知器。
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Publish 实现 Notifier 接口。
func (l *Log) Publish(_ context.Context, event Event) error {
	if l == nil || l.logger == nil {
		return nil
	}
	l.logger.Info("chain status transition",
		"event_id", event.ID,
		"chain_id", event.ChainID,
		"from", string(event.From),
		"to", string(event.To),
	)
	return nil
}

// Close 实现 Notifier 接口。
func (l *Log) Close() error {
	return nil
}
