package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"ChainPort/internal/chain"
	cperrors "ChainPort/internal/errors"
)

// RedisConfig 描述 Redis 状态存储的连接参数。
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	Key      string
}

// hashClient 是状态存储实际用到的 Redis 命令子集。
type hashClient interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	Close() error
}

// Redis 把链状态写入一个共享的 Redis hash，供多副本部署读取。
// StatusOf 只读取本地快照，绝不在注册表查询路径上发起网络调用；
// 快照由 Set 顺带更新，或由 Refresh 周期性拉取。只读副本必须
// 运行 Refresh 循环，否则快照永远停留在启动时的空表。
type Redis struct {
	client hashClient
	key    string

	mu       sync.RWMutex
	snapshot map[uint64]chain.Status
}

// NewRedis 创建 Redis 状态存储实例。
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	if cfg.Address == "" {
		return nil, errors.New("Redis address 不能为空")
	}
	key := cfg.Key
	if key == "" {
		key = "chainport:status"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("连接 Redis 失败: %w", err)
	}
	return &Redis{
		client:   client,
		key:      key,
		snapshot: make(map[uint64]chain.Status),
	}, nil
}

// StatusOf 实现 Source 接口，仅读取本地快照。
func (r *Redis) StatusOf(chainID uint64) (chain.Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.snapshot[chainID]
	return st, ok
}

// Set 同时更新 Redis 与本地快照。
func (r *Redis) Set(ctx context.Context, chainID uint64, status chain.Status) error {
	field := strconv.FormatUint(chainID, 10)
	if err := r.client.HSet(ctx, r.key, field, string(status)).Err(); err != nil {
		return cperrors.Wrap(cperrors.CodeStorageFailure, err, "写入链状态失败")
	}
	r.mu.Lock()
	r.snapshot[chainID] = status
	r.mu.Unlock()
	return nil
}

// Refresh 从 Redis 全量拉取状态到本地快照。读失败时保留旧快照，
// 注册表查询会退化到描述符的基线状态而不是崩溃。
func (r *Redis) Refresh(ctx context.Context) error {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return cperrors.Wrap(cperrors.CodeStorageFailure, err, "读取链状态失败")
	}
	next := make(map[uint64]chain.Status, len(values))
	for field, value := range values {
		id, parseErr := strconv.ParseUint(field, 10, 64)
		if parseErr != nil {
			continue
		}
		next[id] = chain.Status(value)
	}
	r.mu.Lock()
	r.snapshot = next
	r.mu.Unlock()
	return nil
}

// Run 周期性执行 Refresh，直到上下文取消。只读副本（不跑探测器的
// 进程）依赖这个循环看到探测器写入的最新状态。刷新失败只记录日志
// 并保留旧快照，不中断循环。
func (r *Redis) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) error {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	// 启动时先拉一次，避免等待一个完整周期才有状态。
	if err := r.Refresh(ctx); err != nil {
		logger.Warn("refresh chain status snapshot", "err", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				logger.Warn("refresh chain status snapshot", "err", err)
			}
		}
	}
}

// Close 关闭 Redis 连接。
func (r *Redis) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
