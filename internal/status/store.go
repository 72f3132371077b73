package status

import (
	"context"
	"sync"

	"ChainPort/internal/chain"
)

// Source 提供链的实时健康状态读取能力，与 chain.StatusSource 保持一致。
type Source interface {
	StatusOf(chainID uint64) (chain.Status, bool)
}

// Store 在 Source 之上增加写入能力，由探测器负责更新。
type Store interface {
	Source
	Set(ctx context.Context, chainID uint64, status chain.Status) error
}

// Static 是固定不变的状态表，主要用于测试和单次构建场景。
type Static map[uint64]chain.Status

// StatusOf 实现 Source 接口。
func (s Static) StatusOf(chainID uint64) (chain.Status, bool) {
	st, ok := s[chainID]
	return st, ok
}

// Memory 是进程内的状态存储，适用于单节点部署。
type Memory struct {
	mu     sync.RWMutex
	states map[uint64]chain.Status
}

// NewMemory 创建内存状态存储。
func NewMemory() *Memory {
	return &Memory{states: make(map[uint64]chain.Status)}
}

// StatusOf 实现 Source 接口。
func (m *Memory) StatusOf(chainID uint64) (chain.Status, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.states[chainID]
	return st, ok
}

// Set 记录链的最新状态。
func (m *Memory) Set(_ context.Context, chainID uint64, status chain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[chainID] = status
	return nil
}
