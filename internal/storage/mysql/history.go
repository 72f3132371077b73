package mysql

import (
	"context"
	"sync"
	"time"

	"ChainPort/internal/chain"
)

// ProbeRecord 表示一次链端点探测的落库结构。
type ProbeRecord struct {
	RunID       string       `json:"run_id"`
	ChainID     uint64       `json:"chain_id"`
	Status      chain.Status `json:"status"`
	Provider    string       `json:"provider,omitempty"`
	LatencyMS   int64        `json:"latency_ms"`
	BlockNumber uint64       `json:"block_number,omitempty"`
	Detail      string       `json:"detail,omitempty"`
	ObservedAt  time.Time    `json:"observed_at"`
}

// HistoryRepository 抽象探测历史的持久化接口。
type HistoryRepository interface {
	Record(ctx context.Context, record ProbeRecord) error
	Recent(ctx context.Context, chainID uint64, limit int) ([]ProbeRecord, error)
}

// memoryCap 限制内存仓库的总记录数，避免长时间运行后无界增长。
const memoryCap = 4096

// MemoryHistory 在进程内保存探测历史，用于测试和单节点部署。
type MemoryHistory struct {
	mu      sync.RWMutex
	records []ProbeRecord
}

// NewMemoryHistory 创建内存探测历史仓库。
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

// Record 追加一条探测记录，最新的排在最前。
func (m *MemoryHistory) Record(_ context.Context, record ProbeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append([]ProbeRecord{record}, m.records...)
	if len(m.records) > memoryCap {
		m.records = m.records[:memoryCap]
	}
	return nil
}

// Recent 返回某条链最近的若干条探测记录。
func (m *MemoryHistory) Recent(_ context.Context, chainID uint64, limit int) ([]ProbeRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []ProbeRecord
	for _, record := range m.records {
		if record.ChainID != chainID {
			continue
		}
		out = append(out, record)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
