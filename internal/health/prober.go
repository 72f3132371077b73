package health

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/uuid"

	"ChainPort/internal/chain"
	cperrors "ChainPort/internal/errors"
	"ChainPort/internal/notify"
	"ChainPort/internal/observability/alerting"
	"ChainPort/internal/observability/metrics"
	"ChainPort/internal/status"
	"ChainPort/internal/storage/mysql"
	"ChainPort/internal/transport"
)

// Config 描述探测器的依赖与节奏。
type Config struct {
	Registry    *chain.Registry
	Credentials transport.Credentials
	Store       status.Store
	Notifier    notify.Notifier
	History     mysql.HistoryRepository
	Alerts      alerting.Dispatcher
	Interval    time.Duration
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Prober 周期性探测每条链的传输序列，推导链的实时状态，
// 并把结果写入状态存储、历史仓库与指标。它是注册表声明的
// “外部提供状态”的提供者；核心解析逻辑本身保持纯净。
type Prober struct {
	cfg Config
}

// NewProber 创建探测器实例。
func NewProber(cfg Config) (*Prober, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("探测器缺少链注册表")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("探测器缺少状态存储")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Prober{cfg: cfg}, nil
}

// Run 阻塞运行探测循环，直到上下文取消。
func (p *Prober) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	// 启动时先跑一轮，避免等待一个完整周期才有状态。
	p.ProbeAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.ProbeAll(ctx)
		}
	}
}

// ProbeAll 对注册表中的每条链执行一轮探测。运行期错误只记录日志，
// 绝不让单条链的故障中断整轮探测。
func (p *Prober) ProbeAll(ctx context.Context) {
	runID := uuid.NewString()
	for _, descriptor := range p.cfg.Registry.All() {
		if ctx.Err() != nil {
			return
		}
		p.probeChain(ctx, runID, descriptor)
	}
}

// probeChain 解析链的传输序列并逐个端点验证可达性。
func (p *Prober) probeChain(ctx context.Context, runID string, descriptor chain.Descriptor) {
	resolved, err := transport.Resolve(p.cfg.Registry, descriptor.ID, p.cfg.Credentials)
	if err != nil {
		p.cfg.Logger.Error("resolve transports for probe",
			"chain_id", descriptor.ID, "err", err)
		return
	}
	p.probeSequence(ctx, runID, descriptor, resolved)
}

// probeSequence 按回退顺序探测已解析的端点序列并上报结果。
func (p *Prober) probeSequence(ctx context.Context, runID string, descriptor chain.Descriptor, resolved transport.Chain) {
	began := time.Now()
	result := mysql.ProbeRecord{
		RunID:      runID,
		ChainID:    descriptor.ID,
		Status:     chain.StatusMaintenance,
		ObservedAt: began.UTC(),
	}

	// 任一端点报告了错误的链 ID 都记为失配，与失败顺序无关。
	mismatch := false
	for idx, entry := range resolved.Entries {
		blockNumber, probeErr := p.probeEntry(ctx, descriptor.ID, entry)
		if probeErr != nil {
			result.Detail = probeErr.Error()
			if isChainIDMismatch(probeErr.Error()) {
				mismatch = true
			}
			continue
		}
		result.Provider = entry.Provider
		result.BlockNumber = blockNumber
		switch {
		case idx == 0:
			result.Status = chain.StatusHealthy
			result.Detail = ""
		default:
			// 首选端点失败但后备端点可用。
			result.Status = chain.StatusCongested
		}
		break
	}
	if result.Provider == "" && mismatch {
		result.Status = chain.StatusDegraded
	}
	result.LatencyMS = time.Since(began).Milliseconds()

	p.report(ctx, descriptor, result)
}

// probeEntry 拨号单个端点并核对链 ID 与最新区块高度。
func (p *Prober) probeEntry(ctx context.Context, chainID uint64, entry transport.Entry) (uint64, error) {
	probeCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	client, err := ethclient.DialContext(probeCtx, entry.URL)
	if err != nil {
		return 0, fmt.Errorf("%s: dial: %w", entry.Provider, err)
	}
	defer client.Close()

	reported, err := client.ChainID(probeCtx)
	if err != nil {
		return 0, fmt.Errorf("%s: chain id: %w", entry.Provider, err)
	}
	if !reported.IsUint64() || reported.Uint64() != chainID {
		return 0, fmt.Errorf("%s: %s %s, expected %d", entry.Provider, mismatchMarker, reported, chainID)
	}

	blockNumber, err := client.BlockNumber(probeCtx)
	if err != nil {
		return 0, fmt.Errorf("%s: block number: %w", entry.Provider, err)
	}
	return blockNumber, nil
}

// mismatchMarker 标记链 ID 不一致的探测失败，用于状态推导。
const mismatchMarker = "reported wrong chain id"

func isChainIDMismatch(detail string) bool {
	return strings.Contains(detail, mismatchMarker)
}

// report 把单次探测结果同步到状态存储、历史仓库、指标与通知器。
func (p *Prober) report(ctx context.Context, descriptor chain.Descriptor, result mysql.ProbeRecord) {
	previous, known := p.cfg.Store.StatusOf(descriptor.ID)

	if err := p.cfg.Store.Set(ctx, descriptor.ID, result.Status); err != nil {
		p.cfg.Logger.Error("persist chain status", "chain_id", descriptor.ID, "err", err)
	}
	metrics.ObserveProbe(descriptor.ID, result.Provider, string(result.Status),
		time.Duration(result.LatencyMS)*time.Millisecond)
	metrics.SetChainStatus(descriptor.ID, string(result.Status))

	if p.cfg.History != nil {
		if err := p.cfg.History.Record(ctx, result); err != nil {
			p.cfg.Logger.Error("record probe history", "chain_id", descriptor.ID, "err", err)
		}
	}

	if p.cfg.Notifier != nil && known && previous != result.Status {
		event := notify.NewEvent(descriptor.ID, previous, result.Status)
		if err := p.cfg.Notifier.Publish(ctx, event); err != nil {
			p.cfg.Logger.Error("publish status transition", "chain_id", descriptor.ID, "err", err)
		}
	}

	// 某条链全部端点不可用时升级为告警。
	if p.cfg.Alerts != nil && result.Status == chain.StatusMaintenance && (!known || previous != result.Status) {
		probeErr := cperrors.New(cperrors.CodeProbeFailure, result.Detail,
			cperrors.WithAlert(true),
			cperrors.WithMetadata("chain_id", fmt.Sprintf("%d", descriptor.ID)),
			cperrors.WithMetadata("run_id", result.RunID))
		if event, ok := alerting.FromError(probeErr, descriptor.ID, descriptor.Name, result.Status); ok {
			if err := p.cfg.Alerts.Notify(ctx, event); err != nil {
				p.cfg.Logger.Error("dispatch alert", "chain_id", descriptor.ID, "err", err)
			}
		}
	}
}
