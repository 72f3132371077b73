package chain

import "fmt"

// Category classifies a network into exactly one operational bucket.
type Category string

const (
	CategoryMainnet   Category = "mainnet"
	CategoryLayer2    Category = "layer2"
	CategorySidechain Category = "sidechain"
	CategoryTestnet   Category = "testnet"
)

// Categories lists every category in a stable order, used when partitioning
// the registry.
var Categories = []Category{CategoryMainnet, CategoryLayer2, CategorySidechain, CategoryTestnet}

// Status is the advisory health state of a network. It is externally
// supplied (by an operator or a prober) and never derived by the registry.
type Status string

const (
	StatusHealthy     Status = "healthy"
	StatusCongested   Status = "congested"
	StatusDegraded    Status = "degraded"
	StatusMaintenance Status = "maintenance"

	// StatusUnknown is the sentinel returned for chain ids the registry has
	// never heard of. It is not a valid descriptor status.
	StatusUnknown Status = "unknown"
)

// NativeCurrency describes the gas token of a network.
type NativeCurrency struct {
	Name     string `json:"name" yaml:"name"`
	Symbol   string `json:"symbol" yaml:"symbol"`
	Decimals int    `json:"decimals" yaml:"decimals"`
}

// Endpoint is a single RPC or explorer endpoint. APIKeyTemplate, when set,
// contains a %s placeholder that receives a provider credential; endpoints
// in the registry dataset are public and leave it empty.
type Endpoint struct {
	Scheme         string `json:"scheme" yaml:"scheme"`
	URL            string `json:"url" yaml:"url"`
	APIKeyTemplate string `json:"apiKeyTemplate,omitempty" yaml:"api_key_template,omitempty"`
}

// Descriptor is the immutable metadata record for one supported network.
type Descriptor struct {
	ID             uint64         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	ShortName      string         `json:"shortName" yaml:"short_name"`
	NativeCurrency NativeCurrency `json:"nativeCurrency" yaml:"native_currency"`
	RPCEndpoints   []Endpoint     `json:"rpcEndpoints" yaml:"rpc_endpoints"`
	Explorers      []Endpoint     `json:"explorerEndpoints,omitempty" yaml:"explorer_endpoints,omitempty"`
	Category       Category       `json:"category" yaml:"category"`
	IsTestnet      bool           `json:"isTestnet" yaml:"is_testnet"`
	Status         Status         `json:"status" yaml:"status"`

	// Informational only. Resolution logic never reads these.
	TVLUSD   float64  `json:"tvlUsd,omitempty" yaml:"tvl_usd,omitempty"`
	DailyTxs uint64   `json:"dailyTxs,omitempty" yaml:"daily_txs,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Validate checks the structural invariants a descriptor must satisfy
// before it may enter a registry.
func (d Descriptor) Validate() error {
	if d.ID == 0 {
		return fmt.Errorf("链 ID 必须为正整数")
	}
	if d.Name == "" || d.ShortName == "" {
		return fmt.Errorf("链 %d 缺少名称", d.ID)
	}
	if d.NativeCurrency.Decimals < 0 {
		return fmt.Errorf("链 %d 的原生代币精度不能为负", d.ID)
	}
	if len(d.RPCEndpoints) == 0 {
		return fmt.Errorf("链 %d 未配置任何公共 RPC 端点", d.ID)
	}
	for _, ep := range d.RPCEndpoints {
		if ep.URL == "" {
			return fmt.Errorf("链 %d 存在空的 RPC 端点", d.ID)
		}
	}
	switch d.Category {
	case CategoryMainnet, CategoryLayer2, CategorySidechain, CategoryTestnet:
	default:
		return fmt.Errorf("链 %d 使用了未知分类 %q", d.ID, d.Category)
	}
	if d.IsTestnet != (d.Category == CategoryTestnet) {
		return fmt.Errorf("链 %d 的 isTestnet 与分类 %q 不一致", d.ID, d.Category)
	}
	switch d.Status {
	case StatusHealthy, StatusCongested, StatusDegraded, StatusMaintenance:
	default:
		return fmt.Errorf("链 %d 使用了未知状态 %q", d.ID, d.Status)
	}
	return nil
}

// PublicRPC returns the first public RPC endpoint, the guaranteed terminal
// fallback for transport resolution.
func (d Descriptor) PublicRPC() Endpoint {
	if len(d.RPCEndpoints) == 0 {
		return Endpoint{}
	}
	return d.RPCEndpoints[0]
}
