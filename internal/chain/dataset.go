package chain

// builtinDescriptors is the locally-owned network table. Values are
// maintained by hand so registry invariants stay verifiable without any
// third-party chain-definition dependency.
//
// Ordering is by chain id; the registry re-sorts anyway, but keeping the
// table sorted makes review diffs readable.
var builtinDescriptors = []Descriptor{
	{
		ID:             1,
		Name:           "Ethereum",
		ShortName:      "eth",
		NativeCurrency: NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://eth.llamarpc.com"},
			{Scheme: "https", URL: "https://ethereum-rpc.publicnode.com"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://etherscan.io"},
		},
		Category: CategoryMainnet,
		Status:   StatusHealthy,
		TVLUSD:   58_000_000_000,
		DailyTxs: 1_150_000,
		Tags:     []string{"evm", "pos"},
	},
	{
		ID:             10,
		Name:           "OP Mainnet",
		ShortName:      "oeth",
		NativeCurrency: NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://mainnet.optimism.io"},
			{Scheme: "https", URL: "https://optimism-rpc.publicnode.com"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://optimistic.etherscan.io"},
		},
		Category: CategoryLayer2,
		Status:   StatusHealthy,
		Tags:     []string{"evm", "optimistic-rollup"},
	},
	{
		ID:             56,
		Name:           "BNB Smart Chain",
		ShortName:      "bnb",
		NativeCurrency: NativeCurrency{Name: "BNB", Symbol: "BNB", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://bsc-dataseed.binance.org"},
			{Scheme: "https", URL: "https://bsc-rpc.publicnode.com"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://bscscan.com"},
		},
		Category: CategorySidechain,
		Status:   StatusHealthy,
		DailyTxs: 4_200_000,
		Tags:     []string{"evm", "poa"},
	},
	{
		ID:             100,
		Name:           "Gnosis",
		ShortName:      "gno",
		NativeCurrency: NativeCurrency{Name: "xDAI", Symbol: "XDAI", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://rpc.gnosischain.com"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://gnosisscan.io"},
		},
		Category: CategorySidechain,
		Status:   StatusHealthy,
		Tags:     []string{"evm"},
	},
	{
		ID:             137,
		Name:           "Polygon",
		ShortName:      "pol",
		NativeCurrency: NativeCurrency{Name: "POL", Symbol: "POL", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://polygon-rpc.com"},
			{Scheme: "https", URL: "https://polygon-bor-rpc.publicnode.com"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://polygonscan.com"},
		},
		Category: CategorySidechain,
		Status:   StatusHealthy,
		DailyTxs: 3_000_000,
		Tags:     []string{"evm", "pos"},
	},
	{
		ID:             8453,
		Name:           "Base",
		ShortName:      "base",
		NativeCurrency: NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://mainnet.base.org"},
			{Scheme: "https", URL: "https://base-rpc.publicnode.com"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://basescan.org"},
		},
		Category: CategoryLayer2,
		Status:   StatusHealthy,
		DailyTxs: 5_800_000,
		Tags:     []string{"evm", "optimistic-rollup", "op-stack"},
	},
	{
		ID:             42161,
		Name:           "Arbitrum One",
		ShortName:      "arb1",
		NativeCurrency: NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://arb1.arbitrum.io/rpc"},
			{Scheme: "https", URL: "https://arbitrum-one-rpc.publicnode.com"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://arbiscan.io"},
		},
		Category: CategoryLayer2,
		Status:   StatusHealthy,
		TVLUSD:   14_000_000_000,
		Tags:     []string{"evm", "optimistic-rollup"},
	},
	{
		ID:             43114,
		Name:           "Avalanche C-Chain",
		ShortName:      "avax",
		NativeCurrency: NativeCurrency{Name: "Avalanche", Symbol: "AVAX", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://api.avax.network/ext/bc/C/rpc"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://snowtrace.io"},
		},
		Category: CategoryMainnet,
		Status:   StatusHealthy,
		Tags:     []string{"evm", "snowman"},
	},
	{
		ID:             59144,
		Name:           "Linea",
		ShortName:      "linea",
		NativeCurrency: NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://rpc.linea.build"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://lineascan.build"},
		},
		Category: CategoryLayer2,
		Status:   StatusHealthy,
		Tags:     []string{"evm", "zk-rollup"},
	},
	{
		ID:             534352,
		Name:           "Scroll",
		ShortName:      "scr",
		NativeCurrency: NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://rpc.scroll.io"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://scrollscan.com"},
		},
		Category: CategoryLayer2,
		Status:   StatusHealthy,
		Tags:     []string{"evm", "zk-rollup"},
	},
	{
		ID:             11155111,
		Name:           "Sepolia",
		ShortName:      "sep",
		NativeCurrency: NativeCurrency{Name: "Sepolia Ether", Symbol: "SEP", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://rpc.sepolia.org"},
			{Scheme: "https", URL: "https://ethereum-sepolia-rpc.publicnode.com"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://sepolia.etherscan.io"},
		},
		Category:  CategoryTestnet,
		IsTestnet: true,
		Status:    StatusHealthy,
		Tags:      []string{"evm"},
	},
	{
		ID:             17000,
		Name:           "Holesky",
		ShortName:      "holesky",
		NativeCurrency: NativeCurrency{Name: "Holesky Ether", Symbol: "ETH", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://ethereum-holesky-rpc.publicnode.com"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://holesky.etherscan.io"},
		},
		Category:  CategoryTestnet,
		IsTestnet: true,
		Status:    StatusHealthy,
		Tags:      []string{"evm", "staking"},
	},
	{
		ID:             80002,
		Name:           "Polygon Amoy",
		ShortName:      "amoy",
		NativeCurrency: NativeCurrency{Name: "POL", Symbol: "POL", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://rpc-amoy.polygon.technology"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://amoy.polygonscan.com"},
		},
		Category:  CategoryTestnet,
		IsTestnet: true,
		Status:    StatusHealthy,
		Tags:      []string{"evm"},
	},
	{
		ID:             84532,
		Name:           "Base Sepolia",
		ShortName:      "basesep",
		NativeCurrency: NativeCurrency{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://sepolia.base.org"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://sepolia.basescan.org"},
		},
		Category:  CategoryTestnet,
		IsTestnet: true,
		Status:    StatusHealthy,
		Tags:      []string{"evm", "op-stack"},
	},
	{
		ID:             421614,
		Name:           "Arbitrum Sepolia",
		ShortName:      "arbsep",
		NativeCurrency: NativeCurrency{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18},
		RPCEndpoints: []Endpoint{
			{Scheme: "https", URL: "https://sepolia-rollup.arbitrum.io/rpc"},
		},
		Explorers: []Endpoint{
			{Scheme: "https", URL: "https://sepolia.arbiscan.io"},
		},
		Category:  CategoryTestnet,
		IsTestnet: true,
		Status:    StatusHealthy,
		Tags:      []string{"evm"},
	},
}

// BuiltinDescriptors returns a copy of the built-in network table.
func BuiltinDescriptors() []Descriptor {
	out := make([]Descriptor, len(builtinDescriptors))
	copy(out, builtinDescriptors)
	return out
}
