package transport

import (
	"fmt"
	"os"
	"strings"
)

// Credentials carries every environment-derived secret the resolver and the
// connector catalog consume. An empty field means the corresponding provider
// or connector is disabled; absence is expected, not exceptional.
type Credentials struct {
	AlchemyAPIKey          string
	InfuraAPIKey           string
	AnkrAPIKey             string
	WalletConnectProjectID string
}

// CredentialsFromEnv reads provider credentials from the process
// environment. Missing variables simply leave the provider disabled.
func CredentialsFromEnv() Credentials {
	return Credentials{
		AlchemyAPIKey:          strings.TrimSpace(os.Getenv("ALCHEMY_API_KEY")),
		InfuraAPIKey:           strings.TrimSpace(os.Getenv("INFURA_API_KEY")),
		AnkrAPIKey:             strings.TrimSpace(os.Getenv("ANKR_API_KEY")),
		WalletConnectProjectID: strings.TrimSpace(os.Getenv("WALLETCONNECT_PROJECT_ID")),
	}
}

// Provider describes one credentialed RPC vendor: its fixed position in the
// fallback priority order, how to pull its key out of Credentials, and the
// per-chain URL templates it serves. A provider with no template for a chain
// does not serve that chain.
type Provider struct {
	Name      string
	key       func(Credentials) string
	endpoints map[uint64]string
}

// EndpointFor renders the provider's URL for the chain, or reports that the
// provider does not serve it.
func (p Provider) EndpointFor(chainID uint64, creds Credentials) (string, bool) {
	template, ok := p.endpoints[chainID]
	if !ok {
		return "", false
	}
	key := p.key(creds)
	if key == "" {
		return "", false
	}
	return fmt.Sprintf(template, key), true
}

// Enabled reports whether the provider's credential is configured at all.
func (p Provider) Enabled(creds Credentials) bool {
	return p.key(creds) != ""
}

// providers is the fixed premium priority order. Resolution walks this
// slice front to back; reordering it changes fallback behaviour for every
// caller.
var providers = []Provider{
	{
		Name: "alchemy",
		key:  func(c Credentials) string { return c.AlchemyAPIKey },
		endpoints: map[uint64]string{
			1:        "https://eth-mainnet.g.alchemy.com/v2/%s",
			10:       "https://opt-mainnet.g.alchemy.com/v2/%s",
			56:       "https://bnb-mainnet.g.alchemy.com/v2/%s",
			100:      "https://gnosis-mainnet.g.alchemy.com/v2/%s",
			137:      "https://polygon-mainnet.g.alchemy.com/v2/%s",
			8453:     "https://base-mainnet.g.alchemy.com/v2/%s",
			42161:    "https://arb-mainnet.g.alchemy.com/v2/%s",
			43114:    "https://avax-mainnet.g.alchemy.com/v2/%s",
			59144:    "https://linea-mainnet.g.alchemy.com/v2/%s",
			534352:   "https://scroll-mainnet.g.alchemy.com/v2/%s",
			11155111: "https://eth-sepolia.g.alchemy.com/v2/%s",
			17000:    "https://eth-holesky.g.alchemy.com/v2/%s",
			80002:    "https://polygon-amoy.g.alchemy.com/v2/%s",
			84532:    "https://base-sepolia.g.alchemy.com/v2/%s",
			421614:   "https://arb-sepolia.g.alchemy.com/v2/%s",
		},
	},
	{
		Name: "infura",
		key:  func(c Credentials) string { return c.InfuraAPIKey },
		endpoints: map[uint64]string{
			1:        "https://mainnet.infura.io/v3/%s",
			10:       "https://optimism-mainnet.infura.io/v3/%s",
			56:       "https://bsc-mainnet.infura.io/v3/%s",
			137:      "https://polygon-mainnet.infura.io/v3/%s",
			8453:     "https://base-mainnet.infura.io/v3/%s",
			42161:    "https://arbitrum-mainnet.infura.io/v3/%s",
			43114:    "https://avalanche-mainnet.infura.io/v3/%s",
			59144:    "https://linea-mainnet.infura.io/v3/%s",
			534352:   "https://scroll-mainnet.infura.io/v3/%s",
			11155111: "https://sepolia.infura.io/v3/%s",
			17000:    "https://holesky.infura.io/v3/%s",
			80002:    "https://polygon-amoy.infura.io/v3/%s",
			84532:    "https://base-sepolia.infura.io/v3/%s",
			421614:   "https://arbitrum-sepolia.infura.io/v3/%s",
		},
	},
	{
		Name: "ankr",
		key:  func(c Credentials) string { return c.AnkrAPIKey },
		endpoints: map[uint64]string{
			1:        "https://rpc.ankr.com/eth/%s",
			10:       "https://rpc.ankr.com/optimism/%s",
			56:       "https://rpc.ankr.com/bsc/%s",
			100:      "https://rpc.ankr.com/gnosis/%s",
			137:      "https://rpc.ankr.com/polygon/%s",
			8453:     "https://rpc.ankr.com/base/%s",
			42161:    "https://rpc.ankr.com/arbitrum/%s",
			43114:    "https://rpc.ankr.com/avalanche/%s",
			59144:    "https://rpc.ankr.com/linea/%s",
			534352:   "https://rpc.ankr.com/scroll/%s",
			11155111: "https://rpc.ankr.com/eth_sepolia/%s",
			17000:    "https://rpc.ankr.com/eth_holesky/%s",
			80002:    "https://rpc.ankr.com/polygon_amoy/%s",
			84532:    "https://rpc.ankr.com/base_sepolia/%s",
			421614:   "https://rpc.ankr.com/arbitrum_sepolia/%s",
		},
	},
}

// Providers returns the premium provider list in priority order.
func Providers() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}
