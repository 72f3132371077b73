package session

import (
	"ChainPort/internal/chain"
	"ChainPort/internal/connector"
	"ChainPort/internal/transport"
)

// Config is the composed connectivity configuration a hosting application
// consumes: the included chains, the resolved transport fallback sequence
// per chain, and the eligible connectors in priority order.
type Config struct {
	Mode       connector.Mode             `json:"mode"`
	Chains     []chain.Descriptor         `json:"chains"`
	Transports map[uint64]transport.Chain `json:"transports"`
	Connectors []connector.Descriptor     `json:"connectors"`
}

// Build composes registry, resolver, and catalog into one config. It is
// deterministic given its inputs, performs no network calls, and is safe to
// rebuild on every environment change.
//
// Chain inclusion runs first: development mode additionally includes the
// registry's test networks. Transport resolution and connector cataloging
// operate on that selection, in that order.
func Build(reg *chain.Registry, env connector.Environment, creds transport.Credentials) (*Config, error) {
	cfg := &Config{
		Mode:       env.Mode,
		Transports: make(map[uint64]transport.Chain),
	}

	for _, d := range reg.All() {
		if d.IsTestnet && env.Mode != connector.ModeDevelopment {
			continue
		}
		cfg.Chains = append(cfg.Chains, d)
	}

	for _, d := range cfg.Chains {
		resolved, err := transport.Resolve(reg, d.ID, creds)
		if err != nil {
			return nil, err
		}
		cfg.Transports[d.ID] = resolved
	}

	cfg.Connectors = connector.Available(env)
	return cfg, nil
}

// ChainIDs returns the included chain ids in ascending order.
func (c *Config) ChainIDs() []uint64 {
	if c == nil {
		return nil
	}
	out := make([]uint64, len(c.Chains))
	for i, d := range c.Chains {
		out[i] = d.ID
	}
	return out
}
