package transport

import (
	"fmt"

	"ChainPort/internal/chain"
	"ChainPort/internal/errors"
)

// PublicProvider is the provenance label of the terminal public fallback.
const PublicProvider = "public"

// Entry is one resolved transport endpoint with its provenance.
type Entry struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

// Chain is the ordered fallback sequence of transports for one chain id.
// Callers attempt entries front to back and treat each failure as a signal
// to advance; the last entry is always the public default.
type Chain struct {
	ChainID uint64  `json:"chainId"`
	Entries []Entry `json:"entries"`
}

// URLs returns the endpoint URLs in fallback order.
func (c Chain) URLs() []string {
	out := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.URL
	}
	return out
}

// Len returns the number of entries in the fallback sequence.
func (c Chain) Len() int {
	return len(c.Entries)
}

// Resolve builds the ordered fallback sequence for the chain: credentialed
// premium providers in fixed priority order, then exactly one public default
// from the registry. Providers without a credential, or which do not serve
// the chain, are skipped silently. The result is never empty; an id the
// registry does not know, or a descriptor without a public endpoint, is a
// configuration-integrity fault.
func Resolve(reg *chain.Registry, chainID uint64, creds Credentials) (Chain, error) {
	descriptor, ok := reg.Lookup(chainID)
	if !ok {
		return Chain{}, errors.New(errors.CodeNoTransportAvailable,
			fmt.Sprintf("链 %d 不在注册表中，无法解析传输端点", chainID))
	}

	resolved := Chain{ChainID: chainID}
	for _, p := range providers {
		url, ok := p.EndpointFor(chainID, creds)
		if !ok {
			continue
		}
		resolved.Entries = append(resolved.Entries, Entry{Provider: p.Name, URL: url})
	}

	public := descriptor.PublicRPC()
	if public.URL == "" {
		// Unreachable with a validated registry; surfaced as a hard failure
		// because no further automatic fallback exists.
		return Chain{}, errors.New(errors.CodeNoTransportAvailable,
			fmt.Sprintf("链 %d 缺少公共默认端点", chainID))
	}
	resolved.Entries = append(resolved.Entries, Entry{Provider: PublicProvider, URL: public.URL})

	return resolved, nil
}
