package connector

import (
	"fmt"
	"strings"

	"ChainPort/internal/errors"
)

// Descriptor is one wallet connector variant: identity, display metadata,
// required capabilities, and the build-config factory handed to the
// external wallet SDK once the variant is eligible.
type Descriptor struct {
	VariantID   string
	DisplayName string
	requires    []Capability
	buildConfig func(Environment) BuildConfig
}

// Requires returns the variant's required capabilities.
func (d Descriptor) Requires() []Capability {
	out := make([]Capability, len(d.requires))
	copy(out, d.requires)
	return out
}

// Missing evaluates the activation predicate and returns every capability
// the environment currently lacks. A nil result means the variant is
// available. The check is pure and safe to call speculatively.
func (d Descriptor) Missing(env Environment) []Capability {
	var missing []Capability
	for _, capability := range d.requires {
		if !env.Has(capability) {
			missing = append(missing, capability)
		}
	}
	return missing
}

// catalog is the fixed variant priority order: dedicated wallet extensions
// first, then the generic injected connector, then remote-session
// connectors, then smart-contract wallets.
var catalog = []Descriptor{
	{
		VariantID:   "metamask",
		DisplayName: "MetaMask",
		requires:    []Capability{CapabilityInteractive, CapabilityInjectedProvider, CapabilityMetaMask},
		buildConfig: func(env Environment) BuildConfig {
			return BuildConfig{
				VariantID: "metamask",
				App:       env.App,
				Flags:     map[string]string{"preferDesktop": "true"},
			}
		},
	},
	{
		VariantID:   "coinbase",
		DisplayName: "Coinbase Wallet",
		requires:    []Capability{CapabilityInteractive, CapabilityCoinbaseExtension, CapabilityLocalStorage},
		buildConfig: func(env Environment) BuildConfig {
			return BuildConfig{
				VariantID: "coinbase",
				App:       env.App,
			}
		},
	},
	{
		VariantID:   "injected",
		DisplayName: "Browser Wallet",
		requires:    []Capability{CapabilityInteractive, CapabilityInjectedProvider},
		buildConfig: func(env Environment) BuildConfig {
			return BuildConfig{
				VariantID: "injected",
				App:       env.App,
			}
		},
	},
	{
		VariantID:   "walletconnect",
		DisplayName: "WalletConnect",
		requires:    []Capability{CapabilityProjectID, CapabilitySessionStorage},
		buildConfig: func(env Environment) BuildConfig {
			flags := map[string]string{"showQrModal": "true"}
			if env.Mode == ModeDevelopment {
				flags["relayLogLevel"] = "debug"
			}
			return BuildConfig{
				VariantID: "walletconnect",
				ProjectID: env.WalletConnectProjectID,
				App:       env.App,
				Flags:     flags,
			}
		},
	},
	{
		VariantID:   "safe",
		DisplayName: "Safe",
		requires:    []Capability{CapabilitySafeAppContext, CapabilityLocalStorage},
		buildConfig: func(env Environment) BuildConfig {
			return BuildConfig{
				VariantID: "safe",
				App:       env.App,
				Flags:     map[string]string{"allowedDomains": "app.safe.global"},
			}
		},
	},
}

// Variants returns every known connector descriptor in priority order,
// regardless of eligibility.
func Variants() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Available returns the eligible subset of connector descriptors for the
// environment, preserving the declared priority order. It never fails: a
// variant whose preconditions are absent is excluded, not an error, so
// consumers can always render some subset without branching on exceptions.
func Available(env Environment) []Descriptor {
	var out []Descriptor
	for _, d := range catalog {
		if len(d.Missing(env)) == 0 {
			out = append(out, d)
		}
	}
	return out
}

// Build returns the variant's SDK configuration. Invoking an ineligible
// variant is a caller error surfaced with every missing capability named.
func Build(variantID string, env Environment) (BuildConfig, error) {
	for _, d := range catalog {
		if d.VariantID != variantID {
			continue
		}
		if missing := d.Missing(env); len(missing) > 0 {
			labels := make([]string, len(missing))
			for i, capability := range missing {
				labels[i] = string(capability)
			}
			return BuildConfig{}, errors.New(errors.CodeConnectorUnavailable,
				fmt.Sprintf("连接器 %s 缺少前置条件: %s", variantID, strings.Join(labels, ", ")),
				errors.WithMetadata("variant", variantID),
				errors.WithMetadata("missing", strings.Join(labels, ",")))
		}
		return d.buildConfig(env), nil
	}
	return BuildConfig{}, errors.New(errors.CodeInvalidArgument,
		fmt.Sprintf("未知的连接器变体 %q", variantID))
}
