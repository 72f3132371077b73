package connector

// Mode distinguishes development from production builds. Development
// additionally exposes designated test networks in the session config.
type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// Capability names a runtime precondition a connector variant may require.
// Capability checks are pure reads of the Environment and are safe to
// evaluate speculatively.
type Capability string

const (
	CapabilityInteractive       Capability = "interactive-context"
	CapabilityInjectedProvider  Capability = "injected-provider"
	CapabilityMetaMask          Capability = "metamask-extension"
	CapabilityCoinbaseExtension Capability = "coinbase-extension"
	CapabilitySessionStorage    Capability = "session-storage"
	CapabilityLocalStorage      Capability = "local-storage"
	CapabilitySafeAppContext    Capability = "safe-app-context"
	CapabilityProjectID         Capability = "walletconnect-project-id"
)

// AppMetadata describes the hosting application to wallet SDKs.
type AppMetadata struct {
	Name      string   `json:"name"`
	OriginURL string   `json:"originUrl"`
	IconURLs  []string `json:"iconUrls,omitempty"`
}

// Environment is a snapshot of the runtime capabilities and configuration
// the catalog evaluates activation predicates against. It is plain data;
// building one performs no I/O.
type Environment struct {
	Mode Mode

	Interactive       bool
	InjectedProvider  bool
	MetaMask          bool
	CoinbaseExtension bool
	SessionStorage    bool
	LocalStorage      bool
	SafeAppContext    bool

	WalletConnectProjectID string
	App                    AppMetadata
}

// Has reports whether a single capability is currently satisfied.
func (e Environment) Has(capability Capability) bool {
	switch capability {
	case CapabilityInteractive:
		return e.Interactive
	case CapabilityInjectedProvider:
		return e.InjectedProvider
	case CapabilityMetaMask:
		return e.MetaMask
	case CapabilityCoinbaseExtension:
		return e.CoinbaseExtension
	case CapabilitySessionStorage:
		return e.SessionStorage
	case CapabilityLocalStorage:
		return e.LocalStorage
	case CapabilitySafeAppContext:
		return e.SafeAppContext
	case CapabilityProjectID:
		return e.WalletConnectProjectID != ""
	default:
		return false
	}
}

// BuildConfig is the pure data object a wallet SDK constructor consumes.
// The catalog never opens a connection; it only decides eligibility and
// hands this configuration to the external SDK.
type BuildConfig struct {
	VariantID string            `json:"variantId"`
	ProjectID string            `json:"projectId,omitempty"`
	App       AppMetadata       `json:"appMetadata"`
	Flags     map[string]string `json:"flags,omitempty"`
}
