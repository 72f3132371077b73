package session

import (
	"reflect"
	"testing"

	"ChainPort/internal/chain"
	"ChainPort/internal/connector"
	"ChainPort/internal/transport"
)

func devEnv() connector.Environment {
	return connector.Environment{
		Mode:                   connector.ModeDevelopment,
		Interactive:            true,
		InjectedProvider:       true,
		SessionStorage:         true,
		WalletConnectProjectID: "project-id",
		App:                    connector.AppMetadata{Name: "chainport", OriginURL: "https://app.example.org"},
	}
}

func TestBuildProductionExcludesTestnets(t *testing.T) {
	t.Parallel()

	env := devEnv()
	env.Mode = connector.ModeProduction

	cfg, err := Build(chain.Default(), env, transport.Credentials{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, d := range cfg.Chains {
		if d.IsTestnet {
			t.Fatalf("production config includes testnet %d", d.ID)
		}
	}
	if len(cfg.Transports) != len(cfg.Chains) {
		t.Fatalf("transports for %d chains, want %d", len(cfg.Transports), len(cfg.Chains))
	}
}

func TestBuildDevelopmentIncludesTestnets(t *testing.T) {
	t.Parallel()

	cfg, err := Build(chain.Default(), devEnv(), transport.Credentials{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(cfg.Chains) != chain.Default().Len() {
		t.Fatalf("development config has %d chains, want full registry %d",
			len(cfg.Chains), chain.Default().Len())
	}

	var sawTestnet bool
	for _, d := range cfg.Chains {
		if d.IsTestnet {
			sawTestnet = true
			break
		}
	}
	if !sawTestnet {
		t.Fatal("development config must include test networks")
	}
}

func TestBuildEveryChainEndsWithPublicFallback(t *testing.T) {
	t.Parallel()

	creds := transport.Credentials{AlchemyAPIKey: "key"}
	cfg, err := Build(chain.Default(), devEnv(), creds)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for id, seq := range cfg.Transports {
		if seq.Len() == 0 {
			t.Fatalf("chain %d resolved an empty sequence", id)
		}
		last := seq.Entries[seq.Len()-1]
		if last.Provider != transport.PublicProvider {
			t.Fatalf("chain %d terminal entry = %q, want public", id, last.Provider)
		}
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	t.Parallel()

	env := devEnv()
	creds := transport.Credentials{AlchemyAPIKey: "key", AnkrAPIKey: "key2"}

	first, err := Build(chain.Default(), env, creds)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := Build(chain.Default(), env, creds)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !reflect.DeepEqual(first.Chains, second.Chains) {
		t.Fatal("chain selection differs between identical builds")
	}
	if !reflect.DeepEqual(first.Transports, second.Transports) {
		t.Fatal("transport resolution differs between identical builds")
	}
	if !reflect.DeepEqual(first.ChainIDs(), second.ChainIDs()) {
		t.Fatal("chain id ordering differs between identical builds")
	}
	if len(first.Connectors) != len(second.Connectors) {
		t.Fatal("connector selection differs between identical builds")
	}
}

func TestChainIDsAscending(t *testing.T) {
	t.Parallel()

	cfg, err := Build(chain.Default(), devEnv(), transport.Credentials{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ids := cfg.ChainIDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("chain ids not ascending: %v", ids)
		}
	}
}
