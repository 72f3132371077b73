package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ChainPort/internal/chain"
	"ChainPort/internal/errors"
)

func TestResolveWithoutCredentials(t *testing.T) {
	t.Parallel()

	resolved, err := Resolve(chain.Default(), 1, Credentials{})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Len() != 1 {
		t.Fatalf("sequence length = %d, want exactly the public default", resolved.Len())
	}
	if resolved.Entries[0].Provider != PublicProvider {
		t.Fatalf("sole entry provider = %q, want public", resolved.Entries[0].Provider)
	}
	if resolved.Entries[0].URL == "" {
		t.Fatal("public default URL must not be empty")
	}
}

func TestResolveWithAllCredentials(t *testing.T) {
	t.Parallel()

	creds := Credentials{
		AlchemyAPIKey: "alchemy-key",
		InfuraAPIKey:  "infura-key",
		AnkrAPIKey:    "ankr-key",
	}

	resolved, err := Resolve(chain.Default(), 1, creds)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Len() != 4 {
		t.Fatalf("sequence length = %d, want 3 premium + 1 public", resolved.Len())
	}

	order := []string{"alchemy", "infura", "ankr", PublicProvider}
	for i, want := range order {
		if got := resolved.Entries[i].Provider; got != want {
			t.Fatalf("entry %d provider = %q, want %q", i, got, want)
		}
	}
	if !strings.Contains(resolved.Entries[0].URL, "alchemy-key") {
		t.Fatalf("alchemy URL %q missing credential", resolved.Entries[0].URL)
	}
	last := resolved.Entries[resolved.Len()-1]
	if last.Provider != PublicProvider {
		t.Fatalf("terminal entry provider = %q, want public", last.Provider)
	}
}

func TestResolveSkipsProvidersNotServingChain(t *testing.T) {
	t.Parallel()

	// Gnosis (100) has no Infura template; a configured Infura key must be
	// skipped silently rather than producing a broken entry.
	creds := Credentials{InfuraAPIKey: "infura-key", AnkrAPIKey: "ankr-key"}
	resolved, err := Resolve(chain.Default(), 100, creds)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Len() != 2 {
		t.Fatalf("sequence length = %d, want ankr + public", resolved.Len())
	}
	if resolved.Entries[0].Provider != "ankr" {
		t.Fatalf("first entry = %q, want ankr", resolved.Entries[0].Provider)
	}
}

func TestResolveUnknownChain(t *testing.T) {
	t.Parallel()

	_, err := Resolve(chain.Default(), 424242, Credentials{})
	if err == nil {
		t.Fatal("expected resolution to fail for unregistered chain")
	}
	if errors.CodeOf(err) != errors.CodeNoTransportAvailable {
		t.Fatalf("error code = %q, want NO_TRANSPORT_AVAILABLE", errors.CodeOf(err))
	}
}

func TestProviderPriorityIsStable(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, len(Providers()))
	for _, p := range Providers() {
		names = append(names, p.Name)
	}
	want := []string{"alchemy", "infura", "ankr"}
	if len(names) != len(want) {
		t.Fatalf("provider count = %d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("provider %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestDialFallsBackToNextEntry(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x1"}`))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seq := Chain{ChainID: 1, Entries: []Entry{
		{Provider: "alchemy", URL: "ws://127.0.0.1:1"}, // refused immediately
		{Provider: PublicProvider, URL: srv.URL},
	}}

	client, winner, err := Dial(ctx, seq)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()
	if winner.Provider != PublicProvider {
		t.Fatalf("winning entry = %q, want public fallback", winner.Provider)
	}
}

func TestDialExhaustsSequence(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seq := Chain{ChainID: 1, Entries: []Entry{
		{Provider: "alchemy", URL: "ws://127.0.0.1:1"},
		{Provider: PublicProvider, URL: "ws://127.0.0.1:1"},
	}}

	_, _, err := Dial(ctx, seq)
	if err == nil {
		t.Fatal("expected dial to fail once the sequence is exhausted")
	}
	if errors.CodeOf(err) != errors.CodeTransportExhausted {
		t.Fatalf("error code = %q, want TRANSPORT_EXHAUSTED", errors.CodeOf(err))
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv("ALCHEMY_API_KEY", " alchemy-key ")
	t.Setenv("INFURA_API_KEY", "")
	t.Setenv("ANKR_API_KEY", "ankr-key")
	t.Setenv("WALLETCONNECT_PROJECT_ID", "project-id")

	creds := CredentialsFromEnv()
	if creds.AlchemyAPIKey != "alchemy-key" {
		t.Fatalf("alchemy key = %q, want trimmed value", creds.AlchemyAPIKey)
	}
	if creds.InfuraAPIKey != "" {
		t.Fatalf("infura key = %q, want empty", creds.InfuraAPIKey)
	}
	if creds.WalletConnectProjectID != "project-id" {
		t.Fatalf("project id = %q", creds.WalletConnectProjectID)
	}
}
