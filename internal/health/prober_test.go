package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ChainPort/internal/chain"
	"ChainPort/internal/notify"
	"ChainPort/internal/observability/alerting"
	"ChainPort/internal/status"
	"ChainPort/internal/storage/mysql"
	"ChainPort/internal/transport"
)

// rpcStub answers just enough JSON-RPC for a probe to succeed.
func rpcStub(t *testing.T, chainIDHex, blockHex string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var result string
		switch req.Method {
		case "eth_chainId":
			result = chainIDHex
		case "eth_blockNumber":
			result = blockHex
		default:
			result = "0x0"
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testRegistry(t *testing.T, rpcURL string) *chain.Registry {
	t.Helper()
	reg, err := chain.NewRegistry([]chain.Descriptor{{
		ID:             1337,
		Name:           "Localnet",
		ShortName:      "local",
		NativeCurrency: chain.NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18},
		RPCEndpoints:   []chain.Endpoint{{Scheme: "http", URL: rpcURL}},
		Category:       chain.CategoryTestnet,
		IsTestnet:      true,
		Status:         chain.StatusHealthy,
	}})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return reg
}

type captureNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (c *captureNotifier) Publish(_ context.Context, event notify.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *captureNotifier) Close() error { return nil }

func (c *captureNotifier) all() []notify.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notify.Event(nil), c.events...)
}

func newTestProber(t *testing.T, reg *chain.Registry, store status.Store, history mysql.HistoryRepository, notifier notify.Notifier) *Prober {
	t.Helper()
	prober, err := NewProber(Config{
		Registry: reg,
		Store:    store,
		History:  history,
		Notifier: notifier,
		Interval: time.Hour,
		Timeout:  5 * time.Second,
		Logger:   slog.Default(),
	})
	if err != nil {
		t.Fatalf("new prober: %v", err)
	}
	return prober
}

func TestProbeHealthyChain(t *testing.T) {
	t.Parallel()

	srv := rpcStub(t, "0x539", "0x10") // 0x539 == 1337
	t.Cleanup(srv.Close)

	reg := testRegistry(t, srv.URL)
	store := status.NewMemory()
	history := mysql.NewMemoryHistory()
	prober := newTestProber(t, reg, store, history, nil)

	prober.ProbeAll(context.Background())

	got, known := store.StatusOf(1337)
	if !known || got != chain.StatusHealthy {
		t.Fatalf("status = %q (known=%v), want healthy", got, known)
	}

	records, err := history.Recent(context.Background(), 1337, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one history record, got %d", len(records))
	}
	if records[0].Provider != transport.PublicProvider {
		t.Fatalf("winning provider = %q, want public", records[0].Provider)
	}
	if records[0].BlockNumber != 0x10 {
		t.Fatalf("block number = %d, want 16", records[0].BlockNumber)
	}
	if records[0].RunID == "" {
		t.Fatal("probe record must carry a run id")
	}
}

func TestProbeUnreachableChainIsMaintenance(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, "http://127.0.0.1:1")
	store := status.NewMemory()
	prober := newTestProber(t, reg, store, mysql.NewMemoryHistory(), nil)

	prober.ProbeAll(context.Background())

	got, known := store.StatusOf(1337)
	if !known || got != chain.StatusMaintenance {
		t.Fatalf("status = %q (known=%v), want maintenance", got, known)
	}
}

func TestProbeWrongChainIDIsDegraded(t *testing.T) {
	t.Parallel()

	srv := rpcStub(t, "0x1", "0x10") // reports mainnet instead of 1337
	t.Cleanup(srv.Close)

	reg := testRegistry(t, srv.URL)
	store := status.NewMemory()
	prober := newTestProber(t, reg, store, mysql.NewMemoryHistory(), nil)

	prober.ProbeAll(context.Background())

	got, _ := store.StatusOf(1337)
	if got != chain.StatusDegraded {
		t.Fatalf("status = %q, want degraded on chain id mismatch", got)
	}
}

func TestProbeDegradedRegardlessOfFailureOrder(t *testing.T) {
	t.Parallel()

	srv := rpcStub(t, "0x1", "0x10") // reports mainnet instead of 1337
	t.Cleanup(srv.Close)

	mismatch := transport.Entry{Provider: "alchemy", URL: srv.URL}
	dead := transport.Entry{Provider: transport.PublicProvider, URL: "http://127.0.0.1:1"}

	orders := map[string][]transport.Entry{
		"mismatch first": {mismatch, dead},
		"mismatch last":  {dead, mismatch},
	}
	for name, entries := range orders {
		store := status.NewMemory()
		reg := testRegistry(t, srv.URL)
		prober := newTestProber(t, reg, store, mysql.NewMemoryHistory(), nil)

		prober.probeSequence(context.Background(), "run", reg.All()[0], transport.Chain{
			ChainID: 1337,
			Entries: entries,
		})

		if got, _ := store.StatusOf(1337); got != chain.StatusDegraded {
			t.Fatalf("%s: status = %q, want degraded", name, got)
		}
	}
}

type captureDispatcher struct {
	mu     sync.Mutex
	events []alerting.Event
}

func (c *captureDispatcher) Notify(_ context.Context, event alerting.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func TestProbeDispatchesAlertOnOutage(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, "http://127.0.0.1:1")
	store := status.NewMemory()
	dispatcher := &captureDispatcher{}
	prober, err := NewProber(Config{
		Registry: reg,
		Store:    store,
		History:  mysql.NewMemoryHistory(),
		Alerts:   dispatcher,
		Interval: time.Hour,
		Timeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("new prober: %v", err)
	}

	prober.ProbeAll(context.Background())
	// Second round: chain is still down, no duplicate alert expected.
	prober.ProbeAll(context.Background())

	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	if len(dispatcher.events) != 1 {
		t.Fatalf("expected one alert, got %d", len(dispatcher.events))
	}
	if dispatcher.events[0].ChainID != 1337 || dispatcher.events[0].Status != chain.StatusMaintenance {
		t.Fatalf("unexpected alert event: %+v", dispatcher.events[0])
	}
}

func TestProbePublishesTransitions(t *testing.T) {
	t.Parallel()

	reg := testRegistry(t, "http://127.0.0.1:1")
	store := status.NewMemory()
	if err := store.Set(context.Background(), 1337, chain.StatusHealthy); err != nil {
		t.Fatalf("seed status: %v", err)
	}
	notifier := &captureNotifier{}
	prober := newTestProber(t, reg, store, mysql.NewMemoryHistory(), notifier)

	prober.ProbeAll(context.Background())
	// Second round: status unchanged, no extra event expected.
	prober.ProbeAll(context.Background())

	events := notifier.all()
	if len(events) != 1 {
		t.Fatalf("expected exactly one transition event, got %d", len(events))
	}
	if events[0].From != chain.StatusHealthy || events[0].To != chain.StatusMaintenance {
		t.Fatalf("transition = %s -> %s", events[0].From, events[0].To)
	}
	if events[0].ID == "" {
		t.Fatal("event must carry an id")
	}
}
