package status

import (
	"context"
	"testing"

	"ChainPort/internal/chain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if _, ok := store.StatusOf(1); ok {
		t.Fatal("fresh store must not know any chain")
	}

	if err := store.Set(ctx, 1, chain.StatusCongested); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := store.StatusOf(1)
	if !ok || got != chain.StatusCongested {
		t.Fatalf("status = %q (known=%v), want congested", got, ok)
	}

	if err := store.Set(ctx, 1, chain.StatusHealthy); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := store.StatusOf(1); got != chain.StatusHealthy {
		t.Fatalf("status after overwrite = %q", got)
	}
}

func TestStaticSource(t *testing.T) {
	t.Parallel()

	src := Static{137: chain.StatusMaintenance}
	if got, ok := src.StatusOf(137); !ok || got != chain.StatusMaintenance {
		t.Fatalf("status = %q (known=%v)", got, ok)
	}
	if _, ok := src.StatusOf(1); ok {
		t.Fatal("static source must not invent entries")
	}
}

func TestMemoryStoreFeedsRegistry(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	reg, err := chain.NewRegistry(chain.BuiltinDescriptors(), chain.WithStatusSource(store))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if got := reg.StatusOf(1); got != chain.StatusHealthy {
		t.Fatalf("baseline status = %q, want healthy", got)
	}
	if err := store.Set(context.Background(), 1, chain.StatusDegraded); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := reg.StatusOf(1); got != chain.StatusDegraded {
		t.Fatalf("live status = %q, want degraded", got)
	}
}
