package status

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"

	"ChainPort/internal/chain"
	cperrors "ChainPort/internal/errors"
)

// stubHashClient answers the hash commands from an in-memory map.
type stubHashClient struct {
	data map[string]string
	err  error
}

func (s *stubHashClient) HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if s.err != nil {
		cmd.SetErr(s.err)
		return cmd
	}
	for i := 0; i+1 < len(values); i += 2 {
		s.data[values[i].(string)] = values[i+1].(string)
	}
	cmd.SetVal(int64(len(values) / 2))
	return cmd
}

func (s *stubHashClient) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	cmd := redis.NewMapStringStringCmd(ctx)
	if s.err != nil {
		cmd.SetErr(s.err)
		return cmd
	}
	cmd.SetVal(s.data)
	return cmd
}

func (s *stubHashClient) Close() error { return nil }

func newStubRedis(stub *stubHashClient) *Redis {
	return &Redis{
		client:   stub,
		key:      "chainport:status",
		snapshot: make(map[uint64]chain.Status),
	}
}

func TestRedisRefreshReplacesSnapshot(t *testing.T) {
	t.Parallel()

	stub := &stubHashClient{data: map[string]string{
		"1":     string(chain.StatusCongested),
		"137":   string(chain.StatusMaintenance),
		"bogus": string(chain.StatusHealthy),
	}}
	store := newStubRedis(stub)
	store.snapshot[10] = chain.StatusHealthy // stale local entry

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if got, ok := store.StatusOf(1); !ok || got != chain.StatusCongested {
		t.Fatalf("status of 1 = %q (known=%v), want congested", got, ok)
	}
	if got, ok := store.StatusOf(137); !ok || got != chain.StatusMaintenance {
		t.Fatalf("status of 137 = %q (known=%v), want maintenance", got, ok)
	}
	if _, ok := store.StatusOf(10); ok {
		t.Fatal("stale local entry must be dropped on refresh")
	}
}

func TestRedisRefreshKeepsSnapshotOnError(t *testing.T) {
	t.Parallel()

	stub := &stubHashClient{data: map[string]string{}}
	store := newStubRedis(stub)
	if err := store.Set(context.Background(), 1, chain.StatusDegraded); err != nil {
		t.Fatalf("set: %v", err)
	}

	stub.err = errors.New("connection reset")
	err := store.Refresh(context.Background())
	if err == nil {
		t.Fatal("expected refresh error")
	}
	if cperrors.CodeOf(err) != cperrors.CodeStorageFailure {
		t.Fatalf("error code = %s, want STORAGE_FAILURE", cperrors.CodeOf(err))
	}
	if got, ok := store.StatusOf(1); !ok || got != chain.StatusDegraded {
		t.Fatalf("snapshot lost on failed refresh: %q (known=%v)", got, ok)
	}
}

func TestRedisSetUpdatesRedisAndSnapshot(t *testing.T) {
	t.Parallel()

	stub := &stubHashClient{data: map[string]string{}}
	store := newStubRedis(stub)

	if err := store.Set(context.Background(), 8453, chain.StatusHealthy); err != nil {
		t.Fatalf("set: %v", err)
	}
	if stub.data["8453"] != string(chain.StatusHealthy) {
		t.Fatalf("redis hash = %v", stub.data)
	}
	if got, ok := store.StatusOf(8453); !ok || got != chain.StatusHealthy {
		t.Fatalf("snapshot = %q (known=%v)", got, ok)
	}

	stub.err = errors.New("readonly replica")
	if err := store.Set(context.Background(), 8453, chain.StatusMaintenance); err == nil {
		t.Fatal("expected set error")
	}
	if got, _ := store.StatusOf(8453); got != chain.StatusHealthy {
		t.Fatalf("snapshot changed on failed write: %q", got)
	}
}
