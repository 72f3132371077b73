package chain

import (
	"fmt"
	"sort"
	"sync"

	"ChainPort/internal/errors"
)

// StatusSource supplies live advisory status for a chain id. Implementations
// must be safe for concurrent use and must never block registry queries on
// anything slower than a map read; see internal/status for the provided
// sources.
type StatusSource interface {
	// StatusOf reports the advisory status and whether the source knows the
	// chain at all.
	StatusOf(chainID uint64) (Status, bool)
}

// Registry is an immutable index of chain descriptors. All queries are
// reentrant and require no locking once the registry is constructed.
type Registry struct {
	byID   map[uint64]Descriptor
	ids    []uint64
	status StatusSource
}

// RegistryOption customizes registry construction.
type RegistryOption func(*Registry)

// WithStatusSource injects a live status source consulted by StatusOf
// before falling back to each descriptor's baseline status.
func WithStatusSource(src StatusSource) RegistryOption {
	return func(r *Registry) {
		r.status = src
	}
}

// NewRegistry validates the descriptor set and builds an immutable registry.
func NewRegistry(descriptors []Descriptor, opts ...RegistryOption) (*Registry, error) {
	reg := &Registry{byID: make(map[uint64]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, errors.Wrap(errors.CodeConfigInvalid, err, "链描述校验失败")
		}
		if _, dup := reg.byID[d.ID]; dup {
			return nil, errors.New(errors.CodeConfigInvalid,
				fmt.Sprintf("链 ID %d 在数据集中重复", d.ID))
		}
		reg.byID[d.ID] = d
		reg.ids = append(reg.ids, d.ID)
	}
	sort.Slice(reg.ids, func(i, j int) bool { return reg.ids[i] < reg.ids[j] })
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	return reg, nil
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry over the built-in dataset. It is
// initialized once and never mutated, so concurrent readers need no
// coordination.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := NewRegistry(BuiltinDescriptors())
		if err != nil {
			// The built-in table is covered by tests; reaching this panic
			// means the binary shipped with a broken dataset.
			panic(err)
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Lookup returns the descriptor for the given chain id. Chain ids routinely
// arrive from untrusted wallet-reported state, so an unknown id is an empty
// result, never an error.
func (r *Registry) Lookup(chainID uint64) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	d, ok := r.byID[chainID]
	return d, ok
}

// IsSupported reports whether the chain id is present in the registry.
func (r *Registry) IsSupported(chainID uint64) bool {
	_, ok := r.Lookup(chainID)
	return ok
}

// ListByCategory returns every descriptor in the given category ordered by
// chain id. The category buckets partition the registry exactly.
func (r *Registry) ListByCategory(category Category) []Descriptor {
	if r == nil {
		return nil
	}
	var out []Descriptor
	for _, id := range r.ids {
		if d := r.byID[id]; d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// All returns every descriptor ordered by chain id.
func (r *Registry) All() []Descriptor {
	if r == nil {
		return nil
	}
	out := make([]Descriptor, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered chains.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.ids)
}

// StatusOf returns the advisory status for the chain. A live status source,
// when configured and aware of the chain, wins over the descriptor's
// baseline. Unknown chain ids yield StatusUnknown.
func (r *Registry) StatusOf(chainID uint64) Status {
	d, ok := r.Lookup(chainID)
	if !ok {
		return StatusUnknown
	}
	if r.status != nil {
		if live, known := r.status.StatusOf(chainID); known {
			return live
		}
	}
	return d.Status
}

// DisplayName returns a human label for the chain. Callers must never crash
// on an unrecognized id, so unknown chains fall back to "Chain {id}".
func (r *Registry) DisplayName(chainID uint64) string {
	if d, ok := r.Lookup(chainID); ok {
		if d.Name != "" {
			return d.Name
		}
		return d.ShortName
	}
	return fmt.Sprintf("Chain %d", chainID)
}
