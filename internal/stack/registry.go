package stack

import (
	"github.com/vk/stackforge/internal/kind"
)

// registry is the per-stack name table. It is append-only: entries are
// never updated or removed, and iteration follows insertion order.
type registry struct {
	names   []string
	handles map[string]Handle
}

func newRegistry() *registry {
	return &registry{handles: make(map[string]Handle)}
}

func (r *registry) insert(h Handle) error {
	if existing, ok := r.handles[h.Name]; ok {
		return DuplicateNameError{Name: h.Name, Kind: existing.Kind}
	}
	r.handles[h.Name] = h
	r.names = append(r.names, h.Name)
	return nil
}

// lookup resolves a name, optionally checking the handle's kind. Pass
// kind.Any to accept any kind.
func (r *registry) lookup(name string, expect kind.Kind) (Handle, error) {
	h, ok := r.handles[name]
	if !ok {
		return Handle{}, UnresolvedNameError{Name: name}
	}
	if expect != kind.Any && h.Kind != expect {
		return Handle{}, KindMismatchError{Name: name, Actual: h.Kind, Expected: expect}
	}
	return h, nil
}

func (r *registry) orderedNames() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
