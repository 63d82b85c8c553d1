package relation

import (
	"fmt"
	"sync"
)

// Registry holds the relationship kind definitions known to one application
// instance. Like the kind catalog, registration happens at bootstrap and a
// malformed or duplicate registration is a programming error.
type Registry struct {
	mu    sync.RWMutex
	defs  map[Kind]Definition
	order []Kind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[Kind]Definition),
	}
}

// Register adds a relationship kind definition.
func (r *Registry) Register(def Definition) {
	if def.Kind == "" {
		panic("register relationship: empty kind name")
	}
	if len(def.Roles) == 0 {
		panic(fmt.Sprintf("relationship %q declares no roles", def.Kind))
	}
	seen := make(map[string]bool, len(def.Roles))
	for _, role := range def.Roles {
		if role.Name == "" {
			panic(fmt.Sprintf("relationship %q has a role with an empty name", def.Kind))
		}
		if seen[role.Name] {
			panic(fmt.Sprintf("relationship %q declares role %q twice", def.Kind, role.Name))
		}
		seen[role.Name] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Kind]; exists {
		panic(fmt.Sprintf("relationship %q already registered", def.Kind))
	}
	r.defs[def.Kind] = def
	r.order = append(r.order, def.Kind)
}

// Lookup returns the definition for the given relationship kind.
func (r *Registry) Lookup(k Kind) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[k]
	if !ok {
		return Definition{}, UnknownRelationshipError{Kind: k}
	}
	return def, nil
}

// Kinds returns all registered relationship kinds in registration order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}
