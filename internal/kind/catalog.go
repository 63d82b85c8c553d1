package kind

import (
	"fmt"
	"sync"

	"github.com/juju/collections/set"
)

// Catalog holds the resource kind definitions registered for one application
// instance. Registration happens at bootstrap; lookups happen throughout
// composition, possibly from several stacks composing concurrently.
type Catalog struct {
	mu    sync.RWMutex
	defs  map[Kind]Definition
	order []Kind
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		defs: make(map[Kind]Definition),
	}
}

// Register adds a kind definition. Registering a duplicate or malformed
// definition panics: kinds are wired in by code, so this is a programming
// error surfaced at startup, not a runtime condition.
func (c *Catalog) Register(def Definition) {
	if def.Kind == "" {
		panic("register kind: empty kind name")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.defs[def.Kind]; exists {
		panic(fmt.Sprintf("kind %q already registered", def.Kind))
	}
	c.defs[def.Kind] = def
	c.order = append(c.order, def.Kind)
}

// Lookup returns the definition for the given kind.
func (c *Catalog) Lookup(k Kind) (Definition, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[k]
	if !ok {
		return Definition{}, UnknownKindError{Kind: k}
	}
	return def, nil
}

// Kinds returns all registered kinds in registration order.
func (c *Catalog) Kinds() []Kind {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Kind, len(c.order))
	copy(out, c.order)
	return out
}

// WithCap returns the set of registered kinds carrying the given capability.
// Relationship diagnostics use this to name the kinds a role would accept.
func (c *Catalog) WithCap(capability string) set.Strings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	matching := set.NewStrings()
	for k, def := range c.defs {
		if def.HasCap(capability) {
			matching.Add(string(k))
		}
	}
	return matching
}
