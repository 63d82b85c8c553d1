package kind

import (
	"github.com/zclconf/go-cty/cty"
)

// Config is a fully resolved configuration: every schema field bound to a
// concrete value, in schema order. Configs are immutable once built; the
// only constructor is Resolve.
type Config struct {
	names  []string
	values map[string]cty.Value
}

func newConfig(names []string, values map[string]cty.Value) Config {
	return Config{names: names, values: values}
}

// Get returns the value of the named field and whether the field exists.
func (c Config) Get(name string) (cty.Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Fields returns the field names in schema order.
func (c Config) Fields() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Values returns a copy of the field-to-value mapping.
func (c Config) Values() map[string]cty.Value {
	out := make(map[string]cty.Value, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Len returns the number of fields.
func (c Config) Len() int {
	return len(c.names)
}

// Equal reports whether two configs hold the same fields in the same order
// with the same values. Resolve is deterministic, so resolving the same
// overrides against the same kind always yields Equal configs.
func (c Config) Equal(other Config) bool {
	if len(c.names) != len(other.names) {
		return false
	}
	for i, name := range c.names {
		if other.names[i] != name {
			return false
		}
		if !c.values[name].RawEquals(other.values[name]) {
			return false
		}
	}
	return true
}
