package kind

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// FieldMode controls how repeated overrides of the same field combine.
type FieldMode int

const (
	// Replace fields are last-write-wins: the final override is the value.
	Replace FieldMode = iota
	// Accumulate fields are append-only lists: every override contributes
	// its elements in declaration order.
	Accumulate
)

// Field is one entry in a kind's configuration schema.
//
// A zero Default (cty.NilVal) means the field has no default; such a field
// is either optional (resolves to a null value) or, when Required is set,
// must be overridden by the caller. Accumulate fields must have a list type
// and default to the empty list.
type Field struct {
	Name     string
	Type     cty.Type
	Default  cty.Value
	Mode     FieldMode
	Required bool
}

// Schema is the ordered field set of one kind. Field order is the order
// fields appear in resolved configurations.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema builds a schema from the given fields. It panics on malformed
// field sets; schemas are assembled by kind packages at bootstrap, so a bad
// one is a programming error, not an input error.
func NewSchema(fields ...Field) Schema {
	s := Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			panic("schema field with empty name")
		}
		if _, exists := s.index[f.Name]; exists {
			panic(fmt.Sprintf("duplicate schema field %q", f.Name))
		}
		if f.Type == cty.NilType {
			panic(fmt.Sprintf("schema field %q has no type", f.Name))
		}
		if f.Mode == Accumulate {
			if !f.Type.IsListType() {
				panic(fmt.Sprintf("accumulating field %q must have a list type, got %s", f.Name, f.Type.FriendlyName()))
			}
			if f.Required {
				panic(fmt.Sprintf("accumulating field %q cannot be required", f.Name))
			}
		}
		if hasDefault(f) {
			if f.Required {
				panic(fmt.Sprintf("field %q is required but carries a default", f.Name))
			}
			if _, err := convert.Convert(f.Default, f.Type); err != nil {
				panic(fmt.Sprintf("default for field %q does not fit type %s: %v", f.Name, f.Type.FriendlyName(), err))
			}
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// Field returns the named field and whether it is declared.
func (s Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Fields returns the schema's fields in declaration order.
func (s Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of declared fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// hasDefault reports whether the field carries a usable default value.
// cty.NilVal (the zero value) and explicit nulls both mean "no default".
func hasDefault(f Field) bool {
	return f.Default != cty.NilVal && !f.Default.IsNull()
}
