package kind

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Override is one caller-supplied field assignment. Whether it replaces the
// current value or appends to it is decided by the field's mode, not by the
// override itself.
type Override struct {
	Field string

	ctyVal cty.Value
	goVal  any
	isCty  bool
}

// Set builds an override from a native Go value. The value is converted to
// the field's declared type during Resolve; unconvertible values surface as
// FieldValueError there, keeping Resolve the single failure point.
func Set(field string, value any) Override {
	return Override{Field: field, goVal: value}
}

// SetValue builds an override from an already-typed cty value. The manifest
// frontend uses this form, since HCL evaluation produces cty values directly.
func SetValue(field string, value cty.Value) Override {
	return Override{Field: field, ctyVal: value, isCty: true}
}

// Resolve layers the given overrides, in order, on top of the definition's
// defaults and returns the resulting configuration.
//
// Resolve is a pure function: it reads nothing but its arguments and mutates
// neither the definition nor the overrides, so identical inputs always
// produce Equal configs.
func Resolve(def Definition, overrides []Override) (Config, error) {
	values := make(map[string]cty.Value, def.Schema.Len())
	overridden := make(map[string]bool, len(overrides))

	for _, f := range def.Schema.fields {
		switch {
		case f.Mode == Accumulate:
			if hasDefault(f) {
				seed, err := convert.Convert(f.Default, f.Type)
				if err != nil {
					return Config{}, FieldValueError{Kind: def.Kind, Field: f.Name, Err: err}
				}
				values[f.Name] = seed
			} else {
				values[f.Name] = cty.ListValEmpty(f.Type.ElementType())
			}
		case hasDefault(f):
			dv, err := convert.Convert(f.Default, f.Type)
			if err != nil {
				return Config{}, FieldValueError{Kind: def.Kind, Field: f.Name, Err: err}
			}
			values[f.Name] = dv
		default:
			values[f.Name] = cty.NullVal(f.Type)
		}
	}

	for _, ov := range overrides {
		f, ok := def.Schema.Field(ov.Field)
		if !ok {
			return Config{}, UnknownFieldError{Kind: def.Kind, Field: ov.Field}
		}
		val, err := ov.value()
		if err != nil {
			return Config{}, FieldValueError{Kind: def.Kind, Field: f.Name, Err: err}
		}
		switch f.Mode {
		case Accumulate:
			appended, err := appendElements(values[f.Name], val, f.Type)
			if err != nil {
				return Config{}, FieldValueError{Kind: def.Kind, Field: f.Name, Err: err}
			}
			values[f.Name] = appended
		default:
			converted, err := convert.Convert(val, f.Type)
			if err != nil {
				return Config{}, FieldValueError{Kind: def.Kind, Field: f.Name, Err: err}
			}
			values[f.Name] = converted
		}
		overridden[f.Name] = true
	}

	names := make([]string, 0, def.Schema.Len())
	for _, f := range def.Schema.fields {
		if f.Required && !overridden[f.Name] {
			return Config{}, MissingFieldError{Kind: def.Kind, Field: f.Name}
		}
		names = append(names, f.Name)
	}

	cfg := newConfig(names, values)
	if def.NewSpec != nil {
		spec := def.NewSpec()
		if err := Decode(cfg, spec); err != nil {
			return Config{}, InvalidConfigError{Kind: def.Kind, Err: err}
		}
		if def.Check != nil {
			if err := def.Check(spec); err != nil {
				return Config{}, InvalidConfigError{Kind: def.Kind, Err: err}
			}
		}
	}
	return cfg, nil
}

// value materializes the override as a cty value, converting native Go
// values through their implied cty type.
func (ov Override) value() (cty.Value, error) {
	if ov.isCty {
		return ov.ctyVal, nil
	}
	if ov.goVal == nil {
		return cty.Value{}, fmt.Errorf("nil value")
	}
	ty, err := gocty.ImpliedType(ov.goVal)
	if err != nil {
		return cty.Value{}, fmt.Errorf("unable to infer a type for %T: %w", ov.goVal, err)
	}
	return gocty.ToCtyValue(ov.goVal, ty)
}

// appendElements appends one override's contribution to an accumulating
// list. The override may be a whole list of elements or a single element;
// either way all elements are converted to the field's element type.
func appendElements(current, val cty.Value, listType cty.Type) (cty.Value, error) {
	elemType := listType.ElementType()

	var incoming []cty.Value
	if asList, err := convert.Convert(val, listType); err == nil {
		if asList.IsNull() {
			return current, nil
		}
		incoming = asList.AsValueSlice()
	} else {
		asElem, elemErr := convert.Convert(val, elemType)
		if elemErr != nil {
			return cty.Value{}, fmt.Errorf("value fits neither %s nor %s: %w", listType.FriendlyName(), elemType.FriendlyName(), elemErr)
		}
		incoming = []cty.Value{asElem}
	}

	merged := current.AsValueSlice()
	merged = append(merged, incoming...)
	if len(merged) == 0 {
		return cty.ListValEmpty(elemType), nil
	}
	return cty.ListVal(merged), nil
}
