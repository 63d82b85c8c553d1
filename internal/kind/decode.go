package kind

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Decode copies a resolved configuration into a typed Go struct. Struct
// fields opt in with a `forge:"field_name"` tag; untagged and `forge:"-"`
// fields are left alone, as are fields whose configured value is null.
//
// Kind packages pair Decode with their Check hooks so that semantic
// validation runs against ordinary typed values instead of raw cty.
func Decode(cfg Config, target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("decode target must be a non-nil pointer, got %T", target)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("decode target must point at a struct, got %T", target)
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		tag := field.Tag.Get("forge")
		name := strings.Split(tag, ",")[0]
		if name == "" || name == "-" {
			continue
		}

		val, ok := cfg.Get(name)
		if !ok || val.IsNull() {
			continue
		}

		targetPtr := fieldVal.Addr().Interface()
		impliedType, err := gocty.ImpliedType(fieldVal.Interface())
		if err != nil {
			return fmt.Errorf("field %q: no cty equivalent for Go type %s: %w", name, field.Type, err)
		}
		converted, err := convert.Convert(val, impliedType)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		if err := gocty.FromCtyValue(converted, targetPtr); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
	}
	return nil
}
