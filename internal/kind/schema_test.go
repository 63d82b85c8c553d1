package kind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestSchemaLookup(t *testing.T) {
	s := NewSchema(
		Field{Name: "a", Type: cty.String},
		Field{Name: "b", Type: cty.Number, Default: cty.NumberIntVal(1)},
	)

	require.Equal(t, 2, s.Len())

	f, ok := s.Field("b")
	require.True(t, ok)
	assert.Equal(t, "b", f.Name)
	assert.True(t, f.Default.RawEquals(cty.NumberIntVal(1)))

	_, ok = s.Field("missing")
	assert.False(t, ok)

	names := make([]string, 0, s.Len())
	for _, f := range s.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestNewSchemaRejectsBadFields(t *testing.T) {
	testCases := []struct {
		name   string
		fields []Field
	}{
		{
			name:   "empty field name",
			fields: []Field{{Name: "", Type: cty.String}},
		},
		{
			name: "duplicate field name",
			fields: []Field{
				{Name: "a", Type: cty.String},
				{Name: "a", Type: cty.Number},
			},
		},
		{
			name:   "missing type",
			fields: []Field{{Name: "a"}},
		},
		{
			name:   "accumulate on non-list type",
			fields: []Field{{Name: "a", Type: cty.String, Mode: Accumulate}},
		},
		{
			name:   "accumulate marked required",
			fields: []Field{{Name: "a", Type: cty.List(cty.String), Mode: Accumulate, Required: true}},
		},
		{
			name:   "required with default",
			fields: []Field{{Name: "a", Type: cty.String, Required: true, Default: cty.StringVal("x")}},
		},
		{
			name:   "default not convertible to type",
			fields: []Field{{Name: "a", Type: cty.Number, Default: cty.StringVal("nope")}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, func() { NewSchema(tc.fields...) })
		})
	}
}
