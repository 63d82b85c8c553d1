package table

import (
	"fmt"
	"strings"

	"github.com/juju/collections/set"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stackforge/internal/kind"
)

// Module implements the kind.Registrar interface for this package.
type Module struct{}

// Spec is the typed view of a resolved table configuration.
type Spec struct {
	HashKey             string `forge:"hash_key"`
	BillingMode         string `forge:"billing_mode"`
	SSEEnabled          bool   `forge:"sse_enabled"`
	PointInTimeRecovery bool   `forge:"point_in_time_recovery"`
	DeletionProtection  bool   `forge:"deletion_protection"`
	StreamEnabled       bool   `forge:"stream_enabled"`
}

var billingModes = set.NewStrings("pay_per_request", "provisioned")

func check(spec any) error {
	s := spec.(*Spec)
	if !billingModes.Contains(s.BillingMode) {
		return fmt.Errorf("billing_mode must be one of %s, got %q",
			strings.Join(billingModes.SortedValues(), ", "), s.BillingMode)
	}
	return nil
}

// Register installs the table kind into the catalog.
func (m *Module) Register(c *kind.Catalog) {
	c.Register(kind.Definition{
		Kind:        "table",
		Description: "Key-value table with on-demand capacity.",
		Schema: kind.NewSchema(
			kind.Field{Name: "hash_key", Type: cty.String, Required: true},
			kind.Field{Name: "billing_mode", Type: cty.String, Default: cty.StringVal("pay_per_request")},
			kind.Field{Name: "sse_enabled", Type: cty.Bool, Default: cty.True},
			kind.Field{Name: "point_in_time_recovery", Type: cty.Bool, Default: cty.True},
			kind.Field{Name: "deletion_protection", Type: cty.Bool, Default: cty.True},
			kind.Field{Name: "stream_enabled", Type: cty.Bool, Default: cty.False},
		),
		Caps:    set.NewStrings(kind.CapGrantable),
		NewSpec: func() any { return new(Spec) },
		Check:   check,
	})
}
