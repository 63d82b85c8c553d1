package topic

import (
	"github.com/juju/collections/set"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stackforge/internal/kind"
)

// Module implements the kind.Registrar interface for this package.
type Module struct{}

// Spec is the typed view of a resolved topic configuration.
type Spec struct {
	SSEEnabled bool `forge:"sse_enabled"`
	FIFO       bool `forge:"fifo"`
}

// Register installs the topic kind into the catalog.
func (m *Module) Register(c *kind.Catalog) {
	c.Register(kind.Definition{
		Kind:        "topic",
		Description: "Pub/sub topic fanning messages out to subscribers.",
		Schema: kind.NewSchema(
			kind.Field{Name: "sse_enabled", Type: cty.Bool, Default: cty.True},
			kind.Field{Name: "fifo", Type: cty.Bool, Default: cty.False},
		),
		Caps:    set.NewStrings(kind.CapGrantable, kind.CapSubscribable),
		NewSpec: func() any { return new(Spec) },
	})
}
