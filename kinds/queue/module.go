package queue

import (
	"fmt"

	"github.com/juju/collections/set"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stackforge/internal/kind"
)

// Module implements the kind.Registrar interface for this package.
type Module struct{}

// Spec is the typed view of a resolved queue configuration. Durations are
// seconds, matching the wire-level units of the queue service.
type Spec struct {
	VisibilityTimeout int64 `forge:"visibility_timeout"`
	MessageRetention  int64 `forge:"message_retention"`
	ReceiveWait       int64 `forge:"receive_wait"`
	SSEEnabled        bool  `forge:"sse_enabled"`
	FIFO              bool  `forge:"fifo"`
}

func check(spec any) error {
	s := spec.(*Spec)
	if s.VisibilityTimeout < 0 || s.VisibilityTimeout > 43200 {
		return fmt.Errorf("visibility_timeout must be between 0 and 43200 seconds, got %d", s.VisibilityTimeout)
	}
	if s.MessageRetention < 60 || s.MessageRetention > 1209600 {
		return fmt.Errorf("message_retention must be between 60 and 1209600 seconds, got %d", s.MessageRetention)
	}
	if s.ReceiveWait < 0 || s.ReceiveWait > 20 {
		return fmt.Errorf("receive_wait must be between 0 and 20 seconds, got %d", s.ReceiveWait)
	}
	return nil
}

// Register installs the queue kind into the catalog.
func (m *Module) Register(c *kind.Catalog) {
	c.Register(kind.Definition{
		Kind:        "queue",
		Description: "Message queue with at-least-once delivery.",
		Schema: kind.NewSchema(
			kind.Field{Name: "visibility_timeout", Type: cty.Number, Default: cty.NumberIntVal(30)},
			kind.Field{Name: "message_retention", Type: cty.Number, Default: cty.NumberIntVal(345600)},
			kind.Field{Name: "receive_wait", Type: cty.Number, Default: cty.NumberIntVal(0)},
			kind.Field{Name: "sse_enabled", Type: cty.Bool, Default: cty.True},
			kind.Field{Name: "fifo", Type: cty.Bool, Default: cty.False},
		),
		Caps:    set.NewStrings(kind.CapGrantable, kind.CapQueuelike, kind.CapSubscriber),
		NewSpec: func() any { return new(Spec) },
		Check:   check,
	})
}
