package kind

import (
	"github.com/juju/collections/set"
)

// Kind identifies a resource kind, for example "queue" or "function".
type Kind string

// Any matches every kind in lookups that take an expected kind.
const Any Kind = ""

func (k Kind) String() string {
	return string(k)
}

// Capability tags attached to kind definitions. Relationship roles constrain
// their participants by capability rather than by naming concrete kinds, so
// a new kind picks up grant/subscribe support by declaring the right tags.
const (
	// CapPrincipal marks kinds that can act as the principal of a grant.
	CapPrincipal = "principal"
	// CapGrantable marks kinds access can be granted to.
	CapGrantable = "grantable"
	// CapSubscribable marks kinds that can fan out messages to subscribers.
	CapSubscribable = "subscribable"
	// CapSubscriber marks kinds that can receive messages from a subscribable kind.
	CapSubscriber = "subscriber"
	// CapQueuelike marks kinds that can take part in dead-letter links.
	CapQueuelike = "queuelike"
)

// Definition describes one registered resource kind: its identity, its field
// schema with secure defaults, the capabilities relationship roles match on,
// and optional typed validation run after every resolve.
//
// NewSpec and Check mirror each other: NewSpec returns a pointer to the
// kind's typed spec struct, Check receives that struct populated from the
// resolved configuration and rejects semantically invalid values.
type Definition struct {
	Kind        Kind
	Description string
	Schema      Schema
	Caps        set.Strings

	NewSpec func() any
	Check   func(spec any) error
}

// HasCap reports whether the definition carries the given capability tag.
func (d Definition) HasCap(capability string) bool {
	return d.Caps != nil && d.Caps.Contains(capability)
}

// Registrar is implemented by kind packages. Each package installs its
// definition into the catalog at bootstrap.
type Registrar interface {
	Register(c *Catalog)
}
