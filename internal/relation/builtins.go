package relation

import (
	"fmt"
	"strings"

	"github.com/juju/collections/set"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stackforge/internal/kind"
)

// Builtin relationship kinds.
const (
	// Grant allows a principal resource to act on a grantable one.
	Grant Kind = "grant"
	// Subscribe wires a subscriber resource to a subscribable one.
	Subscribe Kind = "subscribe"
	// DeadLetter routes messages a queue gives up on to another queue.
	DeadLetter Kind = "dead_letter"
)

// Role names used by the builtin relationship kinds.
const (
	RolePrincipal  = "principal"
	RoleTarget     = "target"
	RoleTopic      = "topic"
	RoleSubscriber = "subscriber"
	RoleSource     = "source"
)

// Attribute names used by the builtin relationship kinds.
const (
	AttrAccess      = "access"
	AttrRawDelivery = "raw_delivery"
	AttrFilter      = "filter"
	AttrMaxReceives = "max_receives"
)

// Access levels accepted by the grant relationship.
const (
	AccessRead      = "read"
	AccessWrite     = "write"
	AccessReadWrite = "read-write"
)

var accessLevels = set.NewStrings(AccessRead, AccessWrite, AccessReadWrite)

// Builtins returns a registry populated with the relationship kinds every
// deployment understands.
func Builtins() *Registry {
	r := NewRegistry()
	r.Register(grantDefinition())
	r.Register(subscribeDefinition())
	r.Register(deadLetterDefinition())
	return r
}

func grantDefinition() Definition {
	return Definition{
		Kind:        Grant,
		Description: "Allows a principal to act on a target resource with the given access level.",
		Roles: []Role{
			{Name: RolePrincipal, Capability: kind.CapPrincipal},
			{Name: RoleTarget, Capability: kind.CapGrantable},
		},
		Attrs: kind.NewSchema(
			kind.Field{Name: AttrAccess, Type: cty.String, Default: cty.StringVal(AccessRead)},
		),
		Validate: func(attrs kind.Config, _ []Participant) error {
			var ga struct {
				Access string `forge:"access"`
			}
			if err := kind.Decode(attrs, &ga); err != nil {
				return err
			}
			if !accessLevels.Contains(ga.Access) {
				return fmt.Errorf("access must be one of %s, got %q",
					strings.Join(accessLevels.SortedValues(), ", "), ga.Access)
			}
			return nil
		},
	}
}

func subscribeDefinition() Definition {
	return Definition{
		Kind:        Subscribe,
		Description: "Delivers messages published to a topic to a subscriber resource.",
		Roles: []Role{
			{Name: RoleTopic, Capability: kind.CapSubscribable},
			{Name: RoleSubscriber, Capability: kind.CapSubscriber},
		},
		Attrs: kind.NewSchema(
			kind.Field{Name: AttrRawDelivery, Type: cty.Bool, Default: cty.False},
			kind.Field{Name: AttrFilter, Type: cty.String, Default: cty.StringVal("")},
		),
	}
}

func deadLetterDefinition() Definition {
	return Definition{
		Kind:        DeadLetter,
		Description: "Routes messages that exceed the receive limit on one queue to another.",
		Roles: []Role{
			{Name: RoleSource, Capability: kind.CapQueuelike},
			{Name: RoleTarget, Capability: kind.CapQueuelike},
		},
		Attrs: kind.NewSchema(
			kind.Field{Name: AttrMaxReceives, Type: cty.Number, Default: cty.NumberIntVal(10)},
		),
		Validate: func(attrs kind.Config, participants []Participant) error {
			var da struct {
				MaxReceives int64 `forge:"max_receives"`
			}
			if err := kind.Decode(attrs, &da); err != nil {
				return err
			}
			if da.MaxReceives < 1 {
				return fmt.Errorf("max_receives must be at least 1, got %d", da.MaxReceives)
			}
			if len(participants) == 2 && participants[0].Name == participants[1].Name {
				return fmt.Errorf("queue %q cannot be its own dead-letter target", participants[0].Name)
			}
			return nil
		},
	}
}
