package stack

import (
	"github.com/vk/stackforge/internal/addr"
	"github.com/vk/stackforge/internal/kind"
	"github.com/vk/stackforge/internal/relation"
)

// UnitKind distinguishes between the kinds of materialization units in a plan.
type UnitKind int

const (
	// ResourceUnit represents a declared resource.
	ResourceUnit UnitKind = iota
	// RelationshipUnit represents a link between already-declared resources.
	RelationshipUnit
)

// BoundRole is one resolved end of a relationship: the role name and the
// handle of the resource filling it.
type BoundRole struct {
	Role   string
	Handle Handle
}

// Relationship is a fully resolved link between resources. Roles appear in
// the relationship definition's role order and carry handles, never names,
// so a relationship stays valid on its own once the stack closes.
type Relationship struct {
	Kind  relation.Kind
	Roles []BoundRole
	Attrs kind.Config
}

// Participant returns the handle bound to the named role.
func (r Relationship) Participant(role string) (Handle, bool) {
	for _, br := range r.Roles {
		if br.Role == role {
			return br.Handle, true
		}
	}
	return Handle{}, false
}

// Unit is a single entry in a plan's materialization list.
//
// Resource holds the handle for resource units and is nil for relationships.
// Relationship is the inverse.
type Unit struct {
	Kind UnitKind
	Addr addr.Address

	Resource     *Handle
	Relationship *Relationship
}

// Plan is the ordered output of a closed stack. The unit list is the
// materialization order: every resource precedes the relationships that
// reference it. Plans are immutable and safe to hand to several consumers.
type Plan struct {
	Stack string
	Units []Unit
}

// Resources returns the plan's resource handles in declaration order.
func (p *Plan) Resources() []Handle {
	var out []Handle
	for _, u := range p.Units {
		if u.Kind == ResourceUnit {
			out = append(out, *u.Resource)
		}
	}
	return out
}

// Relationships returns the plan's relationships in declaration order.
func (p *Plan) Relationships() []Relationship {
	var out []Relationship
	for _, u := range p.Units {
		if u.Kind == RelationshipUnit {
			out = append(out, *u.Relationship)
		}
	}
	return out
}
