package relation

import (
	"github.com/vk/stackforge/internal/kind"
)

// Kind names a relationship kind, such as "grant" or "dead_letter".
type Kind string

func (k Kind) String() string {
	return string(k)
}

// Role is one end of a relationship. A binding for the role must name a
// resource whose kind carries the role's capability; an empty capability
// accepts any kind.
type Role struct {
	Name       string
	Capability string
}

// Participant is the resolved view of one role binding as seen by Validate
// hooks: the role it fills plus the name and kind of the bound resource.
type Participant struct {
	Role string
	Name string
	Kind kind.Kind
}

// Definition describes one relationship kind: its roles in binding order,
// its attribute schema, and an optional semantic validation hook.
type Definition struct {
	Kind        Kind
	Description string
	Roles       []Role
	Attrs       kind.Schema

	// Validate, when set, runs after every role binding has resolved and
	// the attributes have been laid over their defaults. It receives the
	// final attribute values and one participant per role, in role order.
	Validate func(attrs kind.Config, participants []Participant) error
}

// Role returns the named role and whether the definition declares it.
func (d Definition) Role(name string) (Role, bool) {
	for _, r := range d.Roles {
		if r.Name == name {
			return r, true
		}
	}
	return Role{}, false
}

// RoleNames returns the role names in binding order.
func (d Definition) RoleNames() []string {
	names := make([]string, len(d.Roles))
	for i, r := range d.Roles {
		names[i] = r.Name
	}
	return names
}

// ResolveAttrs resolves attribute overrides against the definition's
// attribute schema. Attributes share the kind resolver, so the same
// determinism and error contract apply to them as to resource fields.
func (d Definition) ResolveAttrs(overrides []kind.Override) (kind.Config, error) {
	return kind.Resolve(kind.Definition{Kind: kind.Kind(d.Kind), Schema: d.Attrs}, overrides)
}
