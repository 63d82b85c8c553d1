package addr

import (
	"fmt"
	"strings"
)

// Address is the structured identifier of one materialization unit. Resource
// addresses carry a name; relationship addresses carry the unit's position
// in its stack instead, since relationships have no name of their own.
type Address struct {
	Stack string
	Kind  string
	Name  string
	Index int // -1 for resource addresses.
}

// ForResource builds the address of a resource unit.
func ForResource(stack, kind, name string) Address {
	return Address{Stack: stack, Kind: kind, Name: name, Index: -1}
}

// ForRelationship builds the address of a relationship unit from its
// position in the stack's unit list.
func ForRelationship(stack, kind string, index int) Address {
	return Address{Stack: stack, Kind: kind, Index: index}
}

// IsRelationship reports whether the address identifies a relationship unit.
func (a Address) IsRelationship() bool {
	return a.Index >= 0
}

// String serializes the address into its canonical string representation.
func (a Address) String() string {
	var sb strings.Builder
	sb.WriteString(a.Stack)
	sb.WriteByte('/')
	sb.WriteString(a.Kind)
	if a.IsRelationship() {
		fmt.Fprintf(&sb, "[%d]", a.Index)
	} else {
		sb.WriteByte('.')
		sb.WriteString(a.Name)
	}
	return sb.String()
}

// Equal checks for equality between two addresses.
func (a Address) Equal(other Address) bool {
	return a == other
}
