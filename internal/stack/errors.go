package stack

import (
	"fmt"

	"github.com/vk/stackforge/internal/kind"
	"github.com/vk/stackforge/internal/relation"
)

// DuplicateNameError means a resource was declared under a name that is
// already taken in the same stack. Names are unique per stack regardless
// of kind.
type DuplicateNameError struct {
	Name string
	Kind kind.Kind // kind of the resource already holding the name
}

func (e DuplicateNameError) Error() string {
	return fmt.Sprintf("resource name %q is already declared (as kind %q)", e.Name, e.Kind)
}

// UnresolvedNameError means a relationship or lookup referenced a name with
// no declaration before the point of use. Declaring the resource later does
// not help: references resolve against what exists at the time.
type UnresolvedNameError struct {
	Name string
}

func (e UnresolvedNameError) Error() string {
	return fmt.Sprintf("no resource named %q has been declared", e.Name)
}

// KindMismatchError means a name resolved to a resource that cannot satisfy
// the caller: either its kind differs from the expected one, or it lacks
// the capability a relationship role requires.
type KindMismatchError struct {
	Name       string
	Actual     kind.Kind
	Expected   kind.Kind // set when an exact kind was required
	Role       string    // set when a relationship role constraint failed
	Capability string
}

func (e KindMismatchError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("resource %q of kind %q cannot fill role %q (needs capability %q)",
			e.Name, e.Actual, e.Role, e.Capability)
	}
	return fmt.Sprintf("resource %q has kind %q, expected %q", e.Name, e.Actual, e.Expected)
}

// RelationshipArityError means the role bindings handed to Relate do not
// line up with the relationship's declared roles: wrong count, an unknown
// role, or the same role bound twice.
type RelationshipArityError struct {
	Relationship relation.Kind
	Reason       string
}

func (e RelationshipArityError) Error() string {
	return fmt.Sprintf("relationship %q: %s", e.Relationship, e.Reason)
}

// ContextClosedError means Declare, Relate or Close was called on a stack
// that has already been closed.
type ContextClosedError struct {
	Stack string
}

func (e ContextClosedError) Error() string {
	return fmt.Sprintf("stack %q is already closed", e.Stack)
}
