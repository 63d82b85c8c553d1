package stack

import (
	"github.com/vk/stackforge/internal/kind"
)

// Handle is the immutable result of declaring a resource: its unique name,
// its kind, and its fully resolved configuration. Handles are plain values;
// holding one proves the resource exists in its stack.
type Handle struct {
	Name   string
	Kind   kind.Kind
	Config kind.Config
}

// Binding names the resource that fills one role of a relationship.
// Resolution happens against the stack's registry at the time Relate runs,
// never earlier and never lazily.
type Binding struct {
	Role string
	Name string
}
