// Package relation defines relationship kinds: the named roles each kind
// binds, the attribute schema layered over role bindings, and the builtin
// kinds (grant, subscribe, dead_letter) every deployment understands.
//
// Role constraints are expressed as capabilities rather than concrete
// resource kinds, so a relationship kind stays usable as the kind catalog
// grows. Binding resolution itself lives in the stack package; this package
// only describes what a well-formed relationship looks like.
package relation
