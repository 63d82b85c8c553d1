// Package manifest holds the unified, format-agnostic representation of a
// deployment manifest. Frontends (today the HCL loader) translate their
// syntax into this model; the composer replays the model through the stack
// core without ever touching the source format.
package manifest

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the complete parsed manifest: every stack, in source order.
type Model struct {
	Stacks []*StackDecl
}

// StackDecl is the format-agnostic representation of a `stack` block.
// Entries keep resource and relationship declarations interleaved exactly
// as they appear in the source; that order is what makes dangling-name
// detection meaningful.
type StackDecl struct {
	Name     string
	Entries  []Entry
	DefRange hcl.Range
}

// Entry is one declaration inside a stack block. Exactly one of Resource
// and Relationship is set.
type Entry struct {
	Resource     *ResourceDecl
	Relationship *RelationshipDecl
}

// ResourceDecl is the format-agnostic representation of a `resource` block.
type ResourceDecl struct {
	Kind      string
	Name      string
	Overrides []FieldValue
	// DeadLetter carries the optional nested dead_letter block a queue
	// declaration may attach to itself.
	DeadLetter *DeadLetterDecl
	DefRange   hcl.Range
}

// RelationshipDecl is the format-agnostic representation of a
// `relationship` block. Fields mixes role bindings and attributes; the
// composer splits them using the relationship definition, since only it
// knows which names are roles.
type RelationshipDecl struct {
	Kind     string
	Fields   []FieldValue
	DefRange hcl.Range
}

// DeadLetterDecl is the nested dead_letter block on a queue resource.
// MaxReceives is nil when the block leaves the limit to its default.
type DeadLetterDecl struct {
	Target      string
	MaxReceives *int
	DefRange    hcl.Range
}

// FieldValue is one evaluated attribute, in source order.
type FieldValue struct {
	Name  string
	Value cty.Value
	Range hcl.Range
}
