package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"

	"github.com/vk/stackforge/internal/manifest"
)

// rootSchema admits only stack blocks at the top level of a manifest file.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "stack", LabelNames: []string{"name"}},
	},
}

// stackSchema admits the declaration blocks inside a stack. Decoding with
// an explicit schema keeps resource and relationship blocks in one list, in
// source order; struct-based decoding would split them by type and lose the
// interleaving.
var stackSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "resource", LabelNames: []string{"kind", "name"}},
		{Type: "relationship", LabelNames: []string{"kind"}},
	},
}

// resourceBlockSchema admits the nested blocks a resource body may carry.
var resourceBlockSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "dead_letter"},
	},
}

// deadLetterBlock is the HCL-specific shape of a nested dead_letter block.
type deadLetterBlock struct {
	Target      string `hcl:"target"`
	MaxReceives *int   `hcl:"max_receives,optional"`
}

// translateStack converts an HCL stack block into the agnostic model.
func (l *Loader) translateStack(block *hcl.Block) (*manifest.StackDecl, error) {
	name := block.Labels[0]
	content, diags := block.Body.Content(stackSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid stack %q: %w", name, diags)
	}

	decl := &manifest.StackDecl{Name: name, DefRange: block.DefRange}
	for _, inner := range content.Blocks {
		switch inner.Type {
		case "resource":
			r, err := l.translateResource(inner)
			if err != nil {
				return nil, fmt.Errorf("stack %q: %w", name, err)
			}
			decl.Entries = append(decl.Entries, manifest.Entry{Resource: r})
		case "relationship":
			rel, err := l.translateRelationship(inner)
			if err != nil {
				return nil, fmt.Errorf("stack %q: %w", name, err)
			}
			decl.Entries = append(decl.Entries, manifest.Entry{Relationship: rel})
		}
	}
	return decl, nil
}

// translateResource converts an HCL resource block into the agnostic model.
func (l *Loader) translateResource(block *hcl.Block) (*manifest.ResourceDecl, error) {
	kindLabel, nameLabel := block.Labels[0], block.Labels[1]
	content, remain, diags := block.Body.PartialContent(resourceBlockSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid resource %q %q: %w", kindLabel, nameLabel, diags)
	}

	decl := &manifest.ResourceDecl{Kind: kindLabel, Name: nameLabel, DefRange: block.DefRange}

	if len(content.Blocks) > 1 {
		return nil, fmt.Errorf("resource %q %q: at most one dead_letter block is allowed (second at %s)",
			kindLabel, nameLabel, content.Blocks[1].DefRange)
	}
	if len(content.Blocks) == 1 {
		dl, err := l.translateDeadLetter(content.Blocks[0])
		if err != nil {
			return nil, fmt.Errorf("resource %q %q: %w", kindLabel, nameLabel, err)
		}
		decl.DeadLetter = dl
	}

	fields, err := orderedFields(remain)
	if err != nil {
		return nil, fmt.Errorf("resource %q %q: %w", kindLabel, nameLabel, err)
	}
	decl.Overrides = fields
	return decl, nil
}

// translateRelationship converts an HCL relationship block into the agnostic
// model. Which attributes are role bindings and which are relationship
// attributes is decided later against the relationship definition.
func (l *Loader) translateRelationship(block *hcl.Block) (*manifest.RelationshipDecl, error) {
	fields, err := orderedFields(block.Body)
	if err != nil {
		return nil, fmt.Errorf("relationship %q: %w", block.Labels[0], err)
	}
	return &manifest.RelationshipDecl{Kind: block.Labels[0], Fields: fields, DefRange: block.DefRange}, nil
}

// translateDeadLetter converts a nested dead_letter block into the agnostic model.
func (l *Loader) translateDeadLetter(block *hcl.Block) (*manifest.DeadLetterDecl, error) {
	var raw deadLetterBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("invalid dead_letter block: %w", diags)
	}
	return &manifest.DeadLetterDecl{
		Target:      raw.Target,
		MaxReceives: raw.MaxReceives,
		DefRange:    block.DefRange,
	}, nil
}

// orderedFields evaluates every attribute of a body and returns them sorted
// by source position. Values must be literals; a manifest defines no
// variables or functions to reference.
func orderedFields(body hcl.Body) ([]manifest.FieldValue, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid attributes: %w", diags)
	}

	fields := make([]manifest.FieldValue, 0, len(attrs))
	for _, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		if valDiags.HasErrors() {
			return nil, fmt.Errorf("attribute %q must be a literal value: %w", attr.Name, valDiags)
		}
		fields = append(fields, manifest.FieldValue{Name: attr.Name, Value: val, Range: attr.Range})
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Range.Start.Byte < fields[j].Range.Start.Byte
	})
	return fields, nil
}
