package backend

import (
	"context"
	"fmt"

	"github.com/juju/collections/set"

	"github.com/vk/stackforge/internal/ctxlog"
	"github.com/vk/stackforge/internal/kind"
	"github.com/vk/stackforge/internal/relation"
	"github.com/vk/stackforge/internal/stack"
)

// Validator re-checks the structural contract a plan promises its
// consumers, including that every resolved configuration still conforms to
// its registered schema. The composition core already enforces all of it,
// so a failure here means a bug, not bad user input; dry runs wire the
// validator in as their only backend.
type Validator struct {
	catalog   *kind.Catalog
	relations *relation.Registry
}

// NewValidator creates a plan validator checking against the given kind
// catalog and relationship registry.
func NewValidator(catalog *kind.Catalog, relations *relation.Registry) *Validator {
	return &Validator{catalog: catalog, relations: relations}
}

// Name implements Backend.
func (v *Validator) Name() string {
	return "validator"
}

// Apply implements Backend.
func (v *Validator) Apply(ctx context.Context, plan *stack.Plan) error {
	if plan == nil {
		return fmt.Errorf("nil plan")
	}
	if plan.Stack == "" {
		return fmt.Errorf("plan has no stack name")
	}

	addrs := set.NewStrings()
	resources := set.NewStrings()
	for i, u := range plan.Units {
		a := u.Addr.String()
		if addrs.Contains(a) {
			return fmt.Errorf("plan %q: duplicate unit address %s", plan.Stack, a)
		}
		addrs.Add(a)
		if u.Addr.Stack != plan.Stack {
			return fmt.Errorf("plan %q: unit %s belongs to another stack", plan.Stack, a)
		}

		switch u.Kind {
		case stack.ResourceUnit:
			if u.Resource == nil || u.Relationship != nil {
				return fmt.Errorf("plan %q: unit %s payload does not match its type", plan.Stack, a)
			}
			if u.Resource.Kind.String() != u.Addr.Kind || u.Resource.Name != u.Addr.Name {
				return fmt.Errorf("plan %q: unit %s does not describe its own resource", plan.Stack, a)
			}
			if resources.Contains(u.Resource.Name) {
				return fmt.Errorf("plan %q: resource name %q appears twice", plan.Stack, u.Resource.Name)
			}
			resources.Add(u.Resource.Name)

			def, err := v.catalog.Lookup(u.Resource.Kind)
			if err != nil {
				return fmt.Errorf("plan %q: unit %s: %w", plan.Stack, a, err)
			}
			if err := conforms(u.Resource.Config, def.Schema); err != nil {
				return fmt.Errorf("plan %q: unit %s: %w", plan.Stack, a, err)
			}
		case stack.RelationshipUnit:
			if u.Relationship == nil || u.Resource != nil {
				return fmt.Errorf("plan %q: unit %s payload does not match its type", plan.Stack, a)
			}
			if u.Relationship.Kind.String() != u.Addr.Kind {
				return fmt.Errorf("plan %q: unit %s does not describe its own relationship", plan.Stack, a)
			}
			if u.Addr.Index != i {
				return fmt.Errorf("plan %q: relationship %s recorded at position %d", plan.Stack, a, i)
			}
			for _, br := range u.Relationship.Roles {
				if !resources.Contains(br.Handle.Name) {
					return fmt.Errorf("plan %q: relationship %s references %q before its resource unit",
						plan.Stack, a, br.Handle.Name)
				}
			}

			def, err := v.relations.Lookup(u.Relationship.Kind)
			if err != nil {
				return fmt.Errorf("plan %q: unit %s: %w", plan.Stack, a, err)
			}
			if len(u.Relationship.Roles) != len(def.Roles) {
				return fmt.Errorf("plan %q: relationship %s binds %d roles, the definition declares %d",
					plan.Stack, a, len(u.Relationship.Roles), len(def.Roles))
			}
			for j, br := range u.Relationship.Roles {
				if br.Role != def.Roles[j].Name {
					return fmt.Errorf("plan %q: relationship %s binds role %q where the definition declares %q",
						plan.Stack, a, br.Role, def.Roles[j].Name)
				}
			}
			if err := conforms(u.Relationship.Attrs, def.Attrs); err != nil {
				return fmt.Errorf("plan %q: unit %s: %w", plan.Stack, a, err)
			}
		default:
			return fmt.Errorf("plan %q: unit %s has unknown type %d", plan.Stack, a, u.Kind)
		}
	}

	ctxlog.FromContext(ctx).Debug("Plan validated.", "stack", plan.Stack, "units", len(plan.Units))
	return nil
}

// conforms checks that a resolved config still matches its schema: the same
// fields in schema order, each value carrying the field's type.
func conforms(cfg kind.Config, schema kind.Schema) error {
	if cfg.Len() != schema.Len() {
		return fmt.Errorf("config carries %d fields, the schema declares %d", cfg.Len(), schema.Len())
	}
	names := cfg.Fields()
	for i, f := range schema.Fields() {
		if names[i] != f.Name {
			return fmt.Errorf("config field %q where the schema declares %q", names[i], f.Name)
		}
		val, _ := cfg.Get(f.Name)
		if !val.Type().Equals(f.Type) {
			return fmt.Errorf("field %q holds %s, the schema declares %s",
				f.Name, val.Type().FriendlyName(), f.Type.FriendlyName())
		}
	}
	return nil
}
