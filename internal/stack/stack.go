package stack

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/vk/stackforge/internal/addr"
	"github.com/vk/stackforge/internal/ctxlog"
	"github.com/vk/stackforge/internal/kind"
	"github.com/vk/stackforge/internal/relation"
)

// nameRegex constrains stack and resource names so that every unit has a
// parseable canonical address.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Stack is an open composition context. It accepts declarations until
// Close, then becomes permanently read-only. Methods are safe to call
// concurrently, but unit order follows call order, so frontends that need
// deterministic plans drive each stack from one goroutine.
type Stack struct {
	name      string
	catalog   *kind.Catalog
	relations *relation.Registry

	mu     sync.Mutex
	closed bool
	reg    *registry
	units  []Unit
}

// New creates an open stack bound to the given kind catalog and
// relationship registry.
func New(name string, catalog *kind.Catalog, relations *relation.Registry) (*Stack, error) {
	if !nameRegex.MatchString(name) {
		return nil, fmt.Errorf("invalid stack name %q: use letters, digits, hyphens and underscores", name)
	}
	if catalog == nil || relations == nil {
		return nil, fmt.Errorf("stack %q needs a kind catalog and a relationship registry", name)
	}
	return &Stack{
		name:      name,
		catalog:   catalog,
		relations: relations,
		reg:       newRegistry(),
	}, nil
}

// Name returns the stack's name.
func (s *Stack) Name() string {
	return s.name
}

// Declare adds a resource to the stack: the kind's defaults are resolved
// with the given overrides, the name is claimed, and a resource unit is
// appended to the materialization list. The returned handle is the only way
// to hold a reference to the resource.
//
// The registry entry is made strictly before the unit is appended, so a
// name becomes referenceable at the same moment its unit exists.
func (s *Stack) Declare(ctx context.Context, name string, k kind.Kind, overrides ...kind.Override) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Handle{}, ContextClosedError{Stack: s.name}
	}
	if !nameRegex.MatchString(name) {
		return Handle{}, fmt.Errorf("invalid resource name %q: use letters, digits, hyphens and underscores", name)
	}

	def, err := s.catalog.Lookup(k)
	if err != nil {
		return Handle{}, err
	}
	cfg, err := kind.Resolve(def, overrides)
	if err != nil {
		return Handle{}, err
	}

	h := Handle{Name: name, Kind: k, Config: cfg}
	if err := s.reg.insert(h); err != nil {
		return Handle{}, err
	}
	s.units = append(s.units, Unit{
		Kind:     ResourceUnit,
		Addr:     addr.ForResource(s.name, k.String(), name),
		Resource: &h,
	})

	ctxlog.FromContext(ctx).Debug("Declared resource.",
		"stack", s.name, "kind", k.String(), "name", name)
	return h, nil
}

// Relate links already-declared resources. Every binding resolves against
// the registry in role order; arity, capability and attribute validation all
// run before anything is recorded, so a failed Relate leaves the stack
// exactly as it was.
func (s *Stack) Relate(ctx context.Context, k relation.Kind, bindings []Binding, attrs ...kind.Override) (Relationship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Relationship{}, ContextClosedError{Stack: s.name}
	}

	def, err := s.relations.Lookup(k)
	if err != nil {
		return Relationship{}, err
	}

	if len(bindings) != len(def.Roles) {
		return Relationship{}, RelationshipArityError{
			Relationship: k,
			Reason:       fmt.Sprintf("expects %d role bindings, got %d", len(def.Roles), len(bindings)),
		}
	}
	byRole := make(map[string]Binding, len(bindings))
	for _, b := range bindings {
		if _, ok := def.Role(b.Role); !ok {
			return Relationship{}, RelationshipArityError{
				Relationship: k,
				Reason:       fmt.Sprintf("unknown role %q", b.Role),
			}
		}
		if _, dup := byRole[b.Role]; dup {
			return Relationship{}, RelationshipArityError{
				Relationship: k,
				Reason:       fmt.Sprintf("role %q bound twice", b.Role),
			}
		}
		byRole[b.Role] = b
	}

	roles := make([]BoundRole, 0, len(def.Roles))
	participants := make([]relation.Participant, 0, len(def.Roles))
	for _, role := range def.Roles {
		b := byRole[role.Name]
		h, err := s.reg.lookup(b.Name, kind.Any)
		if err != nil {
			return Relationship{}, err
		}
		if role.Capability != "" {
			kindDef, err := s.catalog.Lookup(h.Kind)
			if err != nil {
				return Relationship{}, err
			}
			if !kindDef.HasCap(role.Capability) {
				return Relationship{}, KindMismatchError{
					Name:       h.Name,
					Actual:     h.Kind,
					Role:       role.Name,
					Capability: role.Capability,
				}
			}
		}
		roles = append(roles, BoundRole{Role: role.Name, Handle: h})
		participants = append(participants, relation.Participant{Role: role.Name, Name: h.Name, Kind: h.Kind})
	}

	attrCfg, err := def.ResolveAttrs(attrs)
	if err != nil {
		return Relationship{}, err
	}
	if def.Validate != nil {
		if err := def.Validate(attrCfg, participants); err != nil {
			return Relationship{}, fmt.Errorf("invalid %q relationship: %w", k, err)
		}
	}

	rel := Relationship{Kind: k, Roles: roles, Attrs: attrCfg}
	s.units = append(s.units, Unit{
		Kind:         RelationshipUnit,
		Addr:         addr.ForRelationship(s.name, k.String(), len(s.units)),
		Relationship: &rel,
	})

	ctxlog.FromContext(ctx).Debug("Added relationship.",
		"stack", s.name, "kind", k.String(), "roles", len(roles))
	return rel, nil
}

// Lookup resolves a declared name. Pass kind.Any to accept any kind, or a
// concrete kind to additionally assert what the name must be.
func (s *Stack) Lookup(name string, expect kind.Kind) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.lookup(name, expect)
}

// Names returns the declared resource names in declaration order.
func (s *Stack) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.orderedNames()
}

// Close seals the stack and returns its plan. Closing happens exactly once;
// any further Declare, Relate or Close fails with ContextClosedError.
func (s *Stack) Close(ctx context.Context) (*Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ContextClosedError{Stack: s.name}
	}
	s.closed = true

	units := make([]Unit, len(s.units))
	copy(units, s.units)
	plan := &Plan{Stack: s.name, Units: units}

	ctxlog.FromContext(ctx).Debug("Closed stack.",
		"stack", s.name, "units", len(units))
	return plan, nil
}

// Compose runs one declaration block against a fresh stack and closes it on
// success. It is the recommended entry point for building a stack in Go.
func Compose(ctx context.Context, name string, catalog *kind.Catalog, relations *relation.Registry, fn func(ctx context.Context, s *Stack) error) (*Plan, error) {
	s, err := New(name, catalog, relations)
	if err != nil {
		return nil, err
	}
	if err := fn(ctx, s); err != nil {
		return nil, fmt.Errorf("stack %q: %w", name, err)
	}
	return s.Close(ctx)
}
