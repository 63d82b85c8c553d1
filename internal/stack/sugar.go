package stack

import (
	"context"

	"github.com/vk/stackforge/internal/kind"
	"github.com/vk/stackforge/internal/relation"
)

// Grant links a principal to a target with the given access level. An empty
// access level means the relationship's default (read).
func (s *Stack) Grant(ctx context.Context, principal, target Handle, access string) (Relationship, error) {
	var attrs []kind.Override
	if access != "" {
		attrs = append(attrs, kind.Set(relation.AttrAccess, access))
	}
	return s.Relate(ctx, relation.Grant, []Binding{
		{Role: relation.RolePrincipal, Name: principal.Name},
		{Role: relation.RoleTarget, Name: target.Name},
	}, attrs...)
}

// Subscribe wires a subscriber resource to a topic.
func (s *Stack) Subscribe(ctx context.Context, topic, subscriber Handle, attrs ...kind.Override) (Relationship, error) {
	return s.Relate(ctx, relation.Subscribe, []Binding{
		{Role: relation.RoleTopic, Name: topic.Name},
		{Role: relation.RoleSubscriber, Name: subscriber.Name},
	}, attrs...)
}

// DeadLetter routes messages the source queue gives up on to the target
// queue. A maxReceives of zero means the relationship's default.
func (s *Stack) DeadLetter(ctx context.Context, source, target Handle, maxReceives int) (Relationship, error) {
	var attrs []kind.Override
	if maxReceives != 0 {
		attrs = append(attrs, kind.Set(relation.AttrMaxReceives, maxReceives))
	}
	return s.Relate(ctx, relation.DeadLetter, []Binding{
		{Role: relation.RoleSource, Name: source.Name},
		{Role: relation.RoleTarget, Name: target.Name},
	}, attrs...)
}

// DeclareOption attaches follow-up wiring to a declaration. Options run
// against the fresh handle after the resource unit is committed, so any
// units they append land behind it.
type DeclareOption func(ctx context.Context, s *Stack, h Handle) error

// WithDeadLetter links the declared queue to the named dead-letter target.
// A maxReceives of zero means the relationship's default.
func WithDeadLetter(target string, maxReceives int) DeclareOption {
	return func(ctx context.Context, s *Stack, h Handle) error {
		var attrs []kind.Override
		if maxReceives != 0 {
			attrs = append(attrs, kind.Set(relation.AttrMaxReceives, maxReceives))
		}
		_, err := s.Relate(ctx, relation.DeadLetter, []Binding{
			{Role: relation.RoleSource, Name: h.Name},
			{Role: relation.RoleTarget, Name: target},
		}, attrs...)
		return err
	}
}

// DeclareWith declares a resource and applies each option in order. The
// declaration itself commits before any option runs; a failing option
// returns its error with the resource already declared.
func (s *Stack) DeclareWith(ctx context.Context, name string, k kind.Kind, overrides []kind.Override, opts ...DeclareOption) (Handle, error) {
	h, err := s.Declare(ctx, name, k, overrides...)
	if err != nil {
		return Handle{}, err
	}
	for _, opt := range opts {
		if err := opt(ctx, s, h); err != nil {
			return Handle{}, err
		}
	}
	return h, nil
}
