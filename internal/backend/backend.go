// Package backend defines the handoff contract between composed plans and
// whatever consumes them, along with the consumers the CLI ships: a
// structural validator, a deployment-document synthesizer, and an in-memory
// recorder that stands in for a provisioner.
package backend

import (
	"context"

	"github.com/vk/stackforge/internal/stack"
)

// Backend consumes closed plans. Implementations may assume the unit list
// is in materialization order: every resource unit precedes the
// relationship units that reference it, and no name appears twice.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Apply consumes one plan. Apply must not mutate the plan; several
	// backends may receive the same one.
	Apply(ctx context.Context, plan *stack.Plan) error
}
