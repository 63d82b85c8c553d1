package backend

import (
	"context"
	"testing"

	"github.com/juju/collections/set"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stackforge/internal/kind"
	"github.com/vk/stackforge/internal/relation"
	"github.com/vk/stackforge/internal/stack"
)

func testCatalog() *kind.Catalog {
	c := kind.NewCatalog()
	c.Register(kind.Definition{
		Kind: "queue",
		Schema: kind.NewSchema(
			kind.Field{Name: "visibility_timeout", Type: cty.Number, Default: cty.NumberIntVal(30)},
			kind.Field{Name: "tags", Type: cty.List(cty.String), Mode: kind.Accumulate},
		),
		Caps: set.NewStrings(kind.CapGrantable, kind.CapQueuelike, kind.CapSubscriber),
	})
	c.Register(kind.Definition{
		Kind: "function",
		Schema: kind.NewSchema(
			kind.Field{Name: "handler", Type: cty.String, Required: true},
			kind.Field{Name: "description", Type: cty.String},
		),
		Caps: set.NewStrings(kind.CapPrincipal, kind.CapSubscriber),
	})
	return c
}

// testPlan composes a small stack: two queues linked by a dead-letter
// relationship, and a function granted read access to the main queue.
func testPlan(t *testing.T) *stack.Plan {
	t.Helper()
	ctx := context.Background()

	plan, err := stack.Compose(ctx, "orders", testCatalog(), relation.Builtins(),
		func(ctx context.Context, s *stack.Stack) error {
			dlq, err := s.Declare(ctx, "orders-dlq", "queue")
			if err != nil {
				return err
			}
			orders, err := s.Declare(ctx, "orders", "queue",
				kind.Set("visibility_timeout", 60),
				kind.Set("tags", []string{"team:payments"}),
			)
			if err != nil {
				return err
			}
			if _, err := s.DeadLetter(ctx, orders, dlq, 5); err != nil {
				return err
			}
			consumer, err := s.Declare(ctx, "consumer", "function", kind.Set("handler", "consume.run"))
			if err != nil {
				return err
			}
			_, err = s.Grant(ctx, consumer, orders, relation.AccessRead)
			return err
		})
	require.NoError(t, err)
	return plan
}
