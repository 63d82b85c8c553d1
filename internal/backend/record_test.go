package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderAppliesInOrder(t *testing.T) {
	ctx := context.Background()
	r := NewRecorder()

	require.NoError(t, r.Apply(ctx, testPlan(t)))

	assert.Equal(t, []string{
		"orders/queue.orders-dlq",
		"orders/queue.orders",
		"orders/dead_letter[2]",
		"orders/function.consumer",
		"orders/grant[4]",
	}, r.Applied())

	// A second plan appends after the first.
	require.NoError(t, r.Apply(ctx, testPlan(t)))
	assert.Len(t, r.Applied(), 10)
}
