package addr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress_String(t *testing.T) {
	testCases := []struct {
		name        string
		addr        Address
		expectedStr string
	}{
		{
			name:        "resource",
			addr:        ForResource("orders", "queue", "orders-dlq"),
			expectedStr: "orders/queue.orders-dlq",
		},
		{
			name:        "relationship",
			addr:        ForRelationship("orders", "dead_letter", 2),
			expectedStr: "orders/dead_letter[2]",
		},
		{
			name:        "relationship at index zero",
			addr:        ForRelationship("media", "grant", 0),
			expectedStr: "media/grant[0]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStr, tc.addr.String())
		})
	}
}

func TestAddress_RoundTrip(t *testing.T) {
	rawAddrs := []string{
		"orders/queue.orders-dlq",
		"orders/dead_letter[2]",
		"media/grant[0]",
		"media/function.thumbnailer",
	}

	for _, raw := range rawAddrs {
		t.Run(raw, func(t *testing.T) {
			a, err := Parse(raw)
			require.NoError(t, err)

			roundTrip := a.String()
			assert.Equal(t, raw, roundTrip)

			again, err := Parse(roundTrip)
			require.NoError(t, err)
			assert.True(t, a.Equal(again))
		})
	}
}

func TestAddress_Kind(t *testing.T) {
	resource := ForResource("orders", "queue", "orders")
	assert.False(t, resource.IsRelationship())

	rel := ForRelationship("orders", "grant", 0)
	assert.True(t, rel.IsRelationship())

	assert.False(t, resource.Equal(rel))
	assert.True(t, resource.Equal(ForResource("orders", "queue", "orders")))
}
