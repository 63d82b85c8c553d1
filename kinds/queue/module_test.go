package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stackforge/internal/kind"
)

func queueDefinition(t *testing.T) kind.Definition {
	t.Helper()
	c := kind.NewCatalog()
	(&Module{}).Register(c)
	def, err := c.Lookup("queue")
	require.NoError(t, err)
	return def
}

func TestDefaults(t *testing.T) {
	cfg, err := kind.Resolve(queueDefinition(t), nil)
	require.NoError(t, err)

	var spec Spec
	require.NoError(t, kind.Decode(cfg, &spec))
	assert.Equal(t, int64(30), spec.VisibilityTimeout)
	assert.Equal(t, int64(345600), spec.MessageRetention)
	assert.Equal(t, int64(0), spec.ReceiveWait)
	assert.True(t, spec.SSEEnabled)
	assert.False(t, spec.FIFO)
}

func TestCapabilities(t *testing.T) {
	def := queueDefinition(t)
	assert.True(t, def.HasCap(kind.CapGrantable))
	assert.True(t, def.HasCap(kind.CapQueuelike))
	assert.True(t, def.HasCap(kind.CapSubscriber))
	assert.False(t, def.HasCap(kind.CapSubscribable))
}

func TestCheckRejectsOutOfRangeValues(t *testing.T) {
	testCases := []struct {
		name     string
		override kind.Override
		wantErr  string
	}{
		{
			name:     "visibility timeout too long",
			override: kind.Set("visibility_timeout", 50000),
			wantErr:  "visibility_timeout must be between 0 and 43200",
		},
		{
			name:     "retention too short",
			override: kind.Set("message_retention", 10),
			wantErr:  "message_retention must be between 60 and 1209600",
		},
		{
			name:     "receive wait too long",
			override: kind.Set("receive_wait", 21),
			wantErr:  "receive_wait must be between 0 and 20",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := kind.Resolve(queueDefinition(t), []kind.Override{tc.override})
			var invalidErr kind.InvalidConfigError
			require.ErrorAs(t, err, &invalidErr)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
