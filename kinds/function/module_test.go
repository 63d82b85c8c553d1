package function

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stackforge/internal/kind"
)

func functionDefinition(t *testing.T) kind.Definition {
	t.Helper()
	c := kind.NewCatalog()
	(&Module{}).Register(c)
	def, err := c.Lookup("function")
	require.NoError(t, err)
	return def
}

func TestDefaults(t *testing.T) {
	cfg, err := kind.Resolve(functionDefinition(t), []kind.Override{
		kind.Set("handler", "app.main"),
	})
	require.NoError(t, err)

	var spec Spec
	require.NoError(t, kind.Decode(cfg, &spec))
	assert.Equal(t, "app.main", spec.Handler)
	assert.Equal(t, "provided.al2023", spec.Runtime)
	assert.Equal(t, int64(128), spec.Memory)
	assert.Equal(t, int64(30), spec.Timeout)
	assert.Equal(t, "arm64", spec.Architecture)
	assert.Equal(t, int64(30), spec.LogRetention)
	assert.Empty(t, spec.Env)
	assert.Empty(t, spec.Policy)
}

func TestHandlerIsRequired(t *testing.T) {
	_, err := kind.Resolve(functionDefinition(t), nil)
	var missingErr kind.MissingFieldError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "handler", missingErr.Field)
}

func TestEnvAccumulatesAcrossOverrides(t *testing.T) {
	cfg, err := kind.Resolve(functionDefinition(t), []kind.Override{
		kind.Set("handler", "app.main"),
		kind.Set("env", []string{"MODE=consume"}),
		kind.Set("env", []string{"REGION=eu-west-1", "DEBUG=1"}),
	})
	require.NoError(t, err)

	var spec Spec
	require.NoError(t, kind.Decode(cfg, &spec))
	assert.Equal(t, []string{"MODE=consume", "REGION=eu-west-1", "DEBUG=1"}, spec.Env)
}

func TestCheckRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name     string
		override kind.Override
		wantErr  string
	}{
		{
			name:     "memory below minimum",
			override: kind.Set("memory", 64),
			wantErr:  "memory must be between 128 and 10240",
		},
		{
			name:     "zero timeout",
			override: kind.Set("timeout", 0),
			wantErr:  "timeout must be between 1 and 900",
		},
		{
			name:     "unknown architecture",
			override: kind.Set("architecture", "sparc"),
			wantErr:  `architecture must be one of arm64, x86_64, got "sparc"`,
		},
		{
			name:     "log retention of zero days",
			override: kind.Set("log_retention", 0),
			wantErr:  "log_retention must be at least 1 day",
		},
		{
			name:     "malformed env entry",
			override: kind.Set("env", []string{"BROKEN"}),
			wantErr:  `env entry "BROKEN" is not in KEY=VALUE form`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := kind.Resolve(functionDefinition(t), []kind.Override{
				kind.Set("handler", "app.main"),
				tc.override,
			})
			var invalidErr kind.InvalidConfigError
			require.ErrorAs(t, err, &invalidErr)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
