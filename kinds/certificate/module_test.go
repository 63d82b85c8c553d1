package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/stackforge/internal/kind"
)

func certificateDefinition(t *testing.T) kind.Definition {
	t.Helper()
	c := kind.NewCatalog()
	(&Module{}).Register(c)
	def, err := c.Lookup("certificate")
	require.NoError(t, err)
	return def
}

func TestDefaults(t *testing.T) {
	cfg, err := kind.Resolve(certificateDefinition(t), []kind.Override{
		kind.Set("domain", "api.example.com"),
	})
	require.NoError(t, err)

	var spec Spec
	require.NoError(t, kind.Decode(cfg, &spec))
	assert.Equal(t, "api.example.com", spec.Domain)
	assert.Equal(t, "dns", spec.Validation)
	assert.Equal(t, "ec_p256", spec.KeyAlgorithm)
	assert.True(t, spec.TransparencyLogging)
}

func TestDomainIsRequired(t *testing.T) {
	_, err := kind.Resolve(certificateDefinition(t), nil)
	var missingErr kind.MissingFieldError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "domain", missingErr.Field)
}

func TestCheckRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name      string
		overrides []kind.Override
		wantErr   string
	}{
		{
			name:      "domain with trailing dot",
			overrides: []kind.Override{kind.Set("domain", "example.com.")},
			wantErr:   "not a valid domain name",
		},
		{
			name: "unknown validation method",
			overrides: []kind.Override{
				kind.Set("domain", "example.com"),
				kind.Set("validation", "carrier-pigeon"),
			},
			wantErr: "validation must be one of dns, email",
		},
		{
			name: "unknown key algorithm",
			overrides: []kind.Override{
				kind.Set("domain", "example.com"),
				kind.Set("key_algorithm", "rot13"),
			},
			wantErr: "key_algorithm must be one of ec_p256, ec_p384, rsa_2048",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := kind.Resolve(certificateDefinition(t), tc.overrides)
			var invalidErr kind.InvalidConfigError
			require.ErrorAs(t, err, &invalidErr)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}
