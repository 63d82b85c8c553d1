package certificate

import (
	"fmt"
	"strings"

	"github.com/juju/collections/set"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stackforge/internal/kind"
)

// Module implements the kind.Registrar interface for this package.
type Module struct{}

// Spec is the typed view of a resolved certificate configuration.
type Spec struct {
	Domain              string `forge:"domain"`
	Validation          string `forge:"validation"`
	KeyAlgorithm        string `forge:"key_algorithm"`
	TransparencyLogging bool   `forge:"transparency_logging"`
}

var (
	validations   = set.NewStrings("dns", "email")
	keyAlgorithms = set.NewStrings("rsa_2048", "ec_p256", "ec_p384")
)

func check(spec any) error {
	s := spec.(*Spec)
	if s.Domain == "" || strings.HasPrefix(s.Domain, ".") || strings.HasSuffix(s.Domain, ".") {
		return fmt.Errorf("domain %q is not a valid domain name", s.Domain)
	}
	if !validations.Contains(s.Validation) {
		return fmt.Errorf("validation must be one of %s, got %q",
			strings.Join(validations.SortedValues(), ", "), s.Validation)
	}
	if !keyAlgorithms.Contains(s.KeyAlgorithm) {
		return fmt.Errorf("key_algorithm must be one of %s, got %q",
			strings.Join(keyAlgorithms.SortedValues(), ", "), s.KeyAlgorithm)
	}
	return nil
}

// Register installs the certificate kind into the catalog.
func (m *Module) Register(c *kind.Catalog) {
	c.Register(kind.Definition{
		Kind:        "certificate",
		Description: "TLS certificate with managed validation.",
		Schema: kind.NewSchema(
			kind.Field{Name: "domain", Type: cty.String, Required: true},
			kind.Field{Name: "validation", Type: cty.String, Default: cty.StringVal("dns")},
			kind.Field{Name: "key_algorithm", Type: cty.String, Default: cty.StringVal("ec_p256")},
			kind.Field{Name: "transparency_logging", Type: cty.Bool, Default: cty.True},
		),
		NewSpec: func() any { return new(Spec) },
		Check:   check,
	})
}
