package bucket

import (
	"fmt"
	"strings"

	"github.com/juju/collections/set"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stackforge/internal/kind"
)

// Module implements the kind.Registrar interface for this package.
type Module struct{}

// Spec is the typed view of a resolved bucket configuration.
type Spec struct {
	Versioning        bool   `forge:"versioning"`
	BlockPublicAccess bool   `forge:"block_public_access"`
	Encryption        string `forge:"encryption"`
}

var encryptionModes = set.NewStrings("aes256", "aws_kms")

func check(spec any) error {
	s := spec.(*Spec)
	if !encryptionModes.Contains(s.Encryption) {
		return fmt.Errorf("encryption must be one of %s, got %q",
			strings.Join(encryptionModes.SortedValues(), ", "), s.Encryption)
	}
	return nil
}

// Register installs the bucket kind into the catalog.
func (m *Module) Register(c *kind.Catalog) {
	c.Register(kind.Definition{
		Kind:        "bucket",
		Description: "Object storage bucket, private by default.",
		Schema: kind.NewSchema(
			kind.Field{Name: "versioning", Type: cty.Bool, Default: cty.True},
			kind.Field{Name: "block_public_access", Type: cty.Bool, Default: cty.True},
			kind.Field{Name: "encryption", Type: cty.String, Default: cty.StringVal("aes256")},
		),
		Caps:    set.NewStrings(kind.CapGrantable),
		NewSpec: func() any { return new(Spec) },
		Check:   check,
	})
}
