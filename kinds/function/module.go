package function

import (
	"fmt"
	"strings"

	"github.com/juju/collections/set"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/stackforge/internal/kind"
)

// Module implements the kind.Registrar interface for this package.
type Module struct{}

// Spec is the typed view of a resolved function configuration. Env entries
// are "KEY=VALUE" pairs; Policy entries are serialized policy statements
// attached to the function's execution role.
type Spec struct {
	Handler      string   `forge:"handler"`
	Runtime      string   `forge:"runtime"`
	Memory       int64    `forge:"memory"`
	Timeout      int64    `forge:"timeout"`
	Architecture string   `forge:"architecture"`
	LogRetention int64    `forge:"log_retention"`
	Env          []string `forge:"env"`
	Policy       []string `forge:"policy"`
}

var architectures = set.NewStrings("arm64", "x86_64")

func check(spec any) error {
	s := spec.(*Spec)
	if s.Memory < 128 || s.Memory > 10240 {
		return fmt.Errorf("memory must be between 128 and 10240 MB, got %d", s.Memory)
	}
	if s.Timeout < 1 || s.Timeout > 900 {
		return fmt.Errorf("timeout must be between 1 and 900 seconds, got %d", s.Timeout)
	}
	if !architectures.Contains(s.Architecture) {
		return fmt.Errorf("architecture must be one of %s, got %q",
			strings.Join(architectures.SortedValues(), ", "), s.Architecture)
	}
	if s.LogRetention < 1 {
		return fmt.Errorf("log_retention must be at least 1 day, got %d", s.LogRetention)
	}
	for _, entry := range s.Env {
		key, _, found := strings.Cut(entry, "=")
		if !found || key == "" {
			return fmt.Errorf("env entry %q is not in KEY=VALUE form", entry)
		}
	}
	return nil
}

// Register installs the function kind into the catalog.
func (m *Module) Register(c *kind.Catalog) {
	c.Register(kind.Definition{
		Kind:        "function",
		Description: "Serverless function invoked by events.",
		Schema: kind.NewSchema(
			kind.Field{Name: "handler", Type: cty.String, Required: true},
			kind.Field{Name: "runtime", Type: cty.String, Default: cty.StringVal("provided.al2023")},
			kind.Field{Name: "memory", Type: cty.Number, Default: cty.NumberIntVal(128)},
			kind.Field{Name: "timeout", Type: cty.Number, Default: cty.NumberIntVal(30)},
			kind.Field{Name: "architecture", Type: cty.String, Default: cty.StringVal("arm64")},
			kind.Field{Name: "log_retention", Type: cty.Number, Default: cty.NumberIntVal(30)},
			kind.Field{Name: "env", Type: cty.List(cty.String), Mode: kind.Accumulate},
			kind.Field{Name: "policy", Type: cty.List(cty.String), Mode: kind.Accumulate},
		),
		Caps:    set.NewStrings(kind.CapPrincipal, kind.CapSubscriber),
		NewSpec: func() any { return new(Spec) },
		Check:   check,
	})
}
