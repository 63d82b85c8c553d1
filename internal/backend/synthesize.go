package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/vk/stackforge/internal/ctxlog"
	"github.com/vk/stackforge/internal/kind"
	"github.com/vk/stackforge/internal/stack"
)

// Format selects the serialization of synthesized deployment documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json or yaml)", s)
	}
}

// Synthesizer renders each plan as a deployment document, one file per
// stack under Dir, or to Stdout when Dir is empty. Output is deterministic
// apart from the deployment id and timestamp, both injectable for tests.
type Synthesizer struct {
	Dir    string
	Format Format
	Stdout io.Writer

	NewID func() string
	Now   func() time.Time
}

// NewSynthesizer creates a synthesizer writing to dir, or to stdout when
// dir is empty.
func NewSynthesizer(dir string, format Format, stdout io.Writer) *Synthesizer {
	return &Synthesizer{
		Dir:    dir,
		Format: format,
		Stdout: stdout,
		NewID:  uuid.NewString,
		Now:    time.Now,
	}
}

// Name implements Backend.
func (s *Synthesizer) Name() string {
	return "synthesizer"
}

// planDoc is the serialized shape of one plan. The same template serves
// both formats.
type planDoc struct {
	DeploymentID string    `json:"deployment_id" yaml:"deployment_id"`
	Stack        string    `json:"stack" yaml:"stack"`
	GeneratedAt  time.Time `json:"generated_at" yaml:"generated_at"`
	Units        []unitDoc `json:"units" yaml:"units"`
}

type unitDoc struct {
	Address string         `json:"address" yaml:"address"`
	Type    string         `json:"type" yaml:"type"`
	Kind    string         `json:"kind" yaml:"kind"`
	Name    string         `json:"name,omitempty" yaml:"name,omitempty"`
	Config  map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
	Roles   []roleDoc      `json:"roles,omitempty" yaml:"roles,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

type roleDoc struct {
	Role     string `json:"role" yaml:"role"`
	Resource string `json:"resource" yaml:"resource"`
}

// Apply implements Backend.
func (s *Synthesizer) Apply(ctx context.Context, plan *stack.Plan) error {
	doc, err := s.buildDoc(plan)
	if err != nil {
		return fmt.Errorf("synthesize %q: %w", plan.Stack, err)
	}

	var data []byte
	switch s.Format {
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("synthesize %q: %w", plan.Stack, err)
	}

	logger := ctxlog.FromContext(ctx)
	if s.Dir == "" {
		if _, err := s.Stdout.Write(data); err != nil {
			return err
		}
		logger.Debug("Synthesized plan to stdout.", "stack", plan.Stack)
		return nil
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.Dir, fmt.Sprintf("%s.%s", plan.Stack, s.Format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logger.Info("Synthesized plan.", "stack", plan.Stack, "path", path)
	return nil
}

func (s *Synthesizer) buildDoc(plan *stack.Plan) (planDoc, error) {
	doc := planDoc{
		DeploymentID: s.NewID(),
		Stack:        plan.Stack,
		GeneratedAt:  s.Now().UTC(),
		Units:        make([]unitDoc, 0, len(plan.Units)),
	}

	for _, u := range plan.Units {
		switch u.Kind {
		case stack.ResourceUnit:
			cfg, err := configToNative(u.Resource.Config)
			if err != nil {
				return planDoc{}, fmt.Errorf("unit %s: %w", u.Addr, err)
			}
			doc.Units = append(doc.Units, unitDoc{
				Address: u.Addr.String(),
				Type:    "resource",
				Kind:    u.Resource.Kind.String(),
				Name:    u.Resource.Name,
				Config:  cfg,
			})
		case stack.RelationshipUnit:
			attrs, err := configToNative(u.Relationship.Attrs)
			if err != nil {
				return planDoc{}, fmt.Errorf("unit %s: %w", u.Addr, err)
			}
			roles := make([]roleDoc, 0, len(u.Relationship.Roles))
			for _, br := range u.Relationship.Roles {
				roles = append(roles, roleDoc{Role: br.Role, Resource: br.Handle.Name})
			}
			doc.Units = append(doc.Units, unitDoc{
				Address: u.Addr.String(),
				Type:    "relationship",
				Kind:    u.Relationship.Kind.String(),
				Roles:   roles,
				Attrs:   attrs,
			})
		}
	}
	return doc, nil
}

// configToNative flattens a resolved configuration into plain Go values.
// Null fields are dropped; a consumer reading the document should see only
// what will actually be set.
func configToNative(cfg kind.Config) (map[string]any, error) {
	out := make(map[string]any, cfg.Len())
	for _, name := range cfg.Fields() {
		v, _ := cfg.Get(name)
		if v.IsNull() {
			continue
		}
		n, err := valueToNative(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = n
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// valueToNative converts a cty value into the plain Go values the json and
// yaml encoders understand.
func valueToNative(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		return v.AsString(), nil
	case ty.Equals(cty.Bool):
		return v.True(), nil
	case ty.Equals(cty.Number):
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i, nil
		}
		f, _ := bf.Float64()
		return f, nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			n, err := valueToNative(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			n, err := valueToNative(ev)
			if err != nil {
				return nil, err
			}
			out[kv.AsString()] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot serialize value of type %s", ty.FriendlyName())
	}
}
