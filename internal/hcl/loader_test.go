package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPreservesDeclarationOrder(t *testing.T) {
	manifestSrc := `
stack "orders" {
  resource "queue" "orders-dlq" {}

  resource "queue" "orders" {
    visibility_timeout = 60

    dead_letter {
      target       = "orders-dlq"
      max_receives = 5
    }
  }

  relationship "grant" {
    principal = "api"
    target    = "orders"
    access    = "read-write"
  }

  resource "function" "api" {
    timeout = 10
    handler = "main.handler"
    memory  = 256
  }
}
`
	path := writeManifest(t, t.TempDir(), "orders.hcl", manifestSrc)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, model.Stacks, 1)

	decl := model.Stacks[0]
	assert.Equal(t, "orders", decl.Name)
	require.Len(t, decl.Entries, 4)

	// Blocks stay interleaved in source order, not grouped by type.
	require.NotNil(t, decl.Entries[0].Resource)
	require.NotNil(t, decl.Entries[1].Resource)
	require.NotNil(t, decl.Entries[2].Relationship)
	require.NotNil(t, decl.Entries[3].Resource)

	dlq := decl.Entries[0].Resource
	assert.Equal(t, "queue", dlq.Kind)
	assert.Equal(t, "orders-dlq", dlq.Name)
	assert.Empty(t, dlq.Overrides)
	assert.Nil(t, dlq.DeadLetter)

	orders := decl.Entries[1].Resource
	require.Len(t, orders.Overrides, 1)
	assert.Equal(t, "visibility_timeout", orders.Overrides[0].Name)
	assert.True(t, orders.Overrides[0].Value.RawEquals(cty.NumberIntVal(60)))
	require.NotNil(t, orders.DeadLetter)
	assert.Equal(t, "orders-dlq", orders.DeadLetter.Target)
	require.NotNil(t, orders.DeadLetter.MaxReceives)
	assert.Equal(t, 5, *orders.DeadLetter.MaxReceives)

	grant := decl.Entries[2].Relationship
	assert.Equal(t, "grant", grant.Kind)
	fieldNames := make([]string, 0, len(grant.Fields))
	for _, f := range grant.Fields {
		fieldNames = append(fieldNames, f.Name)
	}
	assert.Equal(t, []string{"principal", "target", "access"}, fieldNames)

	api := decl.Entries[3].Resource
	overrideNames := make([]string, 0, len(api.Overrides))
	for _, f := range api.Overrides {
		overrideNames = append(overrideNames, f.Name)
	}
	assert.Equal(t, []string{"timeout", "handler", "memory"}, overrideNames,
		"attributes must come back in source order")
}

func TestLoadOptionalDeadLetterLimit(t *testing.T) {
	manifestSrc := `
stack "orders" {
  resource "queue" "orders-dlq" {}
  resource "queue" "orders" {
    dead_letter {
      target = "orders-dlq"
    }
  }
}
`
	path := writeManifest(t, t.TempDir(), "orders.hcl", manifestSrc)

	model, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	dl := model.Stacks[0].Entries[1].Resource.DeadLetter
	require.NotNil(t, dl)
	assert.Equal(t, "orders-dlq", dl.Target)
	assert.Nil(t, dl.MaxReceives)
}

func TestLoadDirectoryInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "b.hcl", `stack "second" {}`)
	writeManifest(t, dir, "a.hcl", `stack "first" {}`)

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, model.Stacks, 2)
	assert.Equal(t, "first", model.Stacks[0].Name)
	assert.Equal(t, "second", model.Stacks[1].Name)
}

func TestLoadErrors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		manifestSrc string
		wantErr     string
	}{
		{
			name:        "syntax error",
			manifestSrc: `stack "orders" {`,
			wantErr:     "failed to parse manifest",
		},
		{
			name:        "unknown top-level block",
			manifestSrc: `widget "x" {}`,
			wantErr:     "failed to decode manifest",
		},
		{
			name: "unknown nested block in resource",
			manifestSrc: `
stack "orders" {
  resource "queue" "orders" {
    lifecycle {}
  }
}
`,
			wantErr: "invalid attributes",
		},
		{
			name: "non-literal attribute value",
			manifestSrc: `
stack "orders" {
  resource "queue" "orders" {
    visibility_timeout = var.timeout
  }
}
`,
			wantErr: "must be a literal value",
		},
		{
			name: "two dead_letter blocks",
			manifestSrc: `
stack "orders" {
  resource "queue" "orders" {
    dead_letter { target = "a" }
    dead_letter { target = "b" }
  }
}
`,
			wantErr: "at most one dead_letter block",
		},
		{
			name: "dead_letter without target",
			manifestSrc: `
stack "orders" {
  resource "queue" "orders" {
    dead_letter {}
  }
}
`,
			wantErr: "invalid dead_letter block",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), "manifest.hcl", tc.manifestSrc)
			_, err := NewLoader().Load(ctx, path)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoadDuplicateStackNames(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "a.hcl", `stack "orders" {}`)
	writeManifest(t, dir, "b.hcl", `stack "orders" {}`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, `stack "orders" declared twice`)
}

func TestLoadPathHandling(t *testing.T) {
	ctx := context.Background()

	t.Run("missing path", func(t *testing.T) {
		_, err := NewLoader().Load(ctx, filepath.Join(t.TempDir(), "nope.hcl"))
		assert.ErrorContains(t, err, "error accessing path")
	})

	t.Run("non-hcl file", func(t *testing.T) {
		path := writeManifest(t, t.TempDir(), "manifest.yaml", "stacks: []")
		_, err := NewLoader().Load(ctx, path)
		assert.ErrorContains(t, err, "not an .hcl file")
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := NewLoader().Load(ctx, t.TempDir())
		assert.ErrorContains(t, err, "no manifest files found")
	})
}
