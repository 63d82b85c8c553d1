package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func fixedSynthesizer(dir string, format Format, stdout *bytes.Buffer) *Synthesizer {
	s := NewSynthesizer(dir, format, stdout)
	s.NewID = func() string { return "deploy-0001" }
	s.Now = func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestSynthesizeJSON(t *testing.T) {
	dir := t.TempDir()
	s := fixedSynthesizer(dir, FormatJSON, nil)

	require.NoError(t, s.Apply(context.Background(), testPlan(t)))

	data, err := os.ReadFile(filepath.Join(dir, "orders.json"))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "deploy-0001", doc["deployment_id"])
	assert.Equal(t, "orders", doc["stack"])
	assert.Equal(t, "2026-08-25T12:00:00Z", doc["generated_at"])

	units, ok := doc["units"].([]any)
	require.True(t, ok)
	require.Len(t, units, 5)

	first := units[0].(map[string]any)
	assert.Equal(t, "orders/queue.orders-dlq", first["address"])
	assert.Equal(t, "resource", first["type"])
	assert.Equal(t, "queue", first["kind"])
	assert.Equal(t, "orders-dlq", first["name"])
	cfg := first["config"].(map[string]any)
	assert.Equal(t, float64(30), cfg["visibility_timeout"])

	second := units[1].(map[string]any)
	cfg = second["config"].(map[string]any)
	assert.Equal(t, float64(60), cfg["visibility_timeout"])
	assert.Equal(t, []any{"team:payments"}, cfg["tags"])

	dl := units[2].(map[string]any)
	assert.Equal(t, "relationship", dl["type"])
	assert.Equal(t, "dead_letter", dl["kind"])
	roles := dl["roles"].([]any)
	require.Len(t, roles, 2)
	assert.Equal(t, map[string]any{"role": "source", "resource": "orders"}, roles[0])
	attrs := dl["attrs"].(map[string]any)
	assert.Equal(t, float64(5), attrs["max_receives"])

	// Null fields never appear in the document.
	consumer := units[3].(map[string]any)
	cfg = consumer["config"].(map[string]any)
	_, hasDescription := cfg["description"]
	assert.False(t, hasDescription)
}

func TestSynthesizeYAML(t *testing.T) {
	dir := t.TempDir()
	s := fixedSynthesizer(dir, FormatYAML, nil)

	require.NoError(t, s.Apply(context.Background(), testPlan(t)))

	data, err := os.ReadFile(filepath.Join(dir, "orders.yaml"))
	require.NoError(t, err)

	var doc struct {
		DeploymentID string `yaml:"deployment_id"`
		Stack        string `yaml:"stack"`
		Units        []struct {
			Address string `yaml:"address"`
			Type    string `yaml:"type"`
		} `yaml:"units"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))

	assert.Equal(t, "deploy-0001", doc.DeploymentID)
	assert.Equal(t, "orders", doc.Stack)
	require.Len(t, doc.Units, 5)
	assert.Equal(t, "orders/grant[4]", doc.Units[4].Address)
	assert.Equal(t, "relationship", doc.Units[4].Type)
}

func TestSynthesizeToStdout(t *testing.T) {
	var buf bytes.Buffer
	s := fixedSynthesizer("", FormatJSON, &buf)

	require.NoError(t, s.Apply(context.Background(), testPlan(t)))
	assert.Contains(t, buf.String(), `"stack": "orders"`)
}

func TestSynthesizeDeterminism(t *testing.T) {
	ctx := context.Background()

	var first, second bytes.Buffer
	require.NoError(t, fixedSynthesizer("", FormatJSON, &first).Apply(ctx, testPlan(t)))
	require.NoError(t, fixedSynthesizer("", FormatJSON, &second).Apply(ctx, testPlan(t)))

	assert.Equal(t, first.String(), second.String())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.ErrorContains(t, err, "unknown output format")
}
