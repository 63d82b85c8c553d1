package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/stackforge/internal/ctxlog"
	"github.com/vk/stackforge/internal/fsutil"
	"github.com/vk/stackforge/internal/manifest"
)

// Loader is the HCL-specific implementation of the manifest.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire HCL manifest loading process: discover files
// under the given paths, parse them, and translate every stack block into
// the format-agnostic model. Stacks appear in file order, files in lexical
// order, so the same tree always loads into the same model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*manifest.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := l.findManifestFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no manifest files found under %v", paths)
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &manifest.Model{}
	seen := make(map[string]hcl.Range)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}

		content, diags := hclFile.Body.Content(rootSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		for _, block := range content.Blocks {
			decl, err := l.translateStack(block)
			if err != nil {
				return nil, err
			}
			if prev, dup := seen[decl.Name]; dup {
				return nil, fmt.Errorf("stack %q declared twice (%s and %s)", decl.Name, prev, block.DefRange)
			}
			seen[decl.Name] = block.DefRange
			model.Stacks = append(model.Stacks, decl)
		}
	}

	logger.Debug("HCL loading complete.", "stacks", len(model.Stacks))
	return model, nil
}

// findManifestFiles resolves the given paths to a flat, de-duplicated list
// of .hcl files. Directories are searched recursively; a path that does not
// exist is an error, since every path was asked for explicitly.
func (l *Loader) findManifestFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				add(f)
			}
			continue
		}
		if filepath.Ext(path) != ".hcl" {
			return nil, fmt.Errorf("manifest %s is not an .hcl file", path)
		}
		add(path)
	}
	return files, nil
}
