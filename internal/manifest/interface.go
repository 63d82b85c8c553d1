package manifest

import (
	"context"
)

// Loader is the interface for a format-specific manifest loader.
type Loader interface {
	// Load reads manifests from the given paths, translates them into the
	// format-agnostic model, and rejects syntactically malformed input.
	// Name resolution and semantic validation stay with the composer.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
