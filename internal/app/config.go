package app

import (
	"errors"

	"github.com/vk/stackforge/internal/backend"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // .hcl file or directory

	OutDir string // deployment documents land here; empty means stdout
	Format string // "json" or "yaml"
	DryRun bool   // validate only, write nothing
	Target string // stack name or full unit address; empty means all stacks
	Watch  bool   // re-run the pipeline on manifest changes

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates a Config and returns it ready for use.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
	if _, err := backend.ParseFormat(cfg.Format); err != nil {
		return nil, err
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	return &cfg, nil
}
