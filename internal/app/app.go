package app

import (
	"io"
	"log/slog"

	"github.com/vk/stackforge/internal/kind"
	"github.com/vk/stackforge/internal/manifest"
	"github.com/vk/stackforge/internal/relation"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	catalog   *kind.Catalog
	relations *relation.Registry
	loader    manifest.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and kind
// catalog. Manifests are loaded per run, not here, so watch mode can replay
// the pipeline on every change.
func NewApp(outW io.Writer, cfg *Config, loader manifest.Loader, kinds ...kind.Registrar) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	catalog := kind.NewCatalog()
	if len(kinds) == 0 {
		kinds = coreKinds
	}
	for _, k := range kinds {
		k.Register(catalog)
	}
	logger.Debug("All resource kinds registered.", "count", len(kinds))

	relations := relation.Builtins()
	logger.Debug("Relationship registry populated.", "count", len(relations.Kinds()))

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		catalog:   catalog,
		relations: relations,
		loader:    loader,
	}
}

// Catalog returns the application's kind catalog. This is primarily for testing.
func (a *App) Catalog() *kind.Catalog {
	return a.catalog
}
