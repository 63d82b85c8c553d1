package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/stackforge/internal/addr"
	"github.com/vk/stackforge/internal/backend"
	"github.com/vk/stackforge/internal/compose"
	"github.com/vk/stackforge/internal/ctxlog"
	"github.com/vk/stackforge/internal/stack"
)

// Run executes one full pipeline pass: load manifests, compose every stack
// into a closed plan, and hand the plans to the configured backends.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loader.Load(ctx, a.config.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifests: %w", err)
	}
	a.logger.Debug("Manifests loaded and translated into unified model.", "stacks", len(model.Stacks))

	runner := compose.NewRunner(a.catalog, a.relations, a.config.WorkerCount)
	a.logger.Info("🚀 Starting composition...", "stacks", len(model.Stacks), "workers", a.config.WorkerCount)
	plans, err := runner.Run(ctx, model)
	if err != nil {
		return err
	}

	plans, err = a.selectPlans(plans)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		a.logger.Warn("No stacks to compose, nothing to do.")
		return nil
	}

	for _, b := range a.backends() {
		for _, plan := range plans {
			if err := b.Apply(ctx, plan); err != nil {
				return fmt.Errorf("backend %s: %w", b.Name(), err)
			}
		}
	}

	a.logger.Info("🏁 Composition finished.", "stacks", len(plans))
	return nil
}

// backends returns the plan consumers for this run. The validator always
// runs first so later consumers only ever see structurally sound plans.
func (a *App) backends() []backend.Backend {
	bs := []backend.Backend{backend.NewValidator(a.catalog, a.relations)}
	if a.config.DryRun {
		return bs
	}
	return append(bs, backend.NewSynthesizer(a.config.OutDir, backend.Format(a.config.Format), a.outW))
}

// selectPlans applies the target selector. A bare stack name selects that
// stack's plan; a full unit address selects the plan of the stack declaring
// the unit, since a plan only materializes whole.
func (a *App) selectPlans(plans []*stack.Plan) ([]*stack.Plan, error) {
	target := a.config.Target
	if target == "" {
		return plans, nil
	}

	if !strings.Contains(target, "/") {
		for _, plan := range plans {
			if plan.Stack == target {
				return []*stack.Plan{plan}, nil
			}
		}
		return nil, fmt.Errorf("target stack %q not found", target)
	}

	unitAddr, err := addr.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid target %q: %w", target, err)
	}
	for _, plan := range plans {
		if plan.Stack != unitAddr.Stack {
			continue
		}
		for _, u := range plan.Units {
			if u.Addr.Equal(unitAddr) {
				return []*stack.Plan{plan}, nil
			}
		}
		return nil, fmt.Errorf("target %q not found in stack %q", target, unitAddr.Stack)
	}
	return nil, fmt.Errorf("target stack %q not found", unitAddr.Stack)
}
