package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/stackforge/internal/ctxlog"
	"github.com/vk/stackforge/internal/kind"
	"github.com/vk/stackforge/internal/manifest"
	"github.com/vk/stackforge/internal/relation"
	"github.com/vk/stackforge/internal/stack"
)

// Runner composes manifest stacks into plans.
type Runner struct {
	catalog    *kind.Catalog
	relations  *relation.Registry
	numWorkers int
}

// NewRunner creates a runner backed by the given kind catalog and
// relationship registry. numWorkers bounds how many stacks compose at once;
// values below one mean no concurrency.
func NewRunner(catalog *kind.Catalog, relations *relation.Registry, numWorkers int) *Runner {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Runner{catalog: catalog, relations: relations, numWorkers: numWorkers}
}

// Run composes every stack in the model and returns the plans in manifest
// order. The first failure cancels the stacks still waiting; the returned
// error names every stack that genuinely failed, with the first one as the
// root cause.
func (r *Runner) Run(ctx context.Context, model *manifest.Model) ([]*stack.Plan, error) {
	logger := ctxlog.FromContext(ctx)

	total := len(model.Stacks)
	if total == 0 {
		return nil, nil
	}

	workers := min(r.numWorkers, total)
	logger.Debug("Starting composition pool.", "stacks", total, "workers", workers)

	jobs := make(chan int, total)
	for i := 0; i < total; i++ {
		jobs <- i
	}
	close(jobs)

	plans := make([]*stack.Plan, total)
	errs := make([]error, total)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				if runCtx.Err() != nil {
					errs[i] = runCtx.Err()
					continue
				}
				plan, err := r.composeStack(runCtx, model.Stacks[i])
				if err != nil {
					errs[i] = err
					cancel()
					continue
				}
				plans[i] = plan
			}
		}(w)
	}
	wg.Wait()

	var failed []string
	var rootCause error
	for i, err := range errs {
		if err == nil || errors.Is(err, context.Canceled) {
			continue
		}
		failed = append(failed, model.Stacks[i].Name)
		if rootCause == nil {
			rootCause = err
		}
	}
	if rootCause != nil {
		return nil, fmt.Errorf("composition failed for %s: %w", strings.Join(failed, ", "), rootCause)
	}
	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("composition canceled: %w", err)
		}
	}

	logger.Debug("Composition complete.", "plans", len(plans))
	return plans, nil
}

// composeStack replays one stack declaration through a fresh stack and
// closes it.
func (r *Runner) composeStack(ctx context.Context, decl *manifest.StackDecl) (*stack.Plan, error) {
	s, err := stack.New(decl.Name, r.catalog, r.relations)
	if err != nil {
		return nil, err
	}

	for _, entry := range decl.Entries {
		switch {
		case entry.Resource != nil:
			if err := r.applyResource(ctx, s, entry.Resource); err != nil {
				return nil, fmt.Errorf("stack %q: %s: %w", decl.Name, entry.Resource.DefRange, err)
			}
		case entry.Relationship != nil:
			if err := r.applyRelationship(ctx, s, entry.Relationship); err != nil {
				return nil, fmt.Errorf("stack %q: %s: %w", decl.Name, entry.Relationship.DefRange, err)
			}
		}
	}

	plan, err := s.Close(ctx)
	if err != nil {
		return nil, fmt.Errorf("stack %q: %w", decl.Name, err)
	}
	ctxlog.FromContext(ctx).Debug("Stack composed.", "stack", decl.Name, "units", len(plan.Units))
	return plan, nil
}

// applyResource declares one resource and, for queue-style declarations,
// the dead-letter relationship its nested block asks for. The resource unit
// always lands before the relationship unit.
func (r *Runner) applyResource(ctx context.Context, s *stack.Stack, decl *manifest.ResourceDecl) error {
	overrides := make([]kind.Override, 0, len(decl.Overrides))
	for _, f := range decl.Overrides {
		overrides = append(overrides, kind.SetValue(f.Name, f.Value))
	}

	h, err := s.Declare(ctx, decl.Name, kind.Kind(decl.Kind), overrides...)
	if err != nil {
		return err
	}

	if dl := decl.DeadLetter; dl != nil {
		var attrs []kind.Override
		if dl.MaxReceives != nil {
			attrs = append(attrs, kind.Set(relation.AttrMaxReceives, *dl.MaxReceives))
		}
		_, err := s.Relate(ctx, relation.DeadLetter, []stack.Binding{
			{Role: relation.RoleSource, Name: h.Name},
			{Role: relation.RoleTarget, Name: dl.Target},
		}, attrs...)
		if err != nil {
			return err
		}
	}
	return nil
}

// applyRelationship splits a relationship block's fields into role bindings
// and attributes using the relationship definition, then links them. Field
// order is preserved within each half.
func (r *Runner) applyRelationship(ctx context.Context, s *stack.Stack, decl *manifest.RelationshipDecl) error {
	relKind := relation.Kind(decl.Kind)
	def, err := r.relations.Lookup(relKind)
	if err != nil {
		return err
	}

	var bindings []stack.Binding
	var attrs []kind.Override
	for _, f := range decl.Fields {
		if _, isRole := def.Role(f.Name); isRole {
			name, err := resourceName(f.Value)
			if err != nil {
				return fmt.Errorf("role %q: %w", f.Name, err)
			}
			bindings = append(bindings, stack.Binding{Role: f.Name, Name: name})
			continue
		}
		attrs = append(attrs, kind.SetValue(f.Name, f.Value))
	}

	_, err = s.Relate(ctx, relKind, bindings, attrs...)
	return err
}

// resourceName coerces a role binding value to the declared resource name.
func resourceName(v cty.Value) (string, error) {
	converted, err := convert.Convert(v, cty.String)
	if err != nil || converted.IsNull() {
		return "", fmt.Errorf("expected a resource name string")
	}
	return converted.AsString(), nil
}
