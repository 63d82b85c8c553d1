package backend

import (
	"context"
	"sync"

	"github.com/vk/stackforge/internal/ctxlog"
	"github.com/vk/stackforge/internal/stack"
)

// Recorder is an in-memory backend that notes every unit it is handed, in
// order. Tests use it to observe exactly what a plan hands off.
type Recorder struct {
	mu      sync.Mutex
	applied []string
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Name implements Backend.
func (r *Recorder) Name() string {
	return "recorder"
}

// Apply implements Backend.
func (r *Recorder) Apply(ctx context.Context, plan *stack.Plan) error {
	logger := ctxlog.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range plan.Units {
		r.applied = append(r.applied, u.Addr.String())
		logger.Info("Materialized unit.", "address", u.Addr.String())
	}
	return nil
}

// Applied returns the addresses of every unit applied so far, in order.
func (r *Recorder) Applied() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.applied))
	copy(out, r.applied)
	return out
}
