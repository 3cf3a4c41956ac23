// Package retry wraps adapter.Start with port-collision recovery, per
// spec.md §4.H: classify a failed start, reallocate a free port on
// PortInUse, persist the change, and retry up to maxRetries times.
//
// Grounded on pkg/commands/runtime.go's retry-on-transient-error shape in
// the teacher's container-start path, generalized to the port-specific
// classify-and-reallocate loop spec.md names.
package retry

import (
	"context"

	"github.com/robertjbass/spindb/internal/engine"
	"github.com/robertjbass/spindb/internal/model"
	"github.com/robertjbass/spindb/internal/ports"
	"github.com/robertjbass/spindb/internal/spinerr"
)

// DefaultMaxRetries is the default retry cap (spec.md §4.H).
const DefaultMaxRetries = 3

// OnPortChange is invoked exactly once per successful reallocation.
type OnPortChange func(oldPort, newPort int)

// PersistPort is how the wrapper persists a reallocated port; callers
// wire this to containers.Manager.UpdateConfig so the retry package
// doesn't need to import the container manager directly.
type PersistPort func(newPort int) error

// Options configures StartWithRetry.
type Options struct {
	MaxRetries   int // 0 = DefaultMaxRetries
	OnPortChange OnPortChange
	PersistPort  PersistPort
}

// Result is what StartWithRetry returns.
type Result struct {
	Success     bool
	FinalPort   int
	RetriesUsed int
	Err         error
}

// StartWithRetry invokes adapter.Start, recovering only from PortInUse
// failures by reallocating the next free port and retrying. Any other
// failure is returned verbatim with no retry. Readiness is the adapter's
// own responsibility within Start, not this wrapper's (spec.md §4.H).
func StartWithRetry(ctx context.Context, adapter engine.Adapter, cfg model.Config, progress engine.ProgressSink, opts Options) Result {
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	current := cfg
	retriesUsed := 0

	for {
		startResult, err := adapter.Start(ctx, current, progress)
		if err == nil {
			return Result{Success: true, FinalPort: startResult.Port, RetriesUsed: retriesUsed}
		}

		if !spinerr.Is(err, spinerr.PortInUse) {
			return Result{Success: false, FinalPort: current.Port, RetriesUsed: retriesUsed, Err: err}
		}
		if retriesUsed >= maxRetries {
			return Result{Success: false, FinalPort: current.Port, RetriesUsed: retriesUsed, Err: err}
		}

		oldPort := current.Port
		newPort, findErr := ports.FindNextFree(oldPort+1, ports.MaxProbes)
		if findErr != nil {
			return Result{Success: false, FinalPort: oldPort, RetriesUsed: retriesUsed, Err: findErr}
		}

		if opts.PersistPort != nil {
			if persistErr := opts.PersistPort(newPort); persistErr != nil {
				return Result{Success: false, FinalPort: oldPort, RetriesUsed: retriesUsed, Err: persistErr}
			}
		}
		if opts.OnPortChange != nil {
			opts.OnPortChange(oldPort, newPort)
		}

		current.Port = newPort
		retriesUsed++
	}
}
