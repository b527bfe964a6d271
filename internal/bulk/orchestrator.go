package bulk

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/plalonde/sensorctl/internal/client"
	"github.com/plalonde/sensorctl/internal/logger"
	"github.com/plalonde/sensorctl/internal/resource"
	sensorctlerrors "github.com/plalonde/sensorctl/pkg/errors"
)

const defaultWorkers = 4

// Mutator is the mutating slice of the resource client.
type Mutator interface {
	Mutate(ctx context.Context, method, path string, body any) (client.Payload, error)
}

// Lister enumerates the resources of one API surface version.
type Lister func(ctx context.Context) ([]resource.Ref, error)

// Option customises orchestrator construction.
type Option func(*Orchestrator)

// WithWorkers bounds the deletion worker pool.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *Orchestrator) {
		o.log = log
	}
}

// WithObserver registers a callback invoked once per completed outcome, from
// the reducer goroutine only. Used to drive progress UIs.
func WithObserver(fn func(Outcome)) Option {
	return func(o *Orchestrator) {
		o.observe = fn
	}
}

// Orchestrator runs bulk deletions: enumerate targets, delete each one, and
// aggregate per-target outcomes. It never aborts the batch on a target
// failure; the operator gets the full picture at the end. Confirmation is
// the caller's gate, not the orchestrator's.
type Orchestrator struct {
	mutator Mutator
	listers []Lister
	workers int
	observe func(Outcome)
	log     *logger.Logger
}

// NewOrchestrator creates a bulk orchestrator over the given listing
// surfaces. Listers must be supplied in ascending version order; when the
// same identifier appears on several surfaces the higher version's delete
// endpoint wins and the resource is targeted once.
func NewOrchestrator(mutator Mutator, listers []Lister, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		mutator: mutator,
		listers: listers,
		workers: defaultWorkers,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Enumerate lists candidate targets matching the selector across every
// surface version, deduplicated by identifier.
func (o *Orchestrator) Enumerate(ctx context.Context, sel Selector) ([]resource.Ref, error) {
	byID := make(map[string]int)
	var targets []resource.Ref

	for _, list := range o.listers {
		refs, err := list(ctx)
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			if !sel.Matches(ref.ID) {
				continue
			}
			if i, seen := byID[ref.ID]; seen {
				if ref.Version > targets[i].Version {
					targets[i] = ref
				}
				continue
			}
			byID[ref.ID] = len(targets)
			targets = append(targets, ref)
		}
	}

	return targets, nil
}

// Delete enumerates targets for the selector and deletes each one through a
// bounded worker pool. Workers return value outcomes over a channel; the
// single reducer here is the only synchronization point. Cancelling the
// context stops new deletions but lets in-flight ones finish, so the
// returned result covers exactly the attempted targets.
func (o *Orchestrator) Delete(ctx context.Context, sel Selector) (*Result, error) {
	targets, err := o.Enumerate(ctx, sel)
	if err != nil {
		return nil, err
	}
	return o.DeleteRefs(ctx, targets), nil
}

// DeleteRefs deletes an already-enumerated target list. Split out so the CLI
// can show the operator the exact target set before asking for confirmation.
func (o *Orchestrator) DeleteRefs(ctx context.Context, targets []resource.Ref) *Result {
	start := time.Now()
	result := &Result{}

	if len(targets) == 0 {
		result.Duration = time.Since(start)
		return result
	}

	type job struct {
		index int
		ref   resource.Ref
	}
	type indexed struct {
		index   int
		outcome Outcome
	}

	workers := o.workers
	if workers > len(targets) {
		workers = len(targets)
	}

	jobs := make(chan job)
	outcomes := make(chan indexed)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				outcomes <- indexed{index: j.index, outcome: o.deleteOne(ctx, j.ref)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, ref := range targets {
			select {
			case jobs <- job{index: i, ref: ref}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	collected := make([]indexed, 0, len(targets))
	for ix := range outcomes {
		collected = append(collected, ix)
		if o.observe != nil {
			o.observe(ix.outcome)
		}
	}
	sort.Slice(collected, func(a, b int) bool { return collected[a].index < collected[b].index })

	for _, ix := range collected {
		result.add(ix.outcome)
	}

	result.Duration = time.Since(start)
	return result
}

func (o *Orchestrator) deleteOne(ctx context.Context, ref resource.Ref) Outcome {
	o.log.WithFields(map[string]any{"target": ref.String()}).Debug("deleting")

	_, err := o.mutator.Mutate(ctx, http.MethodDelete, ref.DeletePath, nil)
	if err == nil {
		return Outcome{Ref: ref, Status: StatusDeleted}
	}

	var resErr *sensorctlerrors.ResourceError
	if errors.As(err, &resErr) && resErr.Kind == sensorctlerrors.KindNotFound {
		// Already gone; a concurrent actor removed it first.
		return Outcome{Ref: ref, Status: StatusSkipped}
	}

	return Outcome{Ref: ref, Status: StatusFailed, Err: err}
}
