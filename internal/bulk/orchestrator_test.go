package bulk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/plalonde/sensorctl/internal/client"
	"github.com/plalonde/sensorctl/internal/resource"
	sensorctlerrors "github.com/plalonde/sensorctl/pkg/errors"
)

// fakeMutator answers DELETE calls from a canned status table.
type fakeMutator struct {
	mu       sync.Mutex
	statuses map[string]int // delete path -> HTTP status, default 200
	calls    []string
	block    chan struct{} // when set, calls wait here
}

func (f *fakeMutator) Mutate(ctx context.Context, method, path string, _ any) (client.Payload, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
		}
	}

	status := http.StatusOK
	if s, ok := f.statuses[path]; ok {
		status = s
	}
	if status >= 200 && status < 300 {
		return client.Payload(`{}`), nil
	}

	kind := sensorctlerrors.KindServerError
	if status == http.StatusNotFound {
		kind = sensorctlerrors.KindNotFound
	}
	return nil, sensorctlerrors.NewResourceError(kind, status, method, path, nil)
}

func sessionRef(id string) resource.Ref {
	return resource.NewRef(id, resource.KindSession, 3, "/api/orchestrate/v3/agents/session/"+id)
}

func staticLister(refs ...resource.Ref) Lister {
	return func(context.Context) ([]resource.Ref, error) {
		return refs, nil
	}
}

func TestDeleteByPrefix(t *testing.T) {
	t.Parallel()

	mutator := &fakeMutator{statuses: map[string]int{
		"/api/orchestrate/v3/agents/session/session-2": http.StatusInternalServerError,
	}}
	o := NewOrchestrator(mutator, []Lister{staticLister(
		sessionRef("session-1"),
		sessionRef("session-2"),
		sessionRef("other-3"),
	)})

	result, err := o.Delete(context.Background(), Prefix("session-"))
	require.NoError(t, err)

	require.Equal(t, 2, result.Total)
	require.Equal(t, 1, result.Deleted)
	require.Equal(t, 1, result.Failed)
	require.Equal(t, 0, result.Skipped)
	require.Equal(t, result.Total, result.Deleted+result.Failed+result.Skipped)
	require.False(t, result.Succeeded())
	require.Equal(t, 1, result.ExitCode())

	// outcomes keep enumeration order
	require.Equal(t, "session-1", result.Outcomes[0].Ref.ID)
	require.Equal(t, StatusDeleted, result.Outcomes[0].Status)
	require.Equal(t, "session-2", result.Outcomes[1].Ref.ID)
	require.Equal(t, StatusFailed, result.Outcomes[1].Status)
	require.Error(t, result.Outcomes[1].Err)
}

func TestDeleteTreats404AsSkipped(t *testing.T) {
	t.Parallel()

	mutator := &fakeMutator{statuses: map[string]int{
		"/api/orchestrate/v3/agents/session/session-1": http.StatusNotFound,
	}}
	o := NewOrchestrator(mutator, []Lister{staticLister(sessionRef("session-1"))})

	result, err := o.Delete(context.Background(), All())
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Equal(t, 1, result.Skipped)
	require.Equal(t, StatusSkipped, result.Outcomes[0].Status)
	require.NoError(t, result.Outcomes[0].Err)
	require.True(t, result.Succeeded())
}

func TestDeleteAllAcrossVersionsDeduplicates(t *testing.T) {
	t.Parallel()

	v2 := func(id string) resource.Ref {
		return resource.NewRef(id, resource.KindPolicy, 2, "/api/v2/policies/alerting/"+id)
	}
	v3 := func(id string) resource.Ref {
		return resource.NewRef(id, resource.KindPolicy, 3, "/api/v3/policies/alerting/"+id+"?ignoreAlerts=true")
	}

	mutator := &fakeMutator{}
	o := NewOrchestrator(mutator, []Lister{
		staticLister(v2("pol-1"), v2("pol-2")),
		staticLister(v3("pol-2"), v3("pol-3")),
	})

	result, err := o.Delete(context.Background(), All())
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)

	seen := make(map[string]resource.Ref)
	for _, outcome := range result.Outcomes {
		_, dup := seen[outcome.Ref.ID]
		require.False(t, dup, "duplicate outcome for %s", outcome.Ref.ID)
		seen[outcome.Ref.ID] = outcome.Ref
	}

	// the overlapping policy goes through the v3 endpoint, once
	require.Equal(t, 3, seen["pol-2"].Version)
	require.Contains(t, mutator.calls, "/api/v3/policies/alerting/pol-2?ignoreAlerts=true")
	require.NotContains(t, mutator.calls, "/api/v2/policies/alerting/pol-2")
}

func TestDeleteEmptySelection(t *testing.T) {
	t.Parallel()

	o := NewOrchestrator(&fakeMutator{}, []Lister{staticLister(sessionRef("other-1"))})

	result, err := o.Delete(context.Background(), Prefix("session-"))
	require.NoError(t, err)
	require.Zero(t, result.Total)
	require.Empty(t, result.Outcomes)
	require.True(t, result.Succeeded())
}

func TestDeletePropagatesEnumerationError(t *testing.T) {
	t.Parallel()

	listErr := sensorctlerrors.NewResourceError(sensorctlerrors.KindUnauthorized, 403, "GET", "/api/v2/policies/alerting", nil)
	o := NewOrchestrator(&fakeMutator{}, []Lister{
		func(context.Context) ([]resource.Ref, error) { return nil, listErr },
	})

	_, err := o.Delete(context.Background(), All())
	var resErr *sensorctlerrors.ResourceError
	require.ErrorAs(t, err, &resErr)
	require.Equal(t, sensorctlerrors.KindUnauthorized, resErr.Kind)
}

func TestDeleteCancellationStopsNewWork(t *testing.T) {
	t.Parallel()

	refs := make([]resource.Ref, 20)
	for i := range refs {
		refs[i] = sessionRef(fmt.Sprintf("session-%02d", i))
	}

	block := make(chan struct{})
	mutator := &fakeMutator{block: block}
	o := NewOrchestrator(mutator, []Lister{staticLister(refs...)}, WithWorkers(2))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan *Result, 1)
	go func() {
		result, err := o.Delete(ctx, All())
		require.NoError(t, err)
		done <- result
	}()

	// let the first wave of workers pick up jobs, then cancel
	require.Eventually(t, func() bool {
		mutator.mu.Lock()
		defer mutator.mu.Unlock()
		return len(mutator.calls) >= 2
	}, time.Second, 5*time.Millisecond)
	cancel()
	close(block)

	result := <-done
	require.Less(t, result.Total, len(refs))
	require.Equal(t, result.Total, len(result.Outcomes))
	require.Equal(t, result.Total, result.Deleted+result.Failed+result.Skipped)
}

func TestDeleteObserverSeesEveryOutcome(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var observed []Outcome
	o := NewOrchestrator(
		&fakeMutator{},
		[]Lister{staticLister(sessionRef("session-1"), sessionRef("session-2"))},
		WithObserver(func(out Outcome) {
			mu.Lock()
			observed = append(observed, out)
			mu.Unlock()
		}),
	)

	result, err := o.Delete(context.Background(), All())
	require.NoError(t, err)
	require.Len(t, observed, result.Total)
}

func TestSelector(t *testing.T) {
	t.Parallel()

	require.True(t, All().Matches("anything"))
	require.True(t, Prefix("all").Matches("anything"))
	require.True(t, Prefix("session-").Matches("session-9"))
	require.False(t, Prefix("session-").Matches("other-9"))
	require.Equal(t, "all", All().String())
	require.Equal(t, "session-*", Prefix("session-").String())
}
