package bulk

import (
	"time"

	"github.com/plalonde/sensorctl/internal/resource"
)

// Status classifies the outcome of one delete attempt.
type Status string

const (
	// StatusDeleted means the target was removed.
	StatusDeleted Status = "deleted"
	// StatusSkipped means the target vanished between enumeration and
	// deletion; another actor already removed it.
	StatusSkipped Status = "skipped"
	// StatusFailed means the delete call failed for any other reason.
	StatusFailed Status = "failed"
)

// Outcome is the per-target result of a bulk operation. Value object,
// owned by the Result that aggregates it.
type Outcome struct {
	Ref    resource.Ref
	Status Status
	Err    error
}

// Result aggregates the outcomes of one bulk operation. Total always equals
// the number of targets actually attempted, so Deleted+Skipped+Failed==Total
// holds even when the run was cancelled partway.
type Result struct {
	Total    int
	Deleted  int
	Skipped  int
	Failed   int
	Outcomes []Outcome
	Duration time.Duration
}

// Succeeded reports whether no target failed.
func (r *Result) Succeeded() bool {
	return r.Failed == 0
}

// ExitCode maps the result onto the process exit code.
func (r *Result) ExitCode() int {
	if r.Succeeded() {
		return 0
	}
	return 1
}

func (r *Result) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	r.Total++
	switch o.Status {
	case StatusDeleted:
		r.Deleted++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}
