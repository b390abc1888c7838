package contract

import (
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/schedule"
)

type DatePatch = schedule.DatePatch

// CommitResult reports what a committed drag changed. Tasks holds the
// re-fetched authoritative snapshot so callers never keep rendering
// from the optimistic projection.
type CommitResult struct {
	Patches           []DatePatch
	DependencyTouched bool
	CycleIDs          []string
	Tasks             []*domain.Task
}

// Changed reports whether the commit wrote anything.
func (r *CommitResult) Changed() bool {
	return r != nil && len(r.Patches) > 0
}
