package schedule

import (
	"sort"
	"time"

	"github.com/mfigueroa/obra/internal/domain"
)

// DatePatch is one computed date change. The engine only computes what
// should change; persisting the patch set is the caller's job.
type DatePatch struct {
	TaskID string
	Bar    domain.BarType
	Start  time.Time
	End    time.Time
}

// CascadeResult is the full effect of committing a drag against a task
// snapshot.
type CascadeResult struct {
	Patches []DatePatch
	// DependencyTouched is true when any finish-to-start successor was
	// shifted, i.e. the commit went beyond the dragged subtree.
	DependencyTouched bool
	// CycleIDs lists tasks whose successor edge pointed back at a task
	// already shifted on the same chain. The cascade still terminates
	// (the processed set bounds it to one pass per task); the IDs are
	// surfaced as a validation warning, not an error.
	CycleIDs []string
}

// Propagate computes the patch set for a released drag against the
// latest task snapshot. The snapshot must be current at commit time,
// not one captured at gesture start, so the cascade never runs against
// stale data.
//
// Plan-bar moves translate the dragged subtree rigidly and then walk
// the successor relation breadth-first, carrying the originating delta
// unchanged through the chain. Resize-right cascades the end-date
// delta only; resize-left and actual-bar edits never cascade.
func Propagate(snapshot []*domain.Task, d DragState) CascadeResult {
	var res CascadeResult
	if !d.Changed() {
		return res
	}

	byID := make(map[string]*domain.Task, len(snapshot))
	for _, t := range snapshot {
		byID[t.ID] = t
	}
	if _, ok := byID[d.TaskID]; !ok {
		return res
	}

	res.Patches = append(res.Patches, DatePatch{
		TaskID: d.TaskID,
		Bar:    d.Bar,
		Start:  d.CurrentStart,
		End:    d.CurrentEnd,
	})

	// Actual-bar edits record progress history; they move no other task.
	if d.Bar == domain.BarActual {
		return res
	}

	processed := map[string]bool{d.TaskID: true}

	var delta int
	switch d.Op {
	case domain.OpMove:
		delta = d.StartDelta()
		// Rigid subtree translation: every descendant shifts by the
		// same delta, independent of its own duration.
		f := BuildForest(snapshot)
		for _, id := range f.DescendantIDs(d.TaskID) {
			t := byID[id]
			res.Patches = append(res.Patches, shiftPatch(t, delta))
			processed[id] = true
		}
	case domain.OpResizeRight:
		delta = d.EndDelta()
	default:
		// resize-left only moves the dragged task's own start.
		return res
	}
	if delta == 0 {
		return res
	}

	// Successor edges: pred -> tasks listing it as a predecessor.
	// Edges naming unknown predecessor IDs simply never fire.
	successors := make(map[string][]string)
	for _, t := range snapshot {
		for _, pred := range t.Predecessors {
			successors[pred] = append(successors[pred], t.ID)
		}
	}

	// BFS carrying the originating delta unchanged: a chain A -> B -> C
	// moved by +3 shifts B and C by +3 each, never +3 then +6.
	parent := make(map[string]string)
	queue := []string{d.TaskID}
	cycles := map[string]bool{}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, succID := range successors[cur] {
			if processed[succID] {
				if isBFSAncestor(parent, cur, succID, d.TaskID) {
					cycles[succID] = true
				}
				continue
			}
			t := byID[succID]
			if t == nil {
				continue
			}
			res.Patches = append(res.Patches, shiftPatch(t, delta))
			res.DependencyTouched = true
			processed[succID] = true
			parent[succID] = cur
			queue = append(queue, succID)
		}
	}

	for id := range cycles {
		res.CycleIDs = append(res.CycleIDs, id)
	}
	// Stable warning text across identical commits.
	sort.Strings(res.CycleIDs)
	return res
}

func shiftPatch(t *domain.Task, delta int) DatePatch {
	return DatePatch{
		TaskID: t.ID,
		Bar:    domain.BarPlan,
		Start:  domain.AddDays(t.PlanStart, delta),
		End:    domain.AddDays(t.PlanEnd, delta),
	}
}

// isBFSAncestor reports whether candidate lies on the BFS path from
// the cascade root to cur, which distinguishes a true cycle from a
// diamond-shaped dependency fan-in.
func isBFSAncestor(parent map[string]string, cur, candidate, root string) bool {
	if candidate == root {
		return true
	}
	for cur != "" {
		if cur == candidate {
			return true
		}
		cur = parent[cur]
	}
	return false
}
