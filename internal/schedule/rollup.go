package schedule

import (
	"math"
	"time"

	"github.com/mfigueroa/obra/internal/domain"
)

// GroupSummary is the derived display state of a group: dates, cost
// and progress rolled up from its leaf descendants. It is never
// persisted.
type GroupSummary struct {
	Count     int
	MinStart  *time.Time
	MaxEnd    *time.Time
	MinActual *time.Time
	MaxActual *time.Time
	TotalCost float64
	Progress  int
}

// Rollup summarizes the leaf descendants of a group. A group with no
// remaining leaves yields an empty summary; stale stored dates on the
// group row are never used as a fallback.
func Rollup(f *Forest, groupID string) GroupSummary {
	return Summarize(f.LeafDescendants(groupID))
}

// Summarize rolls up an explicit leaf set. Progress is a cost-weighted
// average with a unit-weight fallback for zero-cost leaves, evaluated
// independently of the global scope mode so a zero-cost subtree still
// averages sensibly.
func Summarize(leaves []*domain.Task) GroupSummary {
	s := GroupSummary{Count: len(leaves)}
	if len(leaves) == 0 {
		return s
	}

	var weightedProgress, totalWeight float64
	for _, t := range leaves {
		s.TotalCost += t.Cost

		start := domain.Day(t.PlanStart)
		end := domain.Day(t.PlanEnd)
		if s.MinStart == nil || start.Before(*s.MinStart) {
			s.MinStart = &start
		}
		if s.MaxEnd == nil || end.After(*s.MaxEnd) {
			s.MaxEnd = &end
		}

		if t.ActualStart != nil {
			as := domain.Day(*t.ActualStart)
			if s.MinActual == nil || as.Before(*s.MinActual) {
				s.MinActual = &as
			}
		}
		if ae := t.EffectiveActualEnd(); ae != nil {
			end := domain.Day(*ae)
			if s.MaxActual == nil || end.After(*s.MaxActual) {
				s.MaxActual = &end
			}
		}

		w := t.Cost
		if w == 0 {
			w = 1
		}
		weightedProgress += float64(t.Progress) * w
		totalWeight += w
	}

	if totalWeight > 0 {
		s.Progress = int(math.Round(weightedProgress / totalWeight))
	}
	return s
}
