package schedule

import (
	"time"

	"github.com/mfigueroa/obra/internal/domain"
)

// SCurvePoint is one sample of the cumulative planned/achieved curves.
type SCurvePoint struct {
	Date      time.Time
	PlanPct   float64
	ActualPct float64
}

// AccumulationInput scopes a curve computation to a time window. The
// scope total is recomputed over the leaves passed in, independent of
// any global weight total, so the curve is self-normalizing for the
// selected window.
type AccumulationInput struct {
	Start time.Time
	End   time.Time
	Mode  domain.ScopeMode
	Today time.Time
}

// Accumulate distributes each leaf's weight evenly across its plan
// days (and its achieved weight across its actual days) into daily
// buckets, then integrates the buckets into cumulative curves capped
// at 100 and prefixed with a zero point at the range start.
func Accumulate(leaves []*domain.Task, in AccumulationInput) []SCurvePoint {
	start, end := domain.Day(in.Start), domain.Day(in.End)
	totalDays := domain.DaysBetween(start, end) + 1
	if totalDays < 1 {
		return nil
	}

	planned := make([]float64, totalDays)
	actual := make([]float64, totalDays)
	total := TotalScope(leaves, in.Mode)

	for _, t := range leaves {
		weight := WeightPct(t, total, in.Mode)
		if weight <= 0 {
			continue
		}

		spread(planned, start, t.PlanStart, t.PlanEnd, weight)

		if t.Progress > 0 && t.ActualStart != nil {
			achieved := weight * float64(t.Progress) / 100
			actualEnd := in.Today
			if t.ActualEnd != nil {
				actualEnd = *t.ActualEnd
			}
			spread(actual, start, *t.ActualStart, actualEnd, achieved)
		}
	}

	points := make([]SCurvePoint, 0, totalDays+1)
	points = append(points, SCurvePoint{Date: start})
	var planSum, actualSum float64
	for i := 0; i < totalDays; i++ {
		planSum += planned[i]
		actualSum += actual[i]
		points = append(points, SCurvePoint{
			Date:      domain.AddDays(start, i),
			PlanPct:   capPct(planSum),
			ActualPct: capPct(actualSum),
		})
	}
	return points
}

// spread divides weight evenly over the inclusive [from, to] range and
// adds the per-day share into the buckets that fall inside the window.
func spread(buckets []float64, windowStart, from, to time.Time, weight float64) {
	days := domain.DaysBetween(from, to) + 1
	if days < 1 {
		days = 1
	}
	perDay := weight / float64(days)
	offset := domain.DaysBetween(windowStart, from)
	for i := 0; i < days; i++ {
		idx := offset + i
		if idx < 0 || idx >= len(buckets) {
			continue
		}
		buckets[idx] += perDay
	}
}

func capPct(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
