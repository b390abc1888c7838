package schedule

import (
	"time"

	"github.com/mfigueroa/obra/internal/domain"
)

// DragState is the explicit, serializable state of an in-progress bar
// gesture. It exists only between gesture start and release; nothing
// is persisted until the gesture commits.
type DragState struct {
	TaskID string
	Bar    domain.BarType
	Op     domain.DragOp

	OriginalStart time.Time
	OriginalEnd   time.Time
	CurrentStart  time.Time
	CurrentEnd    time.Time

	// AffectedDescendants is captured at gesture start so the UI can
	// highlight the subtree that will translate with a plan-bar move.
	AffectedDescendants []string
}

// StartDrag captures the original range of the targeted bar. The
// actual bar falls back to the plan range when no actual start is
// recorded, and collapses to a single-day marker at zero progress.
func StartDrag(f *Forest, t *domain.Task, bar domain.BarType, op domain.DragOp) DragState {
	start, end := domain.Day(t.PlanStart), domain.Day(t.PlanEnd)
	if bar == domain.BarActual {
		if t.ActualStart != nil {
			start = domain.Day(*t.ActualStart)
			if ae := t.EffectiveActualEnd(); ae != nil {
				end = domain.Day(*ae)
			} else {
				end = start
			}
		}
	}

	d := DragState{
		TaskID:        t.ID,
		Bar:           bar,
		Op:            op,
		OriginalStart: start,
		OriginalEnd:   end,
		CurrentStart:  start,
		CurrentEnd:    end,
	}
	if op == domain.OpMove && bar == domain.BarPlan && f != nil {
		d.AffectedDescendants = f.DescendantIDs(t.ID)
	}
	return d
}

// Update recomputes the current range from a cumulative day delta
// measured against the gesture origin. Resizes clamp the moving edge
// to the fixed edge so a zero-or-negative duration is never produced.
func (d *DragState) Update(daysDelta int) {
	switch d.Op {
	case domain.OpMove:
		d.CurrentStart = domain.AddDays(d.OriginalStart, daysDelta)
		d.CurrentEnd = domain.AddDays(d.OriginalEnd, daysDelta)
	case domain.OpResizeLeft:
		start := domain.AddDays(d.OriginalStart, daysDelta)
		if start.After(d.CurrentEnd) {
			start = d.CurrentEnd
		}
		d.CurrentStart = start
	case domain.OpResizeRight:
		end := domain.AddDays(d.OriginalEnd, daysDelta)
		if end.Before(d.CurrentStart) {
			end = d.CurrentStart
		}
		d.CurrentEnd = end
	}
}

// Changed reports whether releasing now would commit anything.
func (d *DragState) Changed() bool {
	return !d.CurrentStart.Equal(d.OriginalStart) || !d.CurrentEnd.Equal(d.OriginalEnd)
}

// StartDelta returns the net start-date shift in days.
func (d *DragState) StartDelta() int {
	return domain.DaysBetween(d.OriginalStart, d.CurrentStart)
}

// EndDelta returns the net end-date shift in days.
func (d *DragState) EndDelta() int {
	return domain.DaysBetween(d.OriginalEnd, d.CurrentEnd)
}
