package schedule

import (
	"testing"

	"github.com/mfigueroa/obra/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDrag_MoveRoundTrip(t *testing.T) {
	task := mkTask("a", "2025-03-10", "2025-03-15")
	d := StartDrag(nil, task, domain.BarPlan, domain.OpMove)

	d.Update(7)
	assert.Equal(t, date("2025-03-17"), d.CurrentStart)
	assert.Equal(t, date("2025-03-22"), d.CurrentEnd)

	d.Update(0)
	assert.Equal(t, date("2025-03-10"), d.CurrentStart)
	assert.Equal(t, date("2025-03-15"), d.CurrentEnd)
	assert.False(t, d.Changed())
}

func TestDrag_ResizeLeftClampsToEnd(t *testing.T) {
	task := mkTask("a", "2025-03-10", "2025-03-12")
	d := StartDrag(nil, task, domain.BarPlan, domain.OpResizeLeft)

	d.Update(10) // would push start past end
	assert.Equal(t, d.CurrentEnd, d.CurrentStart)
	assert.Equal(t, date("2025-03-12"), d.CurrentStart)
}

func TestDrag_ResizeRightClampsToStart(t *testing.T) {
	task := mkTask("a", "2025-03-10", "2025-03-12")
	d := StartDrag(nil, task, domain.BarPlan, domain.OpResizeRight)

	d.Update(-10)
	assert.Equal(t, date("2025-03-10"), d.CurrentEnd)

	d.Update(5)
	assert.Equal(t, date("2025-03-17"), d.CurrentEnd)
	assert.Equal(t, 5, d.EndDelta())
	assert.Equal(t, 0, d.StartDelta())
}

func TestDrag_ActualBarFallsBackToPlan(t *testing.T) {
	task := mkTask("a", "2025-03-10", "2025-03-15")
	d := StartDrag(nil, task, domain.BarActual, domain.OpMove)
	assert.Equal(t, date("2025-03-10"), d.OriginalStart)
	assert.Equal(t, date("2025-03-15"), d.OriginalEnd)
}

func TestDrag_ActualBarSingleDayMarkerAtZeroProgress(t *testing.T) {
	task := mkTask("a", "2025-03-10", "2025-03-15", withActual("2025-03-11", ""))
	d := StartDrag(nil, task, domain.BarActual, domain.OpMove)
	assert.Equal(t, date("2025-03-11"), d.OriginalStart)
	assert.Equal(t, date("2025-03-11"), d.OriginalEnd)
}

func TestDrag_MoveCapturesDescendants(t *testing.T) {
	tasks := []*domain.Task{
		mkTask("g", "2025-03-01", "2025-03-31"),
		mkTask("a", "2025-03-01", "2025-03-10", withParent("g")),
		mkTask("b", "2025-03-11", "2025-03-20", withParent("g")),
	}
	f := BuildForest(tasks)

	move := StartDrag(f, tasks[0], domain.BarPlan, domain.OpMove)
	assert.ElementsMatch(t, []string{"a", "b"}, move.AffectedDescendants)

	// Resizes never translate the subtree.
	resize := StartDrag(f, tasks[0], domain.BarPlan, domain.OpResizeRight)
	assert.Empty(t, resize.AffectedDescendants)
}
