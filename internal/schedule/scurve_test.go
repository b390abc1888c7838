package schedule

import (
	"testing"

	"github.com/mfigueroa/obra/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccumulate_SingleTaskReachesExactly100(t *testing.T) {
	leaves := []*domain.Task{
		mkTask("a", "2025-03-01", "2025-03-10", withCost(1000)),
	}
	points := Accumulate(leaves, AccumulationInput{
		Start: date("2025-03-01"),
		End:   date("2025-03-10"),
		Mode:  domain.ScopeFinancial,
		Today: date("2025-03-05"),
	})

	require.Len(t, points, 11) // zero point + 10 days
	assert.Equal(t, 0.0, points[0].PlanPct)
	assert.InDelta(t, 10.0, points[1].PlanPct, 1e-9)
	assert.InDelta(t, 100.0, points[10].PlanPct, 1e-9)
}

func TestAccumulate_FlatBeforeTaskStart(t *testing.T) {
	leaves := []*domain.Task{
		mkTask("a", "2025-03-06", "2025-03-10", withCost(1000)),
	}
	points := Accumulate(leaves, AccumulationInput{
		Start: date("2025-03-01"),
		End:   date("2025-03-10"),
		Mode:  domain.ScopeFinancial,
		Today: date("2025-03-10"),
	})

	require.Len(t, points, 11)
	for i := 0; i <= 5; i++ {
		assert.Equal(t, 0.0, points[i].PlanPct, "day %d", i)
	}
	assert.InDelta(t, 100.0, points[10].PlanPct, 1e-9)
}

func TestAccumulate_ActualCurveFromProgress(t *testing.T) {
	leaves := []*domain.Task{
		mkTask("a", "2025-03-01", "2025-03-10", withCost(1000), withProgress(50),
			withActual("2025-03-01", "2025-03-05")),
	}
	points := Accumulate(leaves, AccumulationInput{
		Start: date("2025-03-01"),
		End:   date("2025-03-10"),
		Mode:  domain.ScopeFinancial,
		Today: date("2025-03-10"),
	})

	// 50% achieved, spread over the 5 actual days.
	assert.InDelta(t, 10.0, points[1].ActualPct, 1e-9)
	assert.InDelta(t, 50.0, points[5].ActualPct, 1e-9)
	assert.InDelta(t, 50.0, points[10].ActualPct, 1e-9)
}

func TestAccumulate_OpenActualRangeRunsToToday(t *testing.T) {
	leaves := []*domain.Task{
		mkTask("a", "2025-03-01", "2025-03-10", withCost(1000), withProgress(30),
			withActual("2025-03-01", "")),
	}
	points := Accumulate(leaves, AccumulationInput{
		Start: date("2025-03-01"),
		End:   date("2025-03-10"),
		Mode:  domain.ScopeFinancial,
		Today: date("2025-03-03"),
	})

	assert.InDelta(t, 10.0, points[1].ActualPct, 1e-9)
	assert.InDelta(t, 30.0, points[3].ActualPct, 1e-9)
	assert.InDelta(t, 30.0, points[10].ActualPct, 1e-9)
}

func TestAccumulate_ClipsToWindow(t *testing.T) {
	leaves := []*domain.Task{
		// Half of this task's plan falls before the window.
		mkTask("a", "2025-02-24", "2025-03-05", withCost(1000)),
	}
	points := Accumulate(leaves, AccumulationInput{
		Start: date("2025-03-01"),
		End:   date("2025-03-10"),
		Mode:  domain.ScopeFinancial,
		Today: date("2025-03-10"),
	})

	// Only the 5 in-window days accumulate: 5/10 of the weight.
	assert.InDelta(t, 50.0, points[10].PlanPct, 1e-9)
}

func TestAccumulate_PhysicalMode(t *testing.T) {
	leaves := []*domain.Task{
		mkTask("a", "2025-03-01", "2025-03-05"), // 5 days
		mkTask("b", "2025-03-06", "2025-03-10"), // 5 days
	}
	points := Accumulate(leaves, AccumulationInput{
		Start: date("2025-03-01"),
		End:   date("2025-03-10"),
		Mode:  domain.ScopePhysical,
		Today: date("2025-03-10"),
	})

	assert.InDelta(t, 50.0, points[5].PlanPct, 1e-9)
	assert.InDelta(t, 100.0, points[10].PlanPct, 1e-9)
}

func TestAccumulate_ZeroScopeYieldsFlatCurves(t *testing.T) {
	leaves := []*domain.Task{
		mkTask("a", "2025-03-01", "2025-03-05"),
	}
	points := Accumulate(leaves, AccumulationInput{
		Start: date("2025-03-01"),
		End:   date("2025-03-10"),
		Mode:  domain.ScopeFinancial, // no costs anywhere
		Today: date("2025-03-10"),
	})
	for _, p := range points {
		assert.Equal(t, 0.0, p.PlanPct)
	}
}
