package schedule

import (
	"testing"

	"github.com/mfigueroa/obra/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDetectScopeMode(t *testing.T) {
	costed := []*domain.Task{
		mkTask("a", "2025-03-01", "2025-03-05"),
		mkTask("b", "2025-03-06", "2025-03-10", withCost(500)),
	}
	assert.Equal(t, domain.ScopeFinancial, DetectScopeMode(costed))

	free := []*domain.Task{
		mkTask("a", "2025-03-01", "2025-03-05"),
		mkTask("b", "2025-03-06", "2025-03-10"),
	}
	assert.Equal(t, domain.ScopePhysical, DetectScopeMode(free))
}

func TestWeightPct_Financial(t *testing.T) {
	tasks := []*domain.Task{
		mkTask("a", "2025-03-01", "2025-03-05", withCost(100)),
		mkTask("b", "2025-03-06", "2025-03-10", withCost(300)),
	}
	total := TotalScope(tasks, domain.ScopeFinancial)
	assert.Equal(t, 400.0, total)
	assert.InDelta(t, 25.0, WeightPct(tasks[0], total, domain.ScopeFinancial), 1e-9)
	assert.InDelta(t, 75.0, WeightPct(tasks[1], total, domain.ScopeFinancial), 1e-9)
}

func TestWeightPct_PhysicalUsesInclusiveDuration(t *testing.T) {
	tasks := []*domain.Task{
		mkTask("a", "2025-03-01", "2025-03-05"), // 5 days
		mkTask("b", "2025-03-06", "2025-03-20"), // 15 days
	}
	total := TotalScope(tasks, domain.ScopePhysical)
	assert.Equal(t, 20.0, total)
	assert.InDelta(t, 25.0, WeightPct(tasks[0], total, domain.ScopePhysical), 1e-9)
}

func TestWeightPct_ZeroTotalGuard(t *testing.T) {
	task := mkTask("a", "2025-03-01", "2025-03-05", withCost(100))
	assert.Equal(t, 0.0, WeightPct(task, 0, domain.ScopeFinancial))
	assert.Equal(t, 0.0, WeightPct(task, -5, domain.ScopeFinancial))
}

func TestPlanDuration_DegenerateRangeClamps(t *testing.T) {
	inverted := mkTask("a", "2025-03-10", "2025-03-05")
	assert.Equal(t, 1, inverted.PlanDuration())
}
