package schedule

import "github.com/mfigueroa/obra/internal/domain"

// scopeOf returns a single task's contribution to total scope in the
// given mode: its cost, or its inclusive plan duration in days.
func scopeOf(t *domain.Task, mode domain.ScopeMode) float64 {
	if mode == domain.ScopeFinancial {
		return t.Cost
	}
	return float64(t.PlanDuration())
}

// DetectScopeMode picks the weighting unit for a task set: financial
// when any leaf carries a non-zero cost, physical (duration-based)
// otherwise.
func DetectScopeMode(leaves []*domain.Task) domain.ScopeMode {
	for _, t := range leaves {
		if t.Cost > 0 {
			return domain.ScopeFinancial
		}
	}
	return domain.ScopePhysical
}

// TotalScope sums the weighting unit over the leaf set.
func TotalScope(leaves []*domain.Task, mode domain.ScopeMode) float64 {
	var total float64
	for _, t := range leaves {
		total += scopeOf(t, mode)
	}
	return total
}

// WeightPct returns a task's share of total scope as a percentage.
// A non-positive total yields 0 for every task.
func WeightPct(t *domain.Task, total float64, mode domain.ScopeMode) float64 {
	if total <= 0 {
		return 0
	}
	return scopeOf(t, mode) / total * 100
}
