package schedule

import (
	"time"

	"github.com/mfigueroa/obra/internal/domain"
)

// EvmInput carries everything the earned-value computation needs.
// Tasks must be leaves; AsOf is the evaluation date (normally today).
type EvmInput struct {
	Tasks    []*domain.Task
	Expenses []*domain.Expense
	AsOf     time.Time
}

// EvmReport holds the standard earned-value metrics. All ratios guard
// their denominator and report 0 instead of NaN or Inf.
type EvmReport struct {
	Budget float64 // total planned cost over the leaf set
	PV     float64 // planned value: cost x time-elapsed fraction
	EV     float64 // earned value: cost x progress
	AC     float64 // actual cost: booked expenses through AsOf
	CPI    float64 // EV/AC
	SPI    float64 // EV/PV
	EAC    float64 // budget/CPI, or budget when CPI is 0
	ETC    float64 // max(0, EAC-AC)
}

// ComputeEvm evaluates earned-value metrics as of a single date.
func ComputeEvm(in EvmInput) EvmReport {
	var r EvmReport
	asOf := domain.Day(in.AsOf)

	for _, t := range in.Tasks {
		r.Budget += t.Cost
		r.PV += t.Cost * elapsedFraction(t, asOf)
		r.EV += t.Cost * float64(t.Progress) / 100
	}
	for _, e := range in.Expenses {
		if !domain.Day(e.Date).After(asOf) {
			r.AC += e.Amount
		}
	}

	if r.AC > 0 {
		r.CPI = r.EV / r.AC
	}
	if r.PV > 0 {
		r.SPI = r.EV / r.PV
	}
	if r.CPI > 0 {
		r.EAC = r.Budget / r.CPI
	} else {
		r.EAC = r.Budget
	}
	etc := r.EAC - r.AC
	if etc < 0 {
		etc = 0
	}
	r.ETC = etc
	return r
}

// elapsedFraction returns how much of a task's plan window has passed:
// 0 before the start, 1 after the end, linear in between.
func elapsedFraction(t *domain.Task, asOf time.Time) float64 {
	start, end := domain.Day(t.PlanStart), domain.Day(t.PlanEnd)
	if asOf.Before(start) {
		return 0
	}
	if !asOf.Before(end) {
		return 1
	}
	duration := float64(t.PlanDuration())
	elapsed := float64(domain.DaysBetween(start, asOf) + 1)
	return elapsed / duration
}
