package formatter

import (
	"fmt"
	"strings"

	"github.com/mfigueroa/obra/internal/contract"
	"github.com/mfigueroa/obra/internal/domain"
)

// curveSamples bounds the number of rows a curve prints; long project
// windows are downsampled to roughly this many.
const curveSamples = 20

// FormatCurve renders the cumulative plan/actual curves as paired bars,
// one row per sampled date.
func FormatCurve(res *contract.CurveResponse) string {
	if len(res.Points) == 0 {
		return Dim("No curve for an empty window.")
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("accumulation (%s)", res.Mode)))
	b.WriteString("\n")

	step := len(res.Points) / curveSamples
	if step < 1 {
		step = 1
	}
	for i := 0; i < len(res.Points); i += step {
		writeCurveRow(&b, res.Points[i])
	}
	// The closing sample always prints so the endpoint is visible.
	if (len(res.Points)-1)%step != 0 {
		writeCurveRow(&b, res.Points[len(res.Points)-1])
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s plan   %s actual\n",
		StyleBlue.Render(filledBlock), StyleGreen.Render(filledBlock)))
	return b.String()
}

func writeCurveRow(b *strings.Builder, p contract.SCurvePoint) {
	const barWidth = 40
	plan := int(p.PlanPct / 100 * barWidth)
	actual := int(p.ActualPct / 100 * barWidth)
	b.WriteString(fmt.Sprintf("%s  %s %5.1f%%  %s %5.1f%%\n",
		Dim(p.Date.Format(domain.DateLayout)),
		StyleBlue.Render(strings.Repeat(filledBlock, plan)+strings.Repeat(emptyBlock, barWidth-plan)),
		p.PlanPct,
		StyleGreen.Render(strings.Repeat(filledBlock, actual)+strings.Repeat(emptyBlock, barWidth-actual)),
		p.ActualPct))
}

// FormatEvm renders an earned-value report with colored health ratios.
func FormatEvm(r *contract.EvmReport) string {
	var b strings.Builder
	b.WriteString(Header("earned value"))
	b.WriteString("\n")

	money := func(label string, v float64) {
		b.WriteString(fmt.Sprintf("%-22s %12.2f\n", label, v))
	}
	money("Budget (BAC)", r.Budget)
	money("Planned value (PV)", r.PV)
	money("Earned value (EV)", r.EV)
	money("Actual cost (AC)", r.AC)
	money("Estimate at compl.", r.EAC)
	money("Estimate to compl.", r.ETC)

	b.WriteString(fmt.Sprintf("%-22s %s\n", "Cost perf. (CPI)", ratioLabel(r.CPI)))
	b.WriteString(fmt.Sprintf("%-22s %s\n", "Schedule perf. (SPI)", ratioLabel(r.SPI)))
	return b.String()
}

// ratioLabel colors an efficiency ratio: green at or above 1, yellow
// within 10% under, red below that.
func ratioLabel(v float64) string {
	s := fmt.Sprintf("%12.2f", v)
	switch {
	case v >= 1:
		return StyleGreen.Render(s)
	case v >= 0.9:
		return StyleYellow.Render(s)
	default:
		return StyleRed.Render(s)
	}
}
