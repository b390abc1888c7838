package formatter

import (
	"fmt"
	"strings"

	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/schedule"
)

// FormatProjectList renders projects as an aligned table.
func FormatProjectList(projects []*domain.Project) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		status := StyleDim.Render(string(p.Status))
		if p.Status == domain.ProjectActive {
			status = StyleGreen.Render(string(p.Status))
		}
		rows = append(rows, []string{
			Bold(p.DisplayID()),
			p.Name,
			p.StartDate.Format(domain.DateLayout),
			p.EndDate.Format(domain.DateLayout),
			status,
		})
	}
	return RenderTable([]string{"ID", "NAME", "START", "END", "STATUS"}, rows)
}

// FormatTaskTree renders a project's tasks as an indented tree with
// plan dates, cost and rolled-up progress. Group rows show derived
// values from their leaf descendants, never their stored dates.
func FormatTaskTree(f *schedule.Forest) string {
	var b strings.Builder
	var walk func(nodes []*schedule.TreeNode, depth int)
	walk = func(nodes []*schedule.TreeNode, depth int) {
		for _, n := range nodes {
			b.WriteString(formatTaskRow(f, n, depth))
			b.WriteString("\n")
			walk(n.Children, depth+1)
		}
	}
	walk(f.Roots, 0)
	if b.Len() == 0 {
		return Dim("No tasks.")
	}
	return b.String()
}

func formatTaskRow(f *schedule.Forest, n *schedule.TreeNode, depth int) string {
	t := n.Task
	indent := strings.Repeat("  ", depth)

	if n.Kind == schedule.KindGroup {
		sum := schedule.Rollup(f, t.ID)
		dates := Dim("(empty)")
		if sum.MinStart != nil && sum.MaxEnd != nil {
			dates = fmt.Sprintf("%s → %s",
				sum.MinStart.Format(domain.DateLayout),
				sum.MaxEnd.Format(domain.DateLayout))
		}
		return fmt.Sprintf("%s%s  %s  %s  %s",
			indent,
			StyleHeader.Render("▸ "+t.Name),
			dates,
			Dim(fmt.Sprintf("$%.0f", sum.TotalCost)),
			RenderProgress(float64(sum.Progress), 10))
	}

	name := t.Name
	if depth == 0 && t.Category != "" {
		name = fmt.Sprintf("%s %s", Dim(t.Category+" /"), t.Name)
	}
	return fmt.Sprintf("%s%s  %s → %s  %s  %s  %s",
		indent,
		name,
		t.PlanStart.Format(domain.DateLayout),
		t.PlanEnd.Format(domain.DateLayout),
		Dim(fmt.Sprintf("$%.0f", t.Cost)),
		RenderProgress(float64(t.Progress), 10),
		StatusLabel(t.Status))
}

// FormatCategoryGroups renders the orthogonal category view: tasks
// bucketed by their category path, subtrees travelling with their root.
func FormatCategoryGroups(f *schedule.Forest, groups []*schedule.CategoryGroup) string {
	var b strings.Builder
	var walk func(groups []*schedule.CategoryGroup, depth int)
	walk = func(groups []*schedule.CategoryGroup, depth int) {
		for _, g := range groups {
			name := g.Name
			if name == "" {
				name = "(uncategorized)"
			}
			b.WriteString(strings.Repeat("  ", depth))
			b.WriteString(Header(name))
			b.WriteString("\n")
			var subtree func(n *schedule.TreeNode, d int)
			subtree = func(n *schedule.TreeNode, d int) {
				b.WriteString(formatTaskRow(f, n, d))
				b.WriteString("\n")
				for _, c := range n.Children {
					subtree(c, d+1)
				}
			}
			for _, n := range g.Nodes {
				subtree(n, depth+1)
			}
			walk(g.Sub, depth+1)
		}
	}
	walk(groups, 0)
	if b.Len() == 0 {
		return Dim("No tasks.")
	}
	return b.String()
}

// FormatExpenseList renders booked expenses as an aligned table with a
// running total row.
func FormatExpenseList(expenses []*domain.Expense) string {
	if len(expenses) == 0 {
		return Dim("No expenses booked.")
	}
	rows := make([][]string, 0, len(expenses)+1)
	var total float64
	for _, e := range expenses {
		total += e.Amount
		rows = append(rows, []string{
			e.Date.Format(domain.DateLayout),
			fmt.Sprintf("%.2f", e.Amount),
			e.CostCode,
			e.Description,
		})
	}
	rows = append(rows, []string{Dim("total"), Bold(fmt.Sprintf("%.2f", total)), "", ""})
	return RenderTable([]string{"DATE", "AMOUNT", "CODE", "DESCRIPTION"}, rows)
}
