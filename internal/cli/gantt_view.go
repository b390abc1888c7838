package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mfigueroa/obra/internal/cli/formatter"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/schedule"
)

const ganttNameWidth = 26

var (
	styleBarPlan     = lipgloss.NewStyle().Foreground(formatter.ColorBlue)
	styleBarActual   = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	styleBarDragging = lipgloss.NewStyle().Foreground(formatter.ColorYellow)
	styleBarGroup    = lipgloss.NewStyle().Foreground(formatter.ColorPurple)
	styleCursor      = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
)

// timeline maps the project window onto the character lane next to the
// name column, scaled so the full window fits the terminal width.
func (m ganttModel) timeline() schedule.Timeline {
	lane := m.width - ganttNameWidth - 2
	if lane < 10 {
		lane = 10
	}
	tl := schedule.Timeline{
		Start: domain.Day(m.project.StartDate),
		End:   domain.Day(m.project.EndDate),
		Mode:  m.viewMode,
	}
	switch m.viewMode {
	case domain.ViewDay:
		tl.CellWidth = 2
	case domain.ViewWeek:
		tl.CellWidth = 7 * float64(lane) / float64(tl.TotalDays())
	default:
		tl.CellWidth = 30.44 * float64(lane) / float64(tl.TotalDays())
	}
	return tl
}

func (m ganttModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	bar := "plan"
	if m.bar == domain.BarActual {
		bar = "actual"
	}
	b.WriteString(formatter.Header(fmt.Sprintf("%s  %s  [%s · %s]",
		m.project.DisplayID(), m.project.Name, m.viewMode, bar)))
	b.WriteString("\n")

	tl := m.timeline()
	laneWidth := int(tl.TotalWidth())

	for i, node := range m.rows {
		b.WriteString(m.renderRow(tl, laneWidth, node, i == m.cursor))
		b.WriteString("\n")
	}
	if len(m.rows) == 0 {
		b.WriteString(formatter.Dim("No tasks. Add some with `obra task add`.") + "\n")
	}

	b.WriteString("\n")
	if m.drag != nil {
		b.WriteString(styleBarDragging.Render(fmt.Sprintf("editing %s: %s → %s  (enter commits, esc discards)",
			m.drag.Op,
			m.drag.CurrentStart.Format(domain.DateLayout),
			m.drag.CurrentEnd.Format(domain.DateLayout))))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(formatter.Dim(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m ganttModel) renderRow(tl schedule.Timeline, laneWidth int, node *schedule.TreeNode, selected bool) string {
	t := node.Task

	name := strings.Repeat(" ", nodeDepth(m.forest, t)*2) + t.Name
	if len(name) > ganttNameWidth {
		name = name[:ganttNameWidth-1] + "…"
	}
	name = fmt.Sprintf("%-*s", ganttNameWidth, name)
	if selected {
		name = styleCursor.Render(name)
	} else if node.Kind == schedule.KindGroup {
		name = formatter.Bold(name)
	}

	start, end, ok := m.rowDates(node)
	if !ok {
		return name + "  " + formatter.Dim("(no dates)")
	}

	dragging := m.drag != nil && m.drag.TaskID == t.ID
	if dragging {
		start, end = m.drag.CurrentStart, m.drag.CurrentEnd
	}

	bar := tl.BarFor(start, end)
	lane := renderLane(bar, laneWidth, m.barStyle(node, dragging))
	return name + "  " + lane
}

// rowDates picks the dates a row renders: rolled-up extents for groups,
// the selected bar's range for leaves.
func (m ganttModel) rowDates(node *schedule.TreeNode) (time.Time, time.Time, bool) {
	t := node.Task
	if node.Kind == schedule.KindGroup {
		sum := schedule.Rollup(m.forest, t.ID)
		if sum.MinStart == nil || sum.MaxEnd == nil {
			return time.Time{}, time.Time{}, false
		}
		return *sum.MinStart, *sum.MaxEnd, true
	}
	if m.bar == domain.BarActual {
		if t.ActualStart == nil {
			return time.Time{}, time.Time{}, false
		}
		end := *t.ActualStart
		if ae := t.EffectiveActualEnd(); ae != nil {
			end = *ae
		}
		return *t.ActualStart, end, true
	}
	return t.PlanStart, t.PlanEnd, true
}

func (m ganttModel) barStyle(node *schedule.TreeNode, dragging bool) lipgloss.Style {
	switch {
	case dragging:
		return styleBarDragging
	case node.Kind == schedule.KindGroup:
		return styleBarGroup
	case m.bar == domain.BarActual:
		return styleBarActual
	default:
		// A task's stored color wins over the default plan blue.
		hex := domain.CoalesceStr(node.Task.Color, string(formatter.ColorBlue))
		return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
}

// renderLane paints a bar into a fixed-width character lane.
func renderLane(bar schedule.Bar, laneWidth int, style lipgloss.Style) string {
	if laneWidth < 1 {
		laneWidth = 1
	}
	if !bar.Visible {
		return strings.Repeat("·", laneWidth)
	}
	x := int(bar.X)
	w := int(bar.Width)
	if w < 1 {
		w = 1
	}
	if x < 0 {
		w += x
		x = 0
	}
	if x > laneWidth {
		x = laneWidth
	}
	if x+w > laneWidth {
		w = laneWidth - x
	}
	if w < 0 {
		w = 0
	}
	return strings.Repeat("·", x) +
		style.Render(strings.Repeat("█", w)) +
		strings.Repeat("·", laneWidth-x-w)
}

// nodeDepth counts parent edges for indentation.
func nodeDepth(f *schedule.Forest, t *domain.Task) int {
	depth := 0
	for cur := t; cur.ParentID != nil; {
		parent := f.Node(*cur.ParentID)
		if parent == nil {
			break
		}
		depth++
		cur = parent.Task
	}
	return depth
}
