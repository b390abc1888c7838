package domain

import "time"

type Task struct {
	ID        string
	ProjectID string
	ParentID  *string
	Type      TaskType
	Name      string

	// Grouping path, orthogonal to the parent/child tree.
	Category       string
	Subcategory    string
	Subsubcategory string

	// Order is a real-valued sibling sort key within (parent, category).
	// Fractional values let a row be inserted between neighbors without
	// renumbering the rest.
	Order float64

	PlanStart time.Time
	PlanEnd   time.Time

	ActualStart *time.Time
	ActualEnd   *time.Time

	Progress int // percent, 0-100
	Cost     float64
	Status   TaskStatus

	// Predecessors lists task IDs whose finish gates this task's start.
	Predecessors []string

	Color string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlanDuration returns the inclusive plan length in days. Pre-existing
// degenerate ranges (end before start) are tolerated as a single day.
func (t *Task) PlanDuration() int {
	d := DaysBetween(t.PlanStart, t.PlanEnd) + 1
	if d < 1 {
		return 1
	}
	return d
}

// IsRoot reports whether the task sits at the top of the parent/child
// forest within its project.
func (t *Task) IsRoot() bool {
	return t.ParentID == nil || *t.ParentID == ""
}

// EffectiveActualEnd returns the date the task's actual bar runs to:
// the recorded actual end if set, otherwise a projection from actual
// start and progress against the plan duration, otherwise the actual
// start itself. Returns nil when no actual start is recorded.
func (t *Task) EffectiveActualEnd() *time.Time {
	if t.ActualEnd != nil {
		return t.ActualEnd
	}
	if t.ActualStart == nil {
		return nil
	}
	if t.Progress > 0 {
		days := int(float64(t.PlanDuration())*float64(t.Progress)/100 + 0.5)
		if days < 1 {
			days = 1
		}
		end := AddDays(*t.ActualStart, days-1)
		return &end
	}
	return t.ActualStart
}

// CategoryPath returns the non-empty grouping path components in order.
func (t *Task) CategoryPath() []string {
	var path []string
	for _, c := range []string{t.Category, t.Subcategory, t.Subsubcategory} {
		if c == "" {
			break
		}
		path = append(path, c)
	}
	return path
}
