package domain

type TaskType string

const (
	TypeTask  TaskType = "task"
	TypeGroup TaskType = "group"
)

type TaskStatus string

const (
	StatusNotStarted TaskStatus = "not-started"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCompleted ProjectStatus = "completed"
)

type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// BarType identifies which date range of a task a gesture operates on.
type BarType string

const (
	BarPlan   BarType = "plan"
	BarActual BarType = "actual"
)

// DragOp is the kind of in-progress edit on a bar.
type DragOp string

const (
	OpMove        DragOp = "move"
	OpResizeLeft  DragOp = "resize-left"
	OpResizeRight DragOp = "resize-right"
)

// DropZone classifies where a row was dropped relative to its target.
type DropZone string

const (
	DropAbove DropZone = "above"
	DropBelow DropZone = "below"
	DropChild DropZone = "child"
)

// ScopeMode selects the unit used to normalize accumulation curves.
type ScopeMode string

const (
	ScopeFinancial ScopeMode = "financial"
	ScopePhysical  ScopeMode = "physical"
)
