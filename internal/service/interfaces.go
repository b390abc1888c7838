package service

import (
	"context"
	"time"

	"github.com/mfigueroa/obra/internal/contract"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/repository"
	"github.com/mfigueroa/obra/internal/schedule"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, id string, patch repository.TaskPatch) error
}

type ExpenseService interface {
	Log(ctx context.Context, e *domain.Expense) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Expense, error)
}

// GanttService drives the interactive edit pipeline: drag gestures in,
// committed cascades out.
type GanttService interface {
	// Snapshot returns the latest task list for a project.
	Snapshot(ctx context.Context, projectID string) ([]*domain.Task, error)
	// CommitDrag runs the cascade against the latest snapshot and
	// persists the patch set. A drag with no net change is a no-op.
	CommitDrag(ctx context.Context, drag schedule.DragState) (*contract.CommitResult, error)
	// ShiftTask is the headless equivalent of a gesture: start a drag
	// on the given bar, move it by days, commit.
	ShiftTask(ctx context.Context, taskID string, bar domain.BarType, op domain.DragOp, days int) (*contract.CommitResult, error)
	// ApplyReorder persists a computed reorder plan.
	ApplyReorder(ctx context.Context, plan schedule.ReorderPlan) error
}

type ReportService interface {
	Curve(ctx context.Context, req contract.CurveRequest) (*contract.CurveResponse, error)
	Evm(ctx context.Context, projectID string, asOf time.Time) (*contract.EvmReport, error)
}
