package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mfigueroa/obra/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// TaskPatch is a partial update: nil fields are left untouched.
// SetParent/SetActual gate the nullable columns so they can be cleared
// as well as changed.
type TaskPatch struct {
	Name           *string
	Type           *domain.TaskType
	Category       *string
	Subcategory    *string
	Subsubcategory *string
	Order          *float64
	PlanStart      *time.Time
	PlanEnd        *time.Time
	Progress       *int
	Cost           *float64
	Status         *domain.TaskStatus
	Color          *string

	SetParent bool
	ParentID  *string

	SetActual   bool
	ActualStart *time.Time
	ActualEnd   *time.Time

	Predecessors *[]string
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	UpdateFields(ctx context.Context, id string, patch TaskPatch) error
	UpdatePlanDates(ctx context.Context, id string, start, end time.Time) error
	UpdateActualDates(ctx context.Context, id string, start, end time.Time) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type ExpenseRepo interface {
	Create(ctx context.Context, e *domain.Expense) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.Expense, error)
	List(ctx context.Context) ([]*domain.Expense, error)
}
