package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = domain.ProjectActive
	}
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, activeOnly bool) ([]*domain.Project, error) {
	return s.projects.List(ctx, activeOnly)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

type expenseService struct {
	expenses repository.ExpenseRepo
}

func NewExpenseService(expenses repository.ExpenseRepo) ExpenseService {
	return &expenseService{expenses: expenses}
}

func (s *expenseService) Log(ctx context.Context, e *domain.Expense) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.CreatedAt = time.Now().UTC()
	return s.expenses.Create(ctx, e)
}

func (s *expenseService) ListByProject(ctx context.Context, projectID string) ([]*domain.Expense, error) {
	return s.expenses.ListByProject(ctx, projectID)
}
