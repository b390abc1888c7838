package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/repository"
	"github.com/mfigueroa/obra/internal/schedule"
)

type taskService struct {
	tasks repository.TaskRepo
}

func NewTaskService(tasks repository.TaskRepo) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Type == "" {
		t.Type = domain.TypeTask
	}
	if t.Status == "" {
		t.Status = domain.StatusNotStarted
	}
	if t.PlanEnd.Before(t.PlanStart) {
		t.PlanEnd = t.PlanStart
	}
	if t.Order == 0 {
		// New tasks land at the end of their sibling scope.
		siblings, err := s.tasks.ListByProject(ctx, t.ProjectID)
		if err != nil {
			return err
		}
		t.Order = schedule.NextSiblingOrder(siblings, t.ParentID, t.Category)
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) Update(ctx context.Context, id string, patch repository.TaskPatch) error {
	return s.tasks.UpdateFields(ctx, id, patch)
}
