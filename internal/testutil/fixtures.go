package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/repository"
)

// Date parses a YYYY-MM-DD fixture literal, failing the test on bad input.
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		t.Fatalf("bad fixture date %q: %v", s, err)
	}
	return d
}

// SeedProject inserts a project covering the given window and returns it.
func SeedProject(t *testing.T, repo repository.ProjectRepo, name, start, end string) *domain.Project {
	t.Helper()
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: Date(t, start),
		EndDate:   Date(t, end),
		Status:    domain.ProjectActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("seeding project: %v", err)
	}
	return p
}

// SeedTask inserts a leaf task with the given plan window and returns it.
// Mutate the returned value before calling repo.UpdateFields for variants.
func SeedTask(t *testing.T, repo repository.TaskRepo, projectID, name, start, end string, mutate func(*domain.Task)) *domain.Task {
	t.Helper()
	now := time.Now().UTC()
	task := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Type:      domain.TypeTask,
		Name:      name,
		Order:     1,
		PlanStart: Date(t, start),
		PlanEnd:   Date(t, end),
		Status:    domain.StatusNotStarted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if mutate != nil {
		mutate(task)
	}
	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("seeding task: %v", err)
	}
	return task
}
