package service

import (
	"context"
	"time"

	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/repository"
)

// SeedDemoProject creates a small construction project so the gantt
// view and reports render out of the box. Returns the new project.
func SeedDemoProject(ctx context.Context, projects ProjectService, tasks TaskService, expenses ExpenseService) (*domain.Project, error) {
	start := domain.Day(time.Now().UTC())

	p := &domain.Project{
		Code:      "DEMO01",
		Name:      "Demo: Riverside Warehouse",
		StartDate: start,
		EndDate:   domain.AddDays(start, 119),
		Status:    domain.ProjectActive,
	}
	if err := projects.Create(ctx, p); err != nil {
		return nil, err
	}

	day := func(n int) time.Time { return domain.AddDays(start, n) }

	structure := &domain.Task{
		ProjectID: p.ID,
		Type:      domain.TypeGroup,
		Name:      "Structure",
		Category:  "Structure",
		PlanStart: day(0),
		PlanEnd:   day(59),
	}
	if err := tasks.Create(ctx, structure); err != nil {
		return nil, err
	}

	excavation := &domain.Task{
		ProjectID: p.ID, ParentID: &structure.ID, Type: domain.TypeTask,
		Name: "Excavation", Category: "Structure", Subcategory: "Sitework",
		PlanStart: day(0), PlanEnd: day(13), Cost: 42000,
	}
	foundations := &domain.Task{
		ProjectID: p.ID, ParentID: &structure.ID, Type: domain.TypeTask,
		Name: "Foundations", Category: "Structure", Subcategory: "Concrete",
		PlanStart: day(14), PlanEnd: day(34), Cost: 88000,
	}
	framing := &domain.Task{
		ProjectID: p.ID, ParentID: &structure.ID, Type: domain.TypeTask,
		Name: "Steel framing", Category: "Structure", Subcategory: "Steel",
		PlanStart: day(35), PlanEnd: day(59), Cost: 120000,
	}
	roofing := &domain.Task{
		ProjectID: p.ID, Type: domain.TypeTask,
		Name: "Roofing", Category: "Envelope",
		PlanStart: day(60), PlanEnd: day(79), Cost: 64000,
	}
	finishes := &domain.Task{
		ProjectID: p.ID, Type: domain.TypeTask,
		Name: "Interior finishes", Category: "Finishes",
		PlanStart: day(80), PlanEnd: day(119), Cost: 95000,
	}

	for _, task := range []*domain.Task{excavation, foundations, framing, roofing, finishes} {
		if err := tasks.Create(ctx, task); err != nil {
			return nil, err
		}
	}

	// Finish-to-start chain through the build sequence.
	chain := []*domain.Task{excavation, foundations, framing, roofing, finishes}
	for i := 1; i < len(chain); i++ {
		preds := []string{chain[i-1].ID}
		if err := tasks.Update(ctx, chain[i].ID, repository.TaskPatch{Predecessors: &preds}); err != nil {
			return nil, err
		}
	}

	if err := expenses.Log(ctx, &domain.Expense{
		ProjectID:   p.ID,
		Date:        day(7),
		Amount:      18500,
		Description: "Earthworks subcontractor, first draw",
		CostCode:    "02-300",
	}); err != nil {
		return nil, err
	}

	return p, nil
}
