package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mfigueroa/obra/internal/contract"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/repository"
	"github.com/mfigueroa/obra/internal/schedule"
)

// dependencyCommitPause is a short delay before committing a cascade
// that touched dependency successors, so the user can see what is
// about to move. It has no correctness role.
const dependencyCommitPause = 600 * time.Millisecond

type ganttService struct {
	tasks repository.TaskRepo
	// pause is overridable so tests commit instantly.
	pause time.Duration
}

func NewGanttService(tasks repository.TaskRepo) GanttService {
	return &ganttService{tasks: tasks, pause: dependencyCommitPause}
}

func (s *ganttService) Snapshot(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *ganttService) CommitDrag(ctx context.Context, drag schedule.DragState) (*contract.CommitResult, error) {
	if !drag.Changed() {
		return &contract.CommitResult{}, nil
	}

	dragged, err := s.tasks.GetByID(ctx, drag.TaskID)
	if err != nil {
		return nil, err
	}

	// The cascade must run against the latest snapshot, never one
	// captured when the gesture began.
	snapshot, err := s.tasks.ListByProject(ctx, dragged.ProjectID)
	if err != nil {
		return nil, err
	}

	res := schedule.Propagate(snapshot, drag)
	if len(res.Patches) == 0 {
		return &contract.CommitResult{}, nil
	}

	applyToProjection(snapshot, res.Patches)

	if res.DependencyTouched && s.pause > 0 {
		select {
		case <-time.After(s.pause):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := s.writePatches(ctx, res.Patches); err != nil {
		// No partial rollback: the caller resynchronizes from the
		// store, which is authoritative after any failure.
		return nil, err
	}

	tasks, err := s.tasks.ListByProject(ctx, dragged.ProjectID)
	if err != nil {
		return nil, err
	}
	return &contract.CommitResult{
		Patches:           res.Patches,
		DependencyTouched: res.DependencyTouched,
		CycleIDs:          res.CycleIDs,
		Tasks:             tasks,
	}, nil
}

func (s *ganttService) ShiftTask(ctx context.Context, taskID string, bar domain.BarType, op domain.DragOp, days int) (*contract.CommitResult, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.tasks.ListByProject(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}

	drag := schedule.StartDrag(schedule.BuildForest(snapshot), task, bar, op)
	drag.Update(days)
	return s.CommitDrag(ctx, drag)
}

func (s *ganttService) ApplyReorder(ctx context.Context, plan schedule.ReorderPlan) error {
	patch := repository.TaskPatch{
		Order:          &plan.NewOrder,
		SetParent:      true,
		ParentID:       plan.NewParentID,
		Category:       &plan.Category,
		Subcategory:    &plan.Subcategory,
		Subsubcategory: &plan.Subsubcategory,
	}
	return s.tasks.UpdateFields(ctx, plan.TaskID, patch)
}

// writePatches issues all date updates concurrently and awaits them
// together. There is no transaction; a partial failure leaves the
// store ahead of some patches and behind others, and the caller must
// re-fetch to resynchronize.
func (s *ganttService) writePatches(ctx context.Context, patches []schedule.DatePatch) error {
	var wg sync.WaitGroup
	errs := make([]error, len(patches))
	for i, p := range patches {
		wg.Add(1)
		go func(i int, p schedule.DatePatch) {
			defer wg.Done()
			if p.Bar == domain.BarActual {
				errs[i] = s.tasks.UpdateActualDates(ctx, p.TaskID, p.Start, p.End)
			} else {
				errs[i] = s.tasks.UpdatePlanDates(ctx, p.TaskID, p.Start, p.End)
			}
		}(i, p)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return fmt.Errorf("committing cascade: %w", err)
		}
	}
	return nil
}

// applyToProjection mirrors the patch set onto the in-memory snapshot
// so callers holding it render the post-commit state immediately.
func applyToProjection(snapshot []*domain.Task, patches []schedule.DatePatch) {
	byID := make(map[string]*domain.Task, len(snapshot))
	for _, t := range snapshot {
		byID[t.ID] = t
	}
	for _, p := range patches {
		t := byID[p.TaskID]
		if t == nil {
			continue
		}
		if p.Bar == domain.BarActual {
			start, end := p.Start, p.End
			t.ActualStart = &start
			t.ActualEnd = &end
		} else {
			t.PlanStart = p.Start
			t.PlanEnd = p.End
		}
	}
}
