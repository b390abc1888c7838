package service

import (
	"context"
	"time"

	"github.com/mfigueroa/obra/internal/contract"
	"github.com/mfigueroa/obra/internal/repository"
	"github.com/mfigueroa/obra/internal/schedule"
)

type reportService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	expenses repository.ExpenseRepo
}

func NewReportService(projects repository.ProjectRepo, tasks repository.TaskRepo, expenses repository.ExpenseRepo) ReportService {
	return &reportService{projects: projects, tasks: tasks, expenses: expenses}
}

func (s *reportService) Curve(ctx context.Context, req contract.CurveRequest) (*contract.CurveResponse, error) {
	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	leaves := schedule.BuildForest(tasks).Leaves()

	mode := req.Mode
	if mode == "" {
		mode = schedule.DetectScopeMode(leaves)
	}
	start := project.StartDate
	if req.Start != nil {
		start = *req.Start
	}
	end := project.EndDate
	if req.End != nil {
		end = *req.End
	}
	today := req.Today
	if today.IsZero() {
		today = time.Now().UTC()
	}

	points := schedule.Accumulate(leaves, schedule.AccumulationInput{
		Start: start,
		End:   end,
		Mode:  mode,
		Today: today,
	})
	return &contract.CurveResponse{
		ProjectID: req.ProjectID,
		Mode:      mode,
		Points:    points,
	}, nil
}

func (s *reportService) Evm(ctx context.Context, projectID string, asOf time.Time) (*contract.EvmReport, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	report := schedule.ComputeEvm(schedule.EvmInput{
		Tasks:    schedule.BuildForest(tasks).Leaves(),
		Expenses: expenses,
		AsOf:     asOf,
	})
	return &report, nil
}
