package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueroa/obra/internal/contract"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/repository"
	"github.com/mfigueroa/obra/internal/testutil"
)

type reportFixture struct {
	taskRepo    *repository.SQLiteTaskRepo
	expenseRepo *repository.SQLiteExpenseRepo
	svc         ReportService
	project     *domain.Project
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	projectRepo := repository.NewSQLiteProjectRepo(db)
	taskRepo := repository.NewSQLiteTaskRepo(db)
	expenseRepo := repository.NewSQLiteExpenseRepo(db)
	project := testutil.SeedProject(t, projectRepo, "Clinic", "2025-01-01", "2025-01-10")
	return &reportFixture{
		taskRepo:    taskRepo,
		expenseRepo: expenseRepo,
		svc:         NewReportService(projectRepo, taskRepo, expenseRepo),
		project:     project,
	}
}

func (f *reportFixture) seedLeaves(t *testing.T) {
	group := testutil.SeedTask(t, f.taskRepo, f.project.ID, "Phase 1", "2025-01-01", "2025-01-10", func(task *domain.Task) {
		task.Type = domain.TypeGroup
		// Group cost must not count toward scope.
		task.Cost = 9999
	})
	testutil.SeedTask(t, f.taskRepo, f.project.ID, "Demolition", "2025-01-01", "2025-01-05", func(task *domain.Task) {
		task.ParentID = &group.ID
		task.Cost = 600
		task.Progress = 100
		start := testutil.Date(t, "2025-01-01")
		end := testutil.Date(t, "2025-01-05")
		task.ActualStart = &start
		task.ActualEnd = &end
		task.Status = domain.StatusCompleted
	})
	testutil.SeedTask(t, f.taskRepo, f.project.ID, "Rough-in", "2025-01-06", "2025-01-10", func(task *domain.Task) {
		task.ParentID = &group.ID
		task.Cost = 400
	})
}

func TestReportServiceCurveDefaultsToProjectWindow(t *testing.T) {
	f := newReportFixture(t)
	f.seedLeaves(t)

	res, err := f.svc.Curve(context.Background(), contract.CurveRequest{
		ProjectID: f.project.ID,
		Today:     testutil.Date(t, "2025-01-10"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ScopeFinancial, res.Mode)
	// Zero point plus one sample per day of the project window.
	require.Len(t, res.Points, 11)

	assert.Equal(t, testutil.Date(t, "2025-01-01"), res.Points[0].Date)
	assert.Zero(t, res.Points[0].PlanPct)

	// First leaf is fully planned and fully achieved by Jan 5.
	assert.InDelta(t, 60, res.Points[5].PlanPct, 0.001)
	assert.InDelta(t, 60, res.Points[5].ActualPct, 0.001)

	last := res.Points[len(res.Points)-1]
	assert.InDelta(t, 100, last.PlanPct, 0.001)
	assert.InDelta(t, 60, last.ActualPct, 0.001)
}

func TestReportServiceCurveModeOverride(t *testing.T) {
	f := newReportFixture(t)
	f.seedLeaves(t)

	res, err := f.svc.Curve(context.Background(), contract.CurveRequest{
		ProjectID: f.project.ID,
		Mode:      domain.ScopePhysical,
		Today:     testutil.Date(t, "2025-01-10"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ScopePhysical, res.Mode)
	// Each of the two leaves weighs 50 regardless of cost.
	assert.InDelta(t, 50, res.Points[5].PlanPct, 0.001)
	assert.InDelta(t, 50, res.Points[len(res.Points)-1].ActualPct, 0.001)
}

func TestReportServiceCurveUnknownProject(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.svc.Curve(context.Background(), contract.CurveRequest{ProjectID: "nope"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReportServiceEvm(t *testing.T) {
	f := newReportFixture(t)
	f.seedLeaves(t)
	ctx := context.Background()

	logExpense := func(date string, amount float64) {
		err := f.expenseRepo.Create(ctx, &domain.Expense{
			ID:        date + "-exp",
			ProjectID: f.project.ID,
			Date:      testutil.Date(t, date),
			Amount:    amount,
		})
		require.NoError(t, err)
	}
	logExpense("2025-01-03", 500)
	logExpense("2025-01-09", 100) // after asOf, excluded from AC

	report, err := f.svc.Evm(ctx, f.project.ID, testutil.Date(t, "2025-01-08"))
	require.NoError(t, err)

	assert.InDelta(t, 1000, report.Budget, 0.001)
	// Demolition window has fully elapsed; Rough-in is 3 of 5 days in.
	assert.InDelta(t, 840, report.PV, 0.001)
	assert.InDelta(t, 600, report.EV, 0.001)
	assert.InDelta(t, 500, report.AC, 0.001)
	assert.InDelta(t, 1.2, report.CPI, 0.001)
	assert.InDelta(t, 600.0/840.0, report.SPI, 0.001)
	assert.InDelta(t, 1000/1.2, report.EAC, 0.001)
	assert.InDelta(t, 1000/1.2-500, report.ETC, 0.001)
}
