package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/repository"
	"github.com/mfigueroa/obra/internal/service"
	"github.com/mfigueroa/obra/internal/testutil"
)

type cliFixture struct {
	app     *App
	repo    *repository.SQLiteTaskRepo
	project *domain.Project
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	projectRepo := repository.NewSQLiteProjectRepo(db)
	taskRepo := repository.NewSQLiteTaskRepo(db)
	expenseRepo := repository.NewSQLiteExpenseRepo(db)

	app := &App{
		Projects: service.NewProjectService(projectRepo),
		Tasks:    service.NewTaskService(taskRepo),
		Expenses: service.NewExpenseService(expenseRepo),
		Gantt:    service.NewGanttService(taskRepo),
		Reports:  service.NewReportService(projectRepo, taskRepo, expenseRepo),
	}
	project := testutil.SeedProject(t, projectRepo, "Warehouse", "2025-01-01", "2025-03-31")
	return &cliFixture{app: app, repo: taskRepo, project: project}
}

func (f *cliFixture) model(t *testing.T) ganttModel {
	t.Helper()
	tasks, err := f.app.Gantt.Snapshot(context.Background(), f.project.ID)
	require.NoError(t, err)
	return newGanttModel(f.app, f.project, tasks)
}

func keyMsg(typ tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: typ}
}

func step(t *testing.T, m ganttModel, msg tea.Msg) ganttModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(ganttModel)
	require.True(t, ok)
	return out
}

func TestGanttModelArrowStartsMoveGesture(t *testing.T) {
	f := newCLIFixture(t)
	task := testutil.SeedTask(t, f.repo, f.project.ID, "Excavation", "2025-01-06", "2025-01-10", nil)
	m := f.model(t)

	m = step(t, m, keyMsg(tea.KeyRight))
	require.NotNil(t, m.drag)
	assert.Equal(t, task.ID, m.drag.TaskID)
	assert.Equal(t, domain.OpMove, m.drag.Op)
	assert.Equal(t, testutil.Date(t, "2025-01-07"), m.drag.CurrentStart)

	// Deltas accumulate and can back off past the origin.
	m = step(t, m, keyMsg(tea.KeyRight))
	m = step(t, m, keyMsg(tea.KeyLeft))
	m = step(t, m, keyMsg(tea.KeyLeft))
	assert.Equal(t, testutil.Date(t, "2025-01-06"), m.drag.CurrentStart)
	assert.False(t, m.drag.Changed())
}

func TestGanttModelEscDiscardsGesture(t *testing.T) {
	f := newCLIFixture(t)
	task := testutil.SeedTask(t, f.repo, f.project.ID, "Excavation", "2025-01-06", "2025-01-10", nil)
	m := f.model(t)

	m = step(t, m, keyMsg(tea.KeyRight))
	require.NotNil(t, m.drag)
	m = step(t, m, keyMsg(tea.KeyEsc))
	assert.Nil(t, m.drag)

	got, err := f.repo.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(t, "2025-01-06"), got.PlanStart)
}

func TestGanttModelCommitPersistsGesture(t *testing.T) {
	f := newCLIFixture(t)
	task := testutil.SeedTask(t, f.repo, f.project.ID, "Excavation", "2025-01-06", "2025-01-10", nil)
	m := f.model(t)

	m = step(t, m, keyMsg(tea.KeyRight))
	m = step(t, m, keyMsg(tea.KeyRight))
	m = step(t, m, keyMsg(tea.KeyEnter))

	assert.Nil(t, m.drag)
	assert.Contains(t, m.status, "updated 1 task")

	got, err := f.repo.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(t, "2025-01-08"), got.PlanStart)
	assert.Equal(t, testutil.Date(t, "2025-01-12"), got.PlanEnd)

	// The model keeps rendering from the re-fetched snapshot.
	assert.Equal(t, testutil.Date(t, "2025-01-08"), m.rows[0].Task.PlanStart)
}

func TestGanttModelRejectsMixedGestures(t *testing.T) {
	f := newCLIFixture(t)
	testutil.SeedTask(t, f.repo, f.project.ID, "Excavation", "2025-01-06", "2025-01-10", nil)
	m := f.model(t)

	m = step(t, m, keyMsg(tea.KeyRight))
	before := m.drag.CurrentEnd
	m = step(t, m, keyMsg(tea.KeyShiftRight))
	assert.Equal(t, domain.OpMove, m.drag.Op)
	assert.Contains(t, m.status, "finish or discard")
	assert.Equal(t, before, m.drag.CurrentEnd)
}

func TestGanttModelGroupOnlyMoves(t *testing.T) {
	f := newCLIFixture(t)
	group := testutil.SeedTask(t, f.repo, f.project.ID, "Structure", "2025-01-01", "2025-01-31", func(task *domain.Task) {
		task.Type = domain.TypeGroup
	})
	testutil.SeedTask(t, f.repo, f.project.ID, "Rebar", "2025-01-06", "2025-01-10", func(task *domain.Task) {
		task.ParentID = &group.ID
	})
	m := f.model(t)

	// Cursor starts on the group row.
	m = step(t, m, keyMsg(tea.KeyShiftRight))
	assert.Nil(t, m.drag)
	assert.Contains(t, m.status, "groups only move")

	m = step(t, m, keyMsg(tea.KeyRight))
	require.NotNil(t, m.drag)
	assert.Equal(t, group.ID, m.drag.TaskID)
	assert.Equal(t, []string{m.rows[1].Task.ID}, m.drag.AffectedDescendants)
}

func TestGanttModelTabTogglesBar(t *testing.T) {
	f := newCLIFixture(t)
	testutil.SeedTask(t, f.repo, f.project.ID, "Excavation", "2025-01-06", "2025-01-10", nil)
	m := f.model(t)

	m = step(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, domain.BarActual, m.bar)

	// Locked while a gesture is active.
	m = step(t, m, keyMsg(tea.KeyTab))
	m = step(t, m, keyMsg(tea.KeyRight))
	m = step(t, m, keyMsg(tea.KeyTab))
	assert.Equal(t, domain.BarPlan, m.bar)
}

func TestGanttModelViewRendersRows(t *testing.T) {
	f := newCLIFixture(t)
	testutil.SeedTask(t, f.repo, f.project.ID, "Excavation", "2025-01-06", "2025-01-10", nil)
	testutil.SeedTask(t, f.repo, f.project.ID, "Foundations", "2025-01-11", "2025-01-20", func(task *domain.Task) {
		task.Order = 2
	})
	m := f.model(t)
	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Excavation")
	assert.Contains(t, view, "Foundations")
	assert.Contains(t, view, "WAREHOUSE")

	// Cursor movement changes the selected row, not the schedule.
	m = step(t, m, keyMsg(tea.KeyDown))
	assert.Equal(t, 1, m.cursor)
}

func TestResolveProjectByCodeAndPrefix(t *testing.T) {
	f := newCLIFixture(t)
	ctx := context.Background()

	require.NoError(t, f.app.Projects.Update(ctx, func() *domain.Project {
		p := *f.project
		p.Code = "WRH01"
		return &p
	}()))

	id, err := resolveProjectID(ctx, f.app, "wrh01")
	require.NoError(t, err)
	assert.Equal(t, f.project.ID, id)

	id, err = resolveProjectID(ctx, f.app, f.project.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, f.project.ID, id)

	_, err = resolveProjectID(ctx, f.app, "missing")
	assert.Error(t, err)
}

func TestResolveTaskByName(t *testing.T) {
	f := newCLIFixture(t)
	ctx := context.Background()
	task := testutil.SeedTask(t, f.repo, f.project.ID, "Excavation", "2025-01-06", "2025-01-10", nil)

	id, err := resolveTaskID(ctx, f.app, f.project.ID, "excavation")
	require.NoError(t, err)
	assert.Equal(t, task.ID, id)

	_, err = resolveTaskID(ctx, f.app, f.project.ID, "unknown")
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not found"))
}
