package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/repository"
	"github.com/mfigueroa/obra/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := testutil.SeedProject(t, projects, "Riverside Complex", "2025-03-01", "2025-09-30")
	created := testutil.SeedTask(t, tasks, p.ID, "Excavation", "2025-03-01", "2025-03-14", func(task *domain.Task) {
		task.Category = "Sitework"
		task.Cost = 42000
		task.Progress = 25
		task.Status = domain.StatusInProgress
	})

	got, err := tasks.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Excavation", got.Name)
	assert.Equal(t, "Sitework", got.Category)
	assert.Equal(t, 42000.0, got.Cost)
	assert.Equal(t, 25, got.Progress)
	assert.Equal(t, testutil.Date(t, "2025-03-01"), got.PlanStart)
	assert.Nil(t, got.ActualStart)
	assert.Nil(t, got.ParentID)
}

func TestTaskRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(database)

	_, err := tasks.GetByID(context.Background(), "nope")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestTaskRepo_PredecessorsRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := testutil.SeedProject(t, projects, "Depot", "2025-03-01", "2025-12-31")
	a := testutil.SeedTask(t, tasks, p.ID, "Foundations", "2025-03-01", "2025-03-20", nil)
	b := testutil.SeedTask(t, tasks, p.ID, "Framing", "2025-03-21", "2025-04-20", func(task *domain.Task) {
		task.Predecessors = []string{a.ID}
	})

	got, err := tasks.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, got.Predecessors)

	// Replacing edges via a patch drops the old set.
	preds := []string{"dangling-id"}
	require.NoError(t, tasks.UpdateFields(ctx, b.ID, repository.TaskPatch{Predecessors: &preds}))
	got, err = tasks.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"dangling-id"}, got.Predecessors)
}

func TestTaskRepo_ListByProjectAttachesPredecessors(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := testutil.SeedProject(t, projects, "Depot", "2025-03-01", "2025-12-31")
	a := testutil.SeedTask(t, tasks, p.ID, "A", "2025-03-01", "2025-03-05", func(task *domain.Task) { task.Order = 1 })
	testutil.SeedTask(t, tasks, p.ID, "B", "2025-03-06", "2025-03-10", func(task *domain.Task) {
		task.Order = 2
		task.Predecessors = []string{a.ID}
	})

	list, err := tasks.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name) // sort_order ascending
	assert.Empty(t, list[0].Predecessors)
	assert.Equal(t, []string{a.ID}, list[1].Predecessors)
}

func TestTaskRepo_PartialUpdate(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := testutil.SeedProject(t, projects, "Depot", "2025-03-01", "2025-12-31")
	task := testutil.SeedTask(t, tasks, p.ID, "Roofing", "2025-05-01", "2025-05-20", func(task *domain.Task) {
		task.Cost = 100
	})

	progress := 60
	status := domain.StatusInProgress
	require.NoError(t, tasks.UpdateFields(ctx, task.ID, repository.TaskPatch{
		Progress: &progress,
		Status:   &status,
	}))

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, got.Progress)
	assert.Equal(t, domain.StatusInProgress, got.Status)
	// Untouched fields survive.
	assert.Equal(t, 100.0, got.Cost)
	assert.Equal(t, "Roofing", got.Name)
}

func TestTaskRepo_SetAndClearParent(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := testutil.SeedProject(t, projects, "Depot", "2025-03-01", "2025-12-31")
	group := testutil.SeedTask(t, tasks, p.ID, "Structure", "2025-03-01", "2025-06-30", func(task *domain.Task) {
		task.Type = domain.TypeGroup
	})
	task := testutil.SeedTask(t, tasks, p.ID, "Columns", "2025-03-10", "2025-03-25", nil)

	require.NoError(t, tasks.UpdateFields(ctx, task.ID, repository.TaskPatch{
		SetParent: true, ParentID: &group.ID,
	}))
	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, group.ID, *got.ParentID)

	require.NoError(t, tasks.UpdateFields(ctx, task.ID, repository.TaskPatch{SetParent: true}))
	got, err = tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestTaskRepo_UpdateDates(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := testutil.SeedProject(t, projects, "Depot", "2025-03-01", "2025-12-31")
	task := testutil.SeedTask(t, tasks, p.ID, "Paving", "2025-07-01", "2025-07-10", nil)

	require.NoError(t, tasks.UpdatePlanDates(ctx, task.ID,
		testutil.Date(t, "2025-07-04"), testutil.Date(t, "2025-07-13")))
	require.NoError(t, tasks.UpdateActualDates(ctx, task.ID,
		testutil.Date(t, "2025-07-05"), testutil.Date(t, "2025-07-08")))

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(t, "2025-07-04"), got.PlanStart)
	assert.Equal(t, testutil.Date(t, "2025-07-13"), got.PlanEnd)
	require.NotNil(t, got.ActualStart)
	assert.Equal(t, testutil.Date(t, "2025-07-05"), *got.ActualStart)
}

func TestTaskRepo_CorruptDateTreatedAsAbsent(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	p := testutil.SeedProject(t, projects, "Depot", "2025-03-01", "2025-12-31")
	task := testutil.SeedTask(t, tasks, p.ID, "Glazing", "2025-08-01", "2025-08-10", nil)

	_, err := database.Exec(`UPDATE tasks SET actual_start = 'not-a-date' WHERE id = ?`, task.ID)
	require.NoError(t, err)

	got, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ActualStart)
}
