package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfigueroa/obra/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, project_id, parent_id, type, name,
		category, subcategory, subsubcategory, sort_order,
		plan_start, plan_end, actual_start, actual_end,
		progress, cost, status, color, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db *sql.DB
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db *sql.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		nullableStrToValue(t.ParentID),
		string(t.Type),
		t.Name,
		t.Category,
		t.Subcategory,
		t.Subsubcategory,
		t.Order,
		t.PlanStart.Format(dateLayout),
		t.PlanEnd.Format(dateLayout),
		nullableTimeToString(t.ActualStart, dateLayout),
		nullableTimeToString(t.ActualEnd, dateLayout),
		t.Progress,
		t.Cost,
		string(t.Status),
		t.Color,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return r.replacePredecessors(ctx, t.ID, t.Predecessors)
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := r.scanTask(row)
	if err != nil {
		return nil, err
	}
	preds, err := r.predecessorsOf(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Predecessors = preds
	return t, nil
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY sort_order, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks by project: %w", err)
	}
	defer rows.Close()

	tasks, err := r.scanTasks(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachPredecessors(ctx, projectID, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) UpdateFields(ctx context.Context, id string, patch TaskPatch) error {
	var sets []string
	var args []interface{}

	add := func(col string, v interface{}) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Type != nil {
		add("type", string(*patch.Type))
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Subcategory != nil {
		add("subcategory", *patch.Subcategory)
	}
	if patch.Subsubcategory != nil {
		add("subsubcategory", *patch.Subsubcategory)
	}
	if patch.Order != nil {
		add("sort_order", *patch.Order)
	}
	if patch.PlanStart != nil {
		add("plan_start", patch.PlanStart.Format(dateLayout))
	}
	if patch.PlanEnd != nil {
		add("plan_end", patch.PlanEnd.Format(dateLayout))
	}
	if patch.Progress != nil {
		add("progress", *patch.Progress)
	}
	if patch.Cost != nil {
		add("cost", *patch.Cost)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.Color != nil {
		add("color", *patch.Color)
	}
	if patch.SetParent {
		add("parent_id", nullableStrToValue(patch.ParentID))
	}
	if patch.SetActual {
		add("actual_start", nullableTimeToString(patch.ActualStart, dateLayout))
		add("actual_end", nullableTimeToString(patch.ActualEnd, dateLayout))
	}

	if len(sets) > 0 {
		add("updated_at", nowUTC())
		query := "UPDATE tasks SET "
		for i, s := range sets {
			if i > 0 {
				query += ", "
			}
			query += s
		}
		query += " WHERE id = ?"
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("updating task fields: %w", err)
		}
	}

	if patch.Predecessors != nil {
		return r.replacePredecessors(ctx, id, *patch.Predecessors)
	}
	return nil
}

func (r *SQLiteTaskRepo) UpdatePlanDates(ctx context.Context, id string, start, end time.Time) error {
	query := `UPDATE tasks SET plan_start = ?, plan_end = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		start.Format(dateLayout), end.Format(dateLayout), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating task plan dates: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) UpdateActualDates(ctx context.Context, id string, start, end time.Time) error {
	query := `UPDATE tasks SET actual_start = ?, actual_end = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		start.Format(dateLayout), end.Format(dateLayout), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating task actual dates: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) replacePredecessors(ctx context.Context, taskID string, preds []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM task_predecessors WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("clearing task predecessors: %w", err)
	}
	for _, pred := range preds {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO task_predecessors (task_id, predecessor_id) VALUES (?, ?)`, taskID, pred)
		if err != nil {
			return fmt.Errorf("inserting task predecessor: %w", err)
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) predecessorsOf(ctx context.Context, taskID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT predecessor_id FROM task_predecessors WHERE task_id = ? ORDER BY predecessor_id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing task predecessors: %w", err)
	}
	defer rows.Close()

	var preds []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning predecessor: %w", err)
		}
		preds = append(preds, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating predecessors: %w", err)
	}
	return preds, nil
}

// attachPredecessors loads all dependency edges for a project in one
// query and distributes them onto the task slice.
func (r *SQLiteTaskRepo) attachPredecessors(ctx context.Context, projectID string, tasks []*domain.Task) error {
	rows, err := r.db.QueryContext(ctx, `SELECT tp.task_id, tp.predecessor_id
		FROM task_predecessors tp
		JOIN tasks t ON tp.task_id = t.id
		WHERE t.project_id = ?
		ORDER BY tp.predecessor_id`, projectID)
	if err != nil {
		return fmt.Errorf("listing project predecessors: %w", err)
	}
	defer rows.Close()

	byTask := make(map[string][]string)
	for rows.Next() {
		var taskID, predID string
		if err := rows.Scan(&taskID, &predID); err != nil {
			return fmt.Errorf("scanning project predecessor: %w", err)
		}
		byTask[taskID] = append(byTask[taskID], predID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating project predecessors: %w", err)
	}

	for _, t := range tasks {
		t.Predecessors = byTask[t.ID]
	}
	return nil
}

// scanTask scans a single task from a *sql.Row.
func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var parentID, actualStart, actualEnd sql.NullString
	var typeStr, statusStr, planStart, planEnd, createdAt, updatedAt string

	err := row.Scan(
		&t.ID, &t.ProjectID, &parentID, &typeStr, &t.Name,
		&t.Category, &t.Subcategory, &t.Subsubcategory, &t.Order,
		&planStart, &planEnd, &actualStart, &actualEnd,
		&t.Progress, &t.Cost, &statusStr, &t.Color, &createdAt, &updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return r.populateTask(&t, parentID, typeStr, statusStr, planStart, planEnd, actualStart, actualEnd, createdAt, updatedAt)
}

// scanTasks scans multiple tasks from *sql.Rows.
func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var parentID, actualStart, actualEnd sql.NullString
		var typeStr, statusStr, planStart, planEnd, createdAt, updatedAt string

		err := rows.Scan(
			&t.ID, &t.ProjectID, &parentID, &typeStr, &t.Name,
			&t.Category, &t.Subcategory, &t.Subsubcategory, &t.Order,
			&planStart, &planEnd, &actualStart, &actualEnd,
			&t.Progress, &t.Cost, &statusStr, &t.Color, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		task, err := r.populateTask(&t, parentID, typeStr, statusStr, planStart, planEnd, actualStart, actualEnd, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// populateTask fills in parsed fields on a Task after scanning raw values.
func (r *SQLiteTaskRepo) populateTask(
	t *domain.Task,
	parentID sql.NullString,
	typeStr, statusStr, planStart, planEnd string,
	actualStart, actualEnd sql.NullString,
	createdAt, updatedAt string,
) (*domain.Task, error) {
	t.Type = domain.TaskType(typeStr)
	t.Status = domain.TaskStatus(statusStr)
	if parentID.Valid && parentID.String != "" {
		p := parentID.String
		t.ParentID = &p
	}

	// Unparseable dates are treated as absent rather than failing the scan.
	t.PlanStart = parseDateOrZero(planStart)
	t.PlanEnd = parseDateOrZero(planEnd)
	t.ActualStart = parseNullableTime(actualStart, dateLayout)
	t.ActualEnd = parseNullableTime(actualEnd, dateLayout)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return t, nil
}
