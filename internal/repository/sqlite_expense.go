package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfigueroa/obra/internal/domain"
)

const expenseColumns = `id, project_id, date, amount, description, cost_code, created_at`

// SQLiteExpenseRepo implements ExpenseRepo using a SQLite database.
type SQLiteExpenseRepo struct {
	db *sql.DB
}

func NewSQLiteExpenseRepo(db *sql.DB) *SQLiteExpenseRepo {
	return &SQLiteExpenseRepo{db: db}
}

func (r *SQLiteExpenseRepo) Create(ctx context.Context, e *domain.Expense) error {
	query := `INSERT INTO expenses (` + expenseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.Date.Format(dateLayout),
		e.Amount,
		e.Description,
		e.CostCode,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}
	return nil
}

func (r *SQLiteExpenseRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE project_id = ? ORDER BY date, created_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing expenses by project: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func (r *SQLiteExpenseRepo) List(ctx context.Context) ([]*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY date, created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func scanExpenses(rows *sql.Rows) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	for rows.Next() {
		var e domain.Expense
		var dateStr, createdAt string
		if err := rows.Scan(&e.ID, &e.ProjectID, &dateStr, &e.Amount, &e.Description, &e.CostCode, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning expense row: %w", err)
		}
		e.Date = parseDateOrZero(dateStr)
		var err error
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		expenses = append(expenses, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}
	return expenses, nil
}
