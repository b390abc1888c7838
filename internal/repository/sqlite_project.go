package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfigueroa/obra/internal/domain"
)

const projectColumns = `id, code, name, start_date, end_date, status, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db *sql.DB
}

func NewSQLiteProjectRepo(db *sql.DB) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Code,
		p.Name,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		string(p.Status),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) List(ctx context.Context, activeOnly bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY start_date, name`
	if activeOnly {
		query = `SELECT ` + projectColumns + ` FROM projects WHERE status = 'active' ORDER BY start_date, name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		var startDate, endDate, statusStr, createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &startDate, &endDate, &statusStr, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		if err := populateProject(&p, startDate, endDate, statusStr, createdAt, updatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET code = ?, name = ?, start_date = ?, end_date = ?, status = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Code,
		p.Name,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		string(p.Status),
		nowUTC(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var startDate, endDate, statusStr, createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Code, &p.Name, &startDate, &endDate, &statusStr, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	if err := populateProject(&p, startDate, endDate, statusStr, createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func populateProject(p *domain.Project, startDate, endDate, statusStr, createdAt, updatedAt string) error {
	p.Status = domain.ProjectStatus(statusStr)
	p.StartDate = parseDateOrZero(startDate)
	p.EndDate = parseDateOrZero(endDate)

	var err error
	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}
