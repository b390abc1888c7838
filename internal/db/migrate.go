package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id         TEXT PRIMARY KEY,
		code       TEXT NOT NULL DEFAULT '',
		name       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','on-hold','completed')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		parent_id      TEXT REFERENCES tasks(id) ON DELETE SET NULL,
		type           TEXT NOT NULL DEFAULT 'task' CHECK(type IN ('task','group')),
		name           TEXT NOT NULL,
		category       TEXT NOT NULL DEFAULT '',
		subcategory    TEXT NOT NULL DEFAULT '',
		subsubcategory TEXT NOT NULL DEFAULT '',
		sort_order     REAL NOT NULL DEFAULT 0,
		plan_start     TEXT NOT NULL,
		plan_end       TEXT NOT NULL,
		actual_start   TEXT,
		actual_end     TEXT,
		progress       INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		cost           REAL NOT NULL DEFAULT 0 CHECK(cost >= 0),
		status         TEXT NOT NULL DEFAULT 'not-started'
		               CHECK(status IN ('not-started','in-progress','completed')),
		color          TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	// No foreign key on predecessor_id: an edge pointing at a removed
	// task is tolerated and simply yields no successors at cascade time.
	`CREATE TABLE IF NOT EXISTS task_predecessors (
		task_id        TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		predecessor_id TEXT NOT NULL,
		PRIMARY KEY (task_id, predecessor_id)
	)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		date        TEXT NOT NULL,
		amount      REAL NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		cost_code   TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_task_predecessors_pred ON task_predecessors(predecessor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_project ON expenses(project_id)`,
}
