package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/mfigueroa/obra/internal/cli"
	"github.com/mfigueroa/obra/internal/db"
	"github.com/mfigueroa/obra/internal/repository"
	"github.com/mfigueroa/obra/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.obra/obra.db
	dbPath := os.Getenv("OBRA_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".obra", "obra.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	expenseRepo := repository.NewSQLiteExpenseRepo(database)

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo),
		Tasks:    service.NewTaskService(taskRepo),
		Expenses: service.NewExpenseService(expenseRepo),
		Gantt:    service.NewGanttService(taskRepo),
		Reports:  service.NewReportService(projectRepo, taskRepo, expenseRepo),
	}

	// Detect interactive terminal for the gantt view and add forms.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
