package cli

import (
	"github.com/mfigueroa/obra/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Tasks    service.TaskService
	Expenses service.ExpenseService
	Gantt    service.GanttService
	Reports  service.ReportService

	// IsInteractive reports whether stdin is a terminal; forms and the
	// gantt view refuse to start without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "obra" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "obra",
		Short: "Construction schedule and earned-value tracker",
	}

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newExpenseCmd(app),
		newCurveCmd(app),
		newEvmCmd(app),
		newGanttCmd(app),
	)

	return root
}
