package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newGanttCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "gantt PROJECT",
		Short: "Interactive schedule view with keyboard bar editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("the gantt view needs an interactive terminal")
			}

			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			project, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			tasks, err := app.Gantt.Snapshot(ctx, projectID)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newGanttModel(app, project, tasks), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
