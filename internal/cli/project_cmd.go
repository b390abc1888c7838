package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mfigueroa/obra/internal/cli/formatter"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/schedule"
	"github.com/mfigueroa/obra/internal/service"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
		newProjectDemoCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var code, name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse(domain.DateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse(domain.DateLayout, end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}
			if endDate.Before(startDate) {
				return fmt.Errorf("end date %s is before start date %s", end, start)
			}

			p := &domain.Project{
				Code:      strings.ToUpper(code),
				Name:      name,
				StartDate: startDate,
				EndDate:   endDate,
				Status:    domain.ProjectActive,
			}
			if err := app.Projects.Create(context.Background(), p); err != nil {
				return err
			}

			fmt.Printf("Created project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Short code (e.g. WRH01)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background(), !all)
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include on-hold and completed projects")

	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show a project's task tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.Header(fmt.Sprintf("%s  %s", p.DisplayID(), p.Name)))
			fmt.Printf("%s → %s\n\n",
				p.StartDate.Format(domain.DateLayout),
				p.EndDate.Format(domain.DateLayout))
			fmt.Printf("%s", formatter.FormatTaskTree(schedule.BuildForest(tasks)))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var code, name, end, status string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("code") {
				p.Code = strings.ToUpper(code)
			}
			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("end") {
				endDate, err := time.Parse(domain.DateLayout, end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				p.EndDate = endDate
			}
			if cmd.Flags().Changed("status") {
				p.Status = domain.ProjectStatus(status)
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}

			fmt.Printf("Updated project %s [%s]\n", p.Name, p.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Short code")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Project status (active|on-hold|completed)")

	return cmd
}

func newProjectDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Seed a demo project with a dependency chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := service.SeedDemoProject(context.Background(), app.Projects, app.Tasks, app.Expenses)
			if err != nil {
				return err
			}
			fmt.Printf("Seeded project %s [%s] — try `obra gantt %s`\n", p.Name, p.DisplayID(), p.DisplayID())
			return nil
		},
	}
}
