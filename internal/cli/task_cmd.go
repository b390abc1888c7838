package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mfigueroa/obra/internal/cli/formatter"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/mfigueroa/obra/internal/repository"
	"github.com/mfigueroa/obra/internal/schedule"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage schedule tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskShiftCmd(app),
		newTaskProgressCmd(app),
		newTaskDependCmd(app),
		newTaskReorderCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var project, name, category, parent, start, end, color string
	var cost float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task (interactive form when flags are omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			if name == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--name is required in non-interactive mode")
				}
				var v taskFormValues
				if err := taskAddForm(&v).Run(); err != nil {
					return err
				}
				name, category, start, end = v.Name, v.Category, v.Start, v.End
				if cost, err = v.cost(); err != nil {
					return err
				}
			}

			startDate, err := time.Parse(domain.DateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse(domain.DateLayout, end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}

			t := &domain.Task{
				ProjectID: projectID,
				Name:      name,
				Category:  category,
				PlanStart: startDate,
				PlanEnd:   endDate,
				Cost:      cost,
				Color:     color,
			}
			if parent != "" {
				parentID, err := resolveTaskID(ctx, app, projectID, parent)
				if err != nil {
					return err
				}
				t.ParentID = &parentID
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Created task %s (%s → %s)\n", t.Name,
				t.PlanStart.Format(domain.DateLayout), t.PlanEnd.Format(domain.DateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project code or ID")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&category, "category", "", "Category label")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent group name or ID")
	cmd.Flags().StringVar(&start, "start", "", "Plan start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Plan end (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Budgeted cost")
	cmd.Flags().StringVar(&color, "color", "", "Bar color (hex, e.g. #d3869b)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var byCategory bool

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's tasks as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			tasks, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			f := schedule.BuildForest(tasks)
			if byCategory {
				fmt.Printf("%s", formatter.FormatCategoryGroups(f, schedule.GroupByCategory(f)))
				return nil
			}
			fmt.Printf("%s", formatter.FormatTaskTree(f))
			return nil
		},
	}

	cmd.Flags().BoolVar(&byCategory, "by-category", false, "Bucket rows by category path instead of parent/child")

	return cmd
}

func newTaskShiftCmd(app *App) *cobra.Command {
	var project, edge string
	var days int
	var actual bool

	cmd := &cobra.Command{
		Use:   "shift TASK",
		Short: "Move or resize a task bar by whole days",
		Long: `Shift a task's plan (or actual) bar. Without --edge the whole bar
moves and the change cascades to the task's subtree and finish-to-start
successors. --edge right stretches the end and cascades; --edge left
stretches the start and never cascades.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			op := domain.OpMove
			switch edge {
			case "":
			case "left":
				op = domain.OpResizeLeft
			case "right":
				op = domain.OpResizeRight
			default:
				return fmt.Errorf("invalid --edge %q, expected left or right", edge)
			}
			bar := domain.BarPlan
			if actual {
				bar = domain.BarActual
			}

			res, err := app.Gantt.ShiftTask(ctx, taskID, bar, op, days)
			if err != nil {
				return err
			}

			if !res.Changed() {
				fmt.Println("No change.")
				return nil
			}
			fmt.Printf("Updated %d task(s).\n", len(res.Patches))
			if len(res.CycleIDs) > 0 {
				fmt.Printf("%s\n", formatter.StyleYellow.Render(
					fmt.Sprintf("Warning: dependency cycle through %s", strings.Join(res.CycleIDs, ", "))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project code or ID")
	cmd.Flags().IntVar(&days, "days", 0, "Day delta (negative shifts left)")
	cmd.Flags().StringVar(&edge, "edge", "", "Resize edge (left|right) instead of moving")
	cmd.Flags().BoolVar(&actual, "actual", false, "Operate on the actual bar")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func newTaskProgressCmd(app *App) *cobra.Command {
	var project, actualStart, actualEnd string
	var progress int

	cmd := &cobra.Command{
		Use:   "progress TASK",
		Short: "Record progress and actual dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if progress < 0 || progress > 100 {
				return fmt.Errorf("progress must be 0-100, got %d", progress)
			}

			task, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}

			patch := repository.TaskPatch{Progress: &progress}
			status := statusForProgress(progress)
			patch.Status = &status

			if actualStart != "" || actualEnd != "" || task.ActualStart != nil {
				patch.SetActual = true
				patch.ActualStart = task.ActualStart
				patch.ActualEnd = task.ActualEnd
				if actualStart != "" {
					d, err := time.Parse(domain.DateLayout, actualStart)
					if err != nil {
						return fmt.Errorf("invalid actual start %q: %w", actualStart, err)
					}
					patch.ActualStart = &d
				}
				if actualEnd != "" {
					d, err := time.Parse(domain.DateLayout, actualEnd)
					if err != nil {
						return fmt.Errorf("invalid actual end %q: %w", actualEnd, err)
					}
					patch.ActualEnd = &d
				}
				if patch.ActualStart == nil {
					// Progress without a recorded start begins today.
					today := domain.Day(time.Now().UTC())
					patch.ActualStart = &today
				}
			}

			if err := app.Tasks.Update(ctx, taskID, patch); err != nil {
				return err
			}
			fmt.Printf("Recorded %d%% on %s\n", progress, task.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project code or ID")
	cmd.Flags().IntVar(&progress, "pct", 0, "Progress percentage (0-100)")
	cmd.Flags().StringVar(&actualStart, "started", "", "Actual start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&actualEnd, "finished", "", "Actual end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("pct")

	return cmd
}

func statusForProgress(pct int) domain.TaskStatus {
	switch {
	case pct >= 100:
		return domain.StatusCompleted
	case pct > 0:
		return domain.StatusInProgress
	default:
		return domain.StatusNotStarted
	}
}

func newTaskDependCmd(app *App) *cobra.Command {
	var project string
	var on []string

	cmd := &cobra.Command{
		Use:   "depend TASK",
		Short: "Set a task's finish-to-start predecessors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			preds := make([]string, 0, len(on))
			for _, ref := range on {
				predID, err := resolveTaskID(ctx, app, projectID, ref)
				if err != nil {
					return err
				}
				if predID == taskID {
					return fmt.Errorf("a task cannot depend on itself")
				}
				preds = append(preds, predID)
			}

			patch := repository.TaskPatch{Predecessors: &preds}
			if err := app.Tasks.Update(ctx, taskID, patch); err != nil {
				return err
			}
			fmt.Printf("Set %d predecessor(s).\n", len(preds))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project code or ID")
	cmd.Flags().StringArrayVar(&on, "on", nil, "Predecessor task (repeatable; empty clears)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newTaskReorderCmd(app *App) *cobra.Command {
	var project, above, below, into string

	cmd := &cobra.Command{
		Use:   "reorder TASK",
		Short: "Move a task within the list order or nest it under a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}

			var targetRef string
			var zone domain.DropZone
			switch {
			case above != "":
				targetRef, zone = above, domain.DropAbove
			case below != "":
				targetRef, zone = below, domain.DropBelow
			case into != "":
				targetRef, zone = into, domain.DropChild
			default:
				return fmt.Errorf("one of --above, --below or --into is required")
			}

			targetID, err := resolveTaskID(ctx, app, projectID, targetRef)
			if err != nil {
				return err
			}
			if targetID == taskID {
				return fmt.Errorf("cannot reorder a task relative to itself")
			}

			snapshot, err := app.Tasks.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			var dragged, target *domain.Task
			for _, t := range snapshot {
				if t.ID == taskID {
					dragged = t
				}
				if t.ID == targetID {
					target = t
				}
			}
			if dragged == nil || target == nil {
				return repository.ErrNotFound
			}

			plan := schedule.PlanReorder(snapshot, dragged, target, zone)
			if err := app.Gantt.ApplyReorder(ctx, plan); err != nil {
				return err
			}
			fmt.Printf("Moved %s %s %s.\n", dragged.Name, zone, target.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project code or ID")
	cmd.Flags().StringVar(&above, "above", "", "Place before this task")
	cmd.Flags().StringVar(&below, "below", "", "Place after this task")
	cmd.Flags().StringVar(&into, "into", "", "Nest as last child of this group")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
