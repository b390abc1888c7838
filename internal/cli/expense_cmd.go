package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mfigueroa/obra/internal/cli/formatter"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/spf13/cobra"
)

func newExpenseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Book and list project expenses",
	}

	cmd.AddCommand(
		newExpenseAddCmd(app),
		newExpenseListCmd(app),
	)

	return cmd
}

func newExpenseAddCmd(app *App) *cobra.Command {
	var project, date, description, costCode string
	var amount float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book an expense against a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			bookedOn := domain.Day(time.Now().UTC())
			if date != "" {
				d, err := time.Parse(domain.DateLayout, date)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", date, err)
				}
				bookedOn = d
			}
			if amount <= 0 {
				return fmt.Errorf("amount must be positive, got %.2f", amount)
			}

			e := &domain.Expense{
				ProjectID:   projectID,
				Date:        bookedOn,
				Amount:      amount,
				Description: description,
				CostCode:    costCode,
			}
			if err := app.Expenses.Log(ctx, e); err != nil {
				return err
			}
			fmt.Printf("Booked %.2f on %s\n", e.Amount, e.Date.Format(domain.DateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project code or ID")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Expense amount")
	cmd.Flags().StringVar(&date, "date", "", "Booking date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().StringVar(&costCode, "code", "", "Cost code")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newExpenseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's booked expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			expenses, err := app.Expenses.ListByProject(ctx, projectID)
			if err != nil {
				return err
			}
			fmt.Printf("%s", formatter.FormatExpenseList(expenses))
			return nil
		},
	}
}
