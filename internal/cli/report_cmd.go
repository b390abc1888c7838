package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mfigueroa/obra/internal/cli/formatter"
	"github.com/mfigueroa/obra/internal/contract"
	"github.com/mfigueroa/obra/internal/domain"
	"github.com/spf13/cobra"
)

func newCurveCmd(app *App) *cobra.Command {
	var mode, start, end, today string

	cmd := &cobra.Command{
		Use:   "curve PROJECT",
		Short: "Show the cumulative plan/actual S-curve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			req := contract.CurveRequest{ProjectID: projectID}
			switch mode {
			case "":
			case "financial":
				req.Mode = domain.ScopeFinancial
			case "physical":
				req.Mode = domain.ScopePhysical
			default:
				return fmt.Errorf("invalid --mode %q, expected financial or physical", mode)
			}
			if start != "" {
				d, err := time.Parse(domain.DateLayout, start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				req.Start = &d
			}
			if end != "" {
				d, err := time.Parse(domain.DateLayout, end)
				if err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
				req.End = &d
			}
			if today != "" {
				d, err := time.Parse(domain.DateLayout, today)
				if err != nil {
					return fmt.Errorf("invalid today date %q: %w", today, err)
				}
				req.Today = d
			}

			res, err := app.Reports.Curve(ctx, req)
			if err != nil {
				return err
			}
			fmt.Printf("%s", formatter.FormatCurve(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Scope mode (financial|physical, default auto)")
	cmd.Flags().StringVar(&start, "start", "", "Window start (YYYY-MM-DD, default project start)")
	cmd.Flags().StringVar(&end, "end", "", "Window end (YYYY-MM-DD, default project end)")
	cmd.Flags().StringVar(&today, "today", "", "Cutoff for open actual ranges (default today)")

	return cmd
}

func newEvmCmd(app *App) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "evm PROJECT",
		Short: "Show earned-value metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}

			var cutoff time.Time
			if asOf != "" {
				d, err := time.Parse(domain.DateLayout, asOf)
				if err != nil {
					return fmt.Errorf("invalid as-of date %q: %w", asOf, err)
				}
				cutoff = d
			}

			report, err := app.Reports.Evm(ctx, projectID, cutoff)
			if err != nil {
				return err
			}
			fmt.Printf("%s", formatter.FormatEvm(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Evaluation date (YYYY-MM-DD, default today)")

	return cmd
}
