package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Short:   "Show aggregate ledger and audit counts",
		Example: `  oanca stats`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			st, err := c.Stats(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(st)
			}

			return printStatsDetail(st)
		},
	}
}

func jobsCmd() *cobra.Command {
	var (
		job   string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List recent scheduled job runs",
		Example: `  # All recent runs
  oanca jobs

  # Only ledger audits
  oanca jobs --job ledger_audit`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			runs, err := c.ListJobRuns(context.Background(), job, limit)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(runs)
			}

			if len(runs) == 0 {
				fmt.Println("No job runs found.")
				return nil
			}

			return printJobRunsTable(runs)
		},
	}

	cmd.Flags().StringVar(&job, "job", "", "job name filter")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of results")

	return cmd
}
