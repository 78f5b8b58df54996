package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/mackayauctioneers-design/oanca/internal/api/client"
)

func auditsCmd() *cobra.Command {
	auditsRoot := &cobra.Command{
		Use:   "audits",
		Short: "Query pricing audits",
		Long: "Query the persisted record of past pricing decisions,\n" +
			"including the full notes trail for each one.",
	}

	auditsRoot.AddCommand(
		auditsListCmd(),
		auditsGetCmd(),
	)

	return auditsRoot
}

func auditsListCmd() *cobra.Command {
	var (
		verdict string
		limit   int
		offset  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pricing audits, newest first",
		Example: `  # Everything recent
  oanca audits list

  # Only escalations
  oanca audits list --verdict ESCALATE`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListAudits(context.Background(), &apiclient.ListAuditsParams{
				Verdict: verdict,
				Limit:   limit,
				Offset:  offset,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Audits) == 0 {
				fmt.Println("No audits found.")
				return nil
			}

			fmt.Printf("Showing %d of %d audits\n\n", len(resp.Audits), resp.Total)
			return printAuditsTable(resp.Audits)
		},
	}

	cmd.Flags().StringVar(&verdict, "verdict", "", "verdict filter (BUY, HIT_IT, HARD_WORK, WALK, NEED_PICS, ESCALATE)")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")

	return cmd
}

func auditsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show pricing audit details",
		Example: `  oanca audits get 9f1c2d3e-...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			a, err := c.GetAudit(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(a)
			}

			return printAuditDetail(a)
		},
	}
}
