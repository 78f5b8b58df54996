package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/mackayauctioneers-design/oanca/internal/api/client"
)

func recordsCmd() *cobra.Command {
	recordsRoot := &cobra.Command{
		Use:   "records",
		Short: "Query the sales ledger",
		Long: "Query and inspect the historical sales records that back\n" +
			"the pricing engine.",
	}

	recordsRoot.AddCommand(
		recordsListCmd(),
		recordsGetCmd(),
	)

	return recordsRoot
}

func recordsListCmd() *cobra.Command {
	var (
		makeFilter string
		model      string
		dealer     string
		source     string
		yearMin    int
		yearMax    int
		limit      int
		offset     int
		orderBy    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sales records with optional filters",
		Example: `  # List recent Hilux sales
  oanca records list --make Toyota --model Hilux

  # Sales in a year window, sorted by cost basis
  oanca records list --make Ford --year-min 2018 --year-max 2022 --order-by total_cost`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListRecords(context.Background(), &apiclient.ListRecordsParams{
				Make:    makeFilter,
				Model:   model,
				Dealer:  dealer,
				Source:  source,
				YearMin: yearMin,
				YearMax: yearMax,
				Limit:   limit,
				Offset:  offset,
				OrderBy: orderBy,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Records) == 0 {
				fmt.Println("No records found.")
				return nil
			}

			fmt.Printf("Showing %d of %d records\n\n", len(resp.Records), resp.Total)
			return printRecordsTable(resp.Records)
		},
	}

	cmd.Flags().StringVar(&makeFilter, "make", "", "make filter")
	cmd.Flags().StringVar(&model, "model", "", "model filter")
	cmd.Flags().StringVar(&dealer, "dealer", "", "dealer filter")
	cmd.Flags().StringVar(&source, "source", "", "ingestion source filter")
	cmd.Flags().IntVar(&yearMin, "year-min", 0, "minimum model year")
	cmd.Flags().IntVar(&yearMax, "year-max", 0, "maximum model year")
	cmd.Flags().IntVar(&limit, "limit", 50, "number of results")
	cmd.Flags().IntVar(&offset, "offset", 0, "result offset")
	cmd.Flags().
		StringVar(&orderBy, "order-by", "", "sort order (sale_date, total_cost, created_at)")

	return cmd
}

func recordsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show sales record details",
		Example: `  oanca records get 9f1c2d3e-...`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			r, err := c.GetRecord(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(r)
			}

			return printRecordDetail(r)
		},
	}
}
