package cmd

import (
	"context"

	"github.com/spf13/cobra"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

func priceCmd() *cobra.Command {
	var (
		make_         string
		model         string
		year          int
		variantFamily string
		km            int
		transmission  string
		engineDesc    string
		location      string
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a vehicle against the sales ledger",
		Long: "Price one vehicle against the dealer's historical cost basis.\n" +
			"The response carries the verdict, buy bounds, and the full notes\n" +
			"trail explaining every rule that fired.",
		Example: `  # Price a well-known vehicle
  oanca price --make Toyota --model Hilux --year 2021 --variant "SR5 4x4"

  # Include odometer and location
  oanca price --make Ford --model Ranger --year 2019 --variant XLT --km 88000 --location Mackay`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.PriceVehicle(context.Background(), &domain.QueryVehicle{
				Make:          make_,
				Model:         model,
				Year:          year,
				VariantFamily: variantFamily,
				Kilometres:    km,
				Transmission:  transmission,
				Engine:        engineDesc,
				Location:      location,
			})
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			return printPriceDetail(resp)
		},
	}

	cmd.Flags().StringVar(&make_, "make", "", "vehicle make")
	cmd.Flags().StringVar(&model, "model", "", "vehicle model")
	cmd.Flags().IntVar(&year, "year", 0, "model year")
	cmd.Flags().StringVar(&variantFamily, "variant", "", "variant or badge text")
	cmd.Flags().IntVar(&km, "km", 0, "odometer reading")
	cmd.Flags().StringVar(&transmission, "transmission", "", "transmission description")
	cmd.Flags().StringVar(&engineDesc, "engine", "", "engine description")
	cmd.Flags().StringVar(&location, "location", "", "vehicle location")

	cobra.CheckErr(cmd.MarkFlagRequired("make"))
	cobra.CheckErr(cmd.MarkFlagRequired("model"))
	cobra.CheckErr(cmd.MarkFlagRequired("year"))

	return cmd
}
