package commands

import (
	"fmt"
	"strings"

	"github.com/flowers-delivery/app/services"
	"github.com/spf13/cobra"
)

func newQuoteCmd(opts *options) *cobra.Command {
	var weight float64

	cmd := &cobra.Command{
		Use:   "quote <address>",
		Short: "Resolve the delivery cost from the shop to an address",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			d := app.Delivery.Quote(cmd.Context(), strings.Join(args, " "), weight)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, services.CustomerMessage(d))
			fmt.Fprintf(out, "Source: %s\n", d.SourceLabel)
			if d.TariffLabel != "" {
				fmt.Fprintf(out, "Zone:   %s\n", d.TariffLabel)
			}
			if d.Note != "" {
				fmt.Fprintf(out, "Note:   %s\n", d.Note)
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&weight, "weight", "w", services.DefaultWeight, "parcel weight in kg")
	return cmd
}
