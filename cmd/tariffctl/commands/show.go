package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the tariff table the service would load",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			defer app.Close()

			table := app.Tariffs.Table()
			source := table.Source()
			if source == "" {
				source = "built-in defaults"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source: %s (%s), %d zones\n\n", source, table.Schema(), table.Len())

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ZONE\tCOST\tALIASES")
			for _, e := range table.Entries() {
				cost := "manual"
				if e.Cost.Valid {
					cost = e.Cost.Decimal.StringFixed(2)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Label, cost, strings.Join(e.Aliases, " | "))
			}
			return w.Flush()
		},
	}
}
