package commands

import (
	"encoding/json"
	"fmt"

	"github.com/flowers-delivery/internal/tariff"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var (
		file     string
		asJSON   bool
		minValid int
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a tariff file and report rejected rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := tariff.ValidateFile(file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "File:       %s\n", report.Name)
				fmt.Fprintf(out, "Schema:     %s\n", report.Schema)
				fmt.Fprintf(out, "Rows:       %d\n", report.TotalRows)
				fmt.Fprintf(out, "Valid rows: %d\n", report.ValidRows)
				fmt.Fprintf(out, "Zones:      %d\n", report.Zones)
				for _, issue := range report.Issues {
					fmt.Fprintf(out, "  row %d: %s: %s\n", issue.Row, issue.Kind, issue.Message)
				}
			}

			if report.ValidRows < minValid {
				return fmt.Errorf("%d valid rows, want at least %d", report.ValidRows, minValid)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "tariff file (.csv or .xlsx)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().IntVar(&minValid, "min-valid", 1, "fail when fewer rows are valid")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
