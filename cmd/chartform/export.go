package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spektr-org/chartform/helpers"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run the transform and export the series table (csv or xlsx)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := runTransform()
			if err != nil {
				return err
			}
			out, closeOut, err := openOut()
			if err != nil {
				return err
			}
			defer closeOut()

			switch flagFormat {
			case "csv":
				return helpers.WriteSeriesCSV(out, cfg.Option.Series)
			case "xlsx":
				return helpers.WriteSeriesXLSX(out, cfg.Option.Series)
			default:
				return fmt.Errorf("unknown export format %q (want csv or xlsx)", flagFormat)
			}
		},
	}
	addInputFlags(cmd)
	cmd.Flags().StringVar(&flagFormat, "format", "csv", "export format: csv, xlsx")
	return cmd
}
