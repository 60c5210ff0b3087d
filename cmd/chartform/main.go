package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ============================================================================
// CHARTFORM CLI — transform query results into chart render config
// ============================================================================

const version = "0.1.0"

var (
	flagQueryA  string
	flagQueryB  string
	flagForm    string
	flagOut     string
	flagFormat  string
	flagAddr    string
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:     "chartform",
		Short:   "Mixed-axis timeseries chart data transform",
		Version: version,
		Long: `chartform turns tabular query results into a declarative ECharts
option for mixed-axis timeseries charts.

Examples:
  chartform transform --query-a sales.csv --form chart.yaml
  chartform export --query-a sales.csv --form chart.yaml --format xlsx --out chart.xlsx
  chartform serve --addr :8080`,
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newTransformCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newLogger builds the CLI logger: production JSON by default,
// development console with --verbose.
func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
