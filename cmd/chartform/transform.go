package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/spektr-org/chartform/chartdata"
	"github.com/spektr-org/chartform/engine"
	"github.com/spektr-org/chartform/formdata"
	"github.com/spektr-org/chartform/helpers"
)

func newTransformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Run the transform and print the render config as JSON",
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

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
	addInputFlags(cmd)
	return cmd
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagQueryA, "query-a", "", "primary query result CSV (required)")
	cmd.Flags().StringVar(&flagQueryB, "query-b", "", "secondary query result CSV")
	cmd.Flags().StringVar(&flagForm, "form", "", "form data file (.json/.yaml)")
	cmd.Flags().StringVar(&flagOut, "out", "", "write output to file instead of stdout")
	cmd.MarkFlagRequired("query-a")
}

// runTransform loads the inputs and runs the engine once.
func runTransform() (*engine.RenderConfig, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	qa, err := loadQuery(flagQueryA)
	if err != nil {
		return nil, err
	}
	qb := chartdata.QueryResult{}
	if flagQueryB != "" {
		qb, err = loadQuery(flagQueryB)
		if err != nil {
			return nil, err
		}
	}

	form := formdata.Defaults()
	if flagForm != "" {
		form, err = formdata.LoadFile(flagForm)
		if err != nil {
			return nil, err
		}
	}
	if form.XAxis == "" {
		form.XAxis = guessXAxis(qa)
	}

	return engine.Transform(
		engine.Queries{A: qa, B: qb},
		form,
		engine.RenderContext{},
		engine.WithLogger(logger),
	)
}

func loadQuery(path string) (chartdata.QueryResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chartdata.QueryResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	q, err := helpers.ParseQueryCSV(data)
	if err != nil {
		return chartdata.QueryResult{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return q, nil
}

// guessXAxis picks the first temporal column when no form names one.
func guessXAxis(q chartdata.QueryResult) string {
	for col, t := range q.ColTypes {
		if t == chartdata.TypeTemporal {
			return col
		}
	}
	return ""
}

func openOut() (io.Writer, func(), error) {
	if flagOut == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(flagOut)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", flagOut, err)
	}
	return f, func() { f.Close() }, nil
}
