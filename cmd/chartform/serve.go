package main

import (
	"github.com/spf13/cobra"

	"github.com/spektr-org/chartform/api"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart data transform over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			return api.NewServer(logger).Start(flagAddr)
		},
	}
	cmd.Flags().StringVar(&flagAddr, "addr", ":8080", "listen address")
	return cmd
}
