package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/isd-loader/internal/pipeline"
)

func newStationsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "stations <file>",
		Short:   "load the ISD station history file",
		Args:    cobra.ExactArgs(1),
		PreRunE: e.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			st, err := openStore(ctx, e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := st.Close(); err != nil {
					e.logger.Error("store close error", "error", err)
				}
			}()

			r, err := pipeline.OpenFile(args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			n, err := pipeline.LoadStations(ctx, args[0], r, st, e.logger, e.metrics)
			fmt.Fprintf(cmd.OutOrStdout(), "stations: %s\n", humanize.Comma(int64(n)))
			return err
		},
	}
}
