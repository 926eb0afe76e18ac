package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/esimov/folco"
)

func resetCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "reset DIR...",
		Short: "Remove the custom icon of the given directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Workers
			}
			c := a.customizer(workers, a.cfg.IconSize)
			return a.runBatch(cmd.Context(), func(ctx context.Context, events chan<- folco.Progress) folco.Result {
				return c.Reset(ctx, args, events)
			})
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "directories processed concurrently (default number of CPUs)")
	return cmd
}
