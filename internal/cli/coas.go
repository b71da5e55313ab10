package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/aerobridge/internal/wire"
)

// CoasCmd returns the coas command
func CoasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coas",
		Short: "List recommendations and the comparison series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := wire.BrowseService(ctx)
			if err != nil {
				return err
			}

			wire.WorkflowAdapter(svc, cmd.OutOrStdout()).ListCOAs()
			return svc.Close(ctx)
		},
	}
}

// ShowCmd returns the show command
func ShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <coa>",
		Short: "Show the detail view of a recommendation",
		Long: `Show allocation, hard gates, margins, environment, tactical layer,
executive summary and score breakdown for one recommendation.

The COA may be given by full name or by its short label (e.g. COA-2).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := wire.BrowseService(ctx)
			if err != nil {
				return err
			}

			var showErr error
			if err := wire.WorkflowAdapter(svc, cmd.OutOrStdout()).Show(args[0]); err != nil {
				showErr = fmt.Errorf("cannot show %s: %w", args[0], err)
			}
			return errors.Join(showErr, svc.Close(ctx))
		},
	}
}
