package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/example/aerobridge/internal/wire"
)

// SimulateCmd returns the simulate command
func SimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <coa>",
		Short: "Run the decision workflow headlessly for one COA",
		Long: `Select a COA, run the pre-flight validation sequence and stream its
transcript. Interrupting the command cancels the run.

With --authorize, an execution authorization is recorded in the journal
once validation completes. No mission is executed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			authorize, _ := cmd.Flags().GetBool("authorize")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			svc, err := wire.WorkflowService(ctx)
			if err != nil {
				return err
			}

			_, runErr := wire.WorkflowAdapter(svc, cmd.OutOrStdout()).Simulate(ctx, args[0], authorize)
			if err := svc.Close(cmd.Context()); err != nil {
				return errors.Join(runErr, fmt.Errorf("failed to close session: %w", err))
			}
			return runErr
		},
	}
	cmd.Flags().Bool("authorize", false, "Record an execution authorization when validation completes")
	return cmd
}
