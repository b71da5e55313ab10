package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/aerobridge/internal/wire"
)

// JournalCmd returns the journal command
func JournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal [session-id]",
		Short: "List journal sessions or replay one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.JournalAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return adapter.Replay(cmd.Context(), args[0])
			}
			limit, _ := cmd.Flags().GetInt("limit")
			return adapter.List(cmd.Context(), limit)
		},
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of sessions to list")
	return cmd
}
