package cli

import (
	"errors"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/aerobridge/internal/adapters/cli"
	"github.com/example/aerobridge/internal/core/recommendation"
	"github.com/example/aerobridge/internal/wire"
)

// CheckCmd returns the check command
func CheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the mission context and report consistency findings",
		Long: `Validate the mission context against the mission schema and run the
consistency diagnostics.

Only schema violations produce a non-zero exit status; findings are
reported for review and never block the workflow.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := wire.MissionSource()
			out := cmd.OutOrStdout()

			mc, err := source.Load(cmd.Context())
			if err != nil {
				if errors.Is(err, recommendation.ErrSchema) {
					cliadapter.PrintSchemaError(out, source.Name(), err)
				}
				return err
			}

			cliadapter.PrintCheck(out, source.Name(), mc, recommendation.CheckConsistency(mc))
			return nil
		},
	}
}
