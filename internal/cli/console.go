package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/example/aerobridge/internal/tui"
	"github.com/example/aerobridge/internal/wire"
)

// ConsoleCmd returns the console command
func ConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Open the interactive operator console",
		Long: `Open the three-stage operator console.

Keys: enter select, esc back, v validate, r reset, x execute (once
validation completes), ? help, q quit. Quitting cancels any running
validation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := wire.WorkflowService(ctx)
			if err != nil {
				return err
			}

			var runErr error
			if _, err := tea.NewProgram(tui.New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
				runErr = fmt.Errorf("console failed: %w", err)
			}
			if err := svc.Close(ctx); err != nil {
				return errors.Join(runErr, fmt.Errorf("failed to close session: %w", err))
			}
			return runErr
		},
	}
}
