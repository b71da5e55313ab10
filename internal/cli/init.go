package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/aerobridge/internal/config"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .aerobridge/config.yaml",
		Long: `Write .aerobridge/config.yaml in the current directory with the default
settings: embedded sample mission, 800ms step interval, journal enabled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			force, _ := cmd.Flags().GetBool("force")
			return runInit(cmd, cwd, force)
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	path := config.Path(dir)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.SaveConfig(dir, config.DefaultConfig()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Wrote %s\n", path)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  aerobridge coas")
	fmt.Fprintln(out, "  aerobridge simulate COA-1")
	return nil
}
