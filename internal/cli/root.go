package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/aerobridge/internal/config"
	"github.com/example/aerobridge/internal/version"
	"github.com/example/aerobridge/internal/wire"
)

// NewRootCmd returns the aerobridge root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "aerobridge",
		Short:   "Aerobridge - COA decision support for air logistics missions",
		Version: version.String(),
		Long: `Aerobridge walks an operator through the planning engine's course-of-action
recommendations: select a COA, review its detail, run the pre-flight
validation sequence, and authorize execution once validation completes.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("mission", "", "Mission context file (YAML or JSON); defaults to the embedded sample")
	flags.Duration("interval", 0, "Pacing between validation steps (default 800ms)")
	flags.String("journal", "", "Journal database path (default ~/.aerobridge/journal.db)")
	flags.Bool("no-journal", false, "Disable the session journal")
	flags.String("operator", "", "Operator name recorded in the journal")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(InitCmd())
	rootCmd.AddCommand(CoasCmd())
	rootCmd.AddCommand(ShowCmd())
	rootCmd.AddCommand(CheckCmd())
	rootCmd.AddCommand(SimulateCmd())
	rootCmd.AddCommand(ConsoleCmd())
	rootCmd.AddCommand(JournalCmd())

	return rootCmd
}

// shutdown releases wired resources; tests wrap it.
var shutdown = wire.Shutdown

// Execute runs the command tree and releases the journal whether or not the
// command succeeded; cobra skips post-run hooks when RunE fails.
func Execute(root *cobra.Command) error {
	err := root.Execute()
	if serr := shutdown(); serr != nil {
		err = errors.Join(err, fmt.Errorf("failed to close journal: %w", serr))
	}
	return err
}

// loadConfig reads .aerobridge/config.yaml from the working directory,
// applies flag overrides and hands the result to wire.
func loadConfig(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.LoadConfig(cwd)
	if err != nil {
		return err
	}

	cfg = config.Merge(cfg, flagOverrides(cmd))
	if err := cfg.Validate(); err != nil {
		return err
	}
	wire.Configure(cfg)
	return nil
}

// flagOverrides collects the persistent flags the user actually set.
func flagOverrides(cmd *cobra.Command) *config.Config {
	flags := cmd.Flags()
	override := &config.Config{}

	if flags.Changed("mission") {
		override.MissionFile, _ = flags.GetString("mission")
	}
	if flags.Changed("interval") {
		d, _ := flags.GetDuration("interval")
		// "0s" is non-empty, so Merge applies it and Validate rejects it.
		override.StepInterval = d.String()
	}
	if flags.Changed("journal") {
		override.JournalPath, _ = flags.GetString("journal")
	}
	if flags.Changed("no-journal") {
		noJournal, _ := flags.GetBool("no-journal")
		enabled := !noJournal
		override.JournalEnabled = &enabled
	}
	if flags.Changed("operator") {
		override.Operator, _ = flags.GetString("operator")
	}
	if flags.Changed("log-level") {
		override.LogLevel, _ = flags.GetString("log-level")
	}
	return override
}
