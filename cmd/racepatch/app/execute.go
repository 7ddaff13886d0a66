package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/racepatch/internal/cmd/output"
	"github.com/agentstation/racepatch/pkg/logging"
)

// Execute runs the racepatch CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "racepatch",
		Short:   "Reconcile race skeleton and character height mods",
		Version: a.version,
		Long: `racepatch merges a race skeleton/height mod and a character height mod
into a single override patch.

Race heights and skeleton models from the skeleton source are re-applied
over whatever currently wins in the load order. Character heights from the
height source are then applied directly, or scaled when the character's
race height was changed, so characters keep their intended proportions.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default is ./racepatch.yaml or $HOME/racepatch.yaml)")
	pf.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.Bool("no-color", false, "disable colored output")
	pf.StringP("format", "o", "", "output format: table, json, yaml, wide")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Load order flags shared by every command
	pf.StringP("data-dir", "d", a.config.DataDir, "directory containing plugin files")
	pf.String("load-order", a.config.LoadOrder, "load order file (default is <data-dir>/plugins.txt)")
	pf.String("patch-name", a.config.PatchName, "name of the generated patch plugin")
	pf.String("height-source", a.config.HeightSource, "plugin providing character heights")
	pf.String("skeleton-source", a.config.SkeletonSource, "plugin providing race heights and skeletons")

	rootCmd.SetVersionTemplate("racepatch {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// An explicit --config replaces the file found during startup.
	if f := cmd.Flags().Lookup("config"); f != nil && f.Changed {
		config, err := LoadConfigFile(mustGetString(cmd, "config"))
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(cmd.Flags())

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	return nil
}

// ExitOnError logs err and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		logError(err)
		os.Exit(1)
	}
}

// logError reports a failed command through the default logger, which
// setupCommand has configured from flags by the time a command fails.
func logError(err error) {
	logging.Err(err).Msg("Command failed")
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
