// Package patch implements the patch command, which runs both
// reconciliation passes and writes the resulting override plugin.
package patch

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/racepatch/internal/appcontext"
	"github.com/agentstation/racepatch/internal/cmd/output"
	"github.com/agentstation/racepatch/internal/plugins"
	"github.com/agentstation/racepatch/internal/report"
	"github.com/agentstation/racepatch/pkg/logging"
	"github.com/agentstation/racepatch/pkg/overrides"
	"github.com/agentstation/racepatch/pkg/reconciler"
)

// NewCommand creates the patch command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patch",
		GroupID: "core",
		Short:   "Generate the height and skeleton patch",
		Long: `Patch checks the load order, re-applies the skeleton source's race
heights and skeletons, adjusts the height source's characters, and writes the
overrides as a new plugin.

The previous patch, if present in the load order, is ignored while the new
one is built.`,
		Example: `  racepatch patch -d ./Data                       # Write the patch into ./Data
  racepatch patch --dry-run -o yaml               # Show every change without writing
  racepatch patch --multiplier 0.75 --report r.md # Scale harder and keep a report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportPath, _ := cmd.Flags().GetString("report")
			return run(cmd, app, reportPath)
		},
	}

	cmd.Flags().String("output-dir", "", "directory the patch is written to (default is the data directory)")
	cmd.Flags().Float64("multiplier", app.Settings().Multiplier, "share of a character's height deviation applied when its race height changed")
	cmd.Flags().Bool("dry-run", false, "run both passes without writing the patch")
	cmd.Flags().String("report", "", "write a Markdown report of the run to this file")
	cmd.Flags().Bool("exact-diff", false, "list height changes smaller than the comparison tolerance")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, reportPath string) error {
	s := app.Settings()
	logger := app.Logger()
	ctx := logging.WithLogger(cmd.Context(), logger)

	lo, err := app.LoadOrder(ctx)
	if err != nil {
		return err
	}
	if err := lo.Check(s.PatchName, s.SkeletonSource, s.HeightSource); err != nil {
		return err
	}

	r, err := app.Reconciler()
	if err != nil {
		return err
	}

	patch := overrides.New(s.PatchName)
	result, err := r.Run(ctx, lo.Without(s.PatchName), patch)
	if err != nil {
		return err
	}

	if !s.DryRun {
		path, err := plugins.Save(s.OutputDir, patch.Plugin())
		if err != nil {
			return err
		}
		logger.Info().
			Str("path", path).
			Str("run_id", patch.RunID()).
			Int("races", patch.Races().Len()).
			Int("characters", patch.Characters().Len()).
			Msg("Patch written")
	}

	if reportPath != "" {
		if err := report.WriteFile(reportPath, result); err != nil {
			return err
		}
		logger.Info().Str("path", reportPath).Msg("Report written")
	}

	return writeResult(cmd, app, result)
}

func writeResult(cmd *cobra.Command, app appcontext.Interface, result *reconciler.Result) error {
	format := output.DetectFormat(app.OutputFormat())
	out := cmd.OutOrStdout()

	if err := output.FormatResult(out, result, format); err != nil {
		return err
	}

	switch format {
	case output.FormatJSON, output.FormatYAML:
		return nil
	default:
		_, err := fmt.Fprintln(out, result.Summary())
		return err
	}
}
