// Package check implements the check command, which verifies that the load
// order can run the patcher without running it.
package check

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/racepatch/internal/appcontext"
	"github.com/agentstation/racepatch/internal/cmd/alerts"
	"github.com/agentstation/racepatch/internal/cmd/output"
	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/loadorder"
	"github.com/agentstation/racepatch/pkg/logging"
)

// ErrCheckFailed is returned when the load order cannot run the patcher.
var ErrCheckFailed = errors.New("load order check failed")

// NewCommand creates the check command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		GroupID: "core",
		Short:   "Check that the load order can be patched",
		Long: `Check verifies that the skeleton source and height source plugins are
present, enabled, and load before the patch plugin. Plugins named by the load
order whose files are missing are reported as warnings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := app.Settings()
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			lo, err := app.LoadOrder(ctx)
			if err != nil {
				return err
			}

			fw := alerts.NewFormatWriter(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat())).
				WithNoColor(app.NoColor())
			return Run(alerts.MultiWriter(fw, logWriter(ctx)), lo, s)
		},
	}
}

// Run writes an alert per finding to w. It returns ErrCheckFailed when a
// required plugin fails its precondition.
func Run(w alerts.Writer, lo *loadorder.LoadOrder, s appcontext.Settings) error {
	for _, l := range lo.Listings() {
		if l.Enabled && !l.Present() && !isRequired(l.Name, s) {
			alert := alerts.NewWarning(fmt.Sprintf("%s is enabled but its file is missing", l.Name))
			if err := w.WriteAlert(alert); err != nil {
				return err
			}
		}
	}

	if err := lo.Check(s.PatchName, s.SkeletonSource, s.HeightSource); err != nil {
		alert := alerts.NewError("Load order cannot be patched").WithError(err)
		var pe *errors.PreconditionError
		if errors.As(err, &pe) {
			alert = alert.WithDetails(fmt.Sprintf("plugin: %s", pe.Plugin))
		}
		if werr := w.WriteAlert(alert); werr != nil {
			return werr
		}
		return ErrCheckFailed
	}

	details := []string{
		fmt.Sprintf("skeleton source: %s (position %d)", s.SkeletonSource, lo.Position(s.SkeletonSource)),
		fmt.Sprintf("height source: %s (position %d)", s.HeightSource, lo.Position(s.HeightSource)),
	}
	if pos := lo.Position(s.PatchName); pos >= 0 {
		details = append(details, fmt.Sprintf("patch: %s (position %d, rebuilt on patch)", s.PatchName, pos))
	} else {
		details = append(details, fmt.Sprintf("patch: %s (not yet in the load order)", s.PatchName))
	}

	return w.WriteAlert(alerts.NewSuccess("Load order can be patched").WithDetails(details...))
}

// logWriter records each alert at debug level.
func logWriter(ctx context.Context) alerts.Writer {
	logger := logging.FromContext(ctx)
	return alerts.WriterFunc(func(a *alerts.Alert) error {
		logger.Debug().
			Str("alert_level", a.Level.String()).
			Strs("details", a.Details).
			AnErr("reason", a.Err).
			Msg(a.Message)
		return nil
	})
}

// isRequired reports whether name is one of the two source plugins. Plugin
// names compare case-insensitively.
func isRequired(name string, s appcontext.Settings) bool {
	return strings.EqualFold(name, s.SkeletonSource) || strings.EqualFold(name, s.HeightSource)
}
