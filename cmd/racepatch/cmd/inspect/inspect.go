// Package inspect implements the inspect command, which shows the winning
// overrides for the records a source plugin defines.
package inspect

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/racepatch/internal/appcontext"
	"github.com/agentstation/racepatch/internal/cmd/output"
	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/loadorder"
	"github.com/agentstation/racepatch/pkg/logging"
	"github.com/agentstation/racepatch/pkg/records"
)

// NewCommand creates the inspect command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inspect [resource]",
		GroupID: "core",
		Short:   "Show winning overrides for a source plugin's records",
		Long: `Inspect resolves each record defined by a plugin against the full load
order and shows the version that currently wins.

Available subcommands:
  races       - races defined by a plugin (default: the skeleton source)
  characters  - characters defined by a plugin (default: the height source)`,
		Example: `  racepatch inspect races                     # Races of the skeleton source
  racepatch inspect characters -o wide        # Characters of the height source
  racepatch inspect races Skyrim.esm -o yaml  # Races of any plugin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newRacesCommand(app))
	cmd.AddCommand(newCharactersCommand(app))

	return cmd
}

func newRacesCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "races [plugin]",
		Aliases: []string{"race"},
		Short:   "Show winning race overrides",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, source, err := resolve(cmd, app, args, app.Settings().SkeletonSource)
			if err != nil {
				return err
			}
			return output.FormatRaces(cmd.OutOrStdout(), WinningRaces(lo, source), output.DetectFormat(app.OutputFormat()))
		},
	}
}

func newCharactersCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "characters [plugin]",
		Aliases: []string{"character", "npcs"},
		Short:   "Show winning character overrides",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, source, err := resolve(cmd, app, args, app.Settings().HeightSource)
			if err != nil {
				return err
			}
			return output.FormatCharacters(cmd.OutOrStdout(), WinningCharacters(lo, source), output.DetectFormat(app.OutputFormat()))
		},
	}
}

func resolve(cmd *cobra.Command, app appcontext.Interface, args []string, fallback string) (*loadorder.LoadOrder, *records.Plugin, error) {
	name := fallback
	if len(args) == 1 {
		name = args[0]
	}

	ctx := logging.WithLogger(cmd.Context(), app.Logger())
	lo, err := app.LoadOrder(ctx)
	if err != nil {
		return nil, nil, err
	}

	source, ok := lo.Plugin(name)
	if !ok {
		return nil, nil, errors.NewNotFoundError("plugin", name)
	}
	return lo, source, nil
}

// WinningRaces returns the winning override of every race source defines,
// in source order. Races without a winner are skipped.
func WinningRaces(lo *loadorder.LoadOrder, source *records.Plugin) []*records.Race {
	out := make([]*records.Race, 0, len(source.Races))
	for _, r := range source.Races {
		if w, ok := lo.WinningRace(r.FormKey); ok {
			out = append(out, w)
		}
	}
	return out
}

// WinningCharacters returns the winning override of every character source
// defines, in source order.
func WinningCharacters(lo *loadorder.LoadOrder, source *records.Plugin) []*records.Character {
	out := make([]*records.Character, 0, len(source.Characters))
	for _, c := range source.Characters {
		if w, ok := lo.WinningCharacter(c.FormKey); ok {
			out = append(out, w)
		}
	}
	return out
}
