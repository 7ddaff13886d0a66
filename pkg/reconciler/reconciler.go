// Package reconciler merges a race skeleton/height plugin and a character
// height plugin into one override patch.
//
// A run makes two passes over the load order. The race pass re-applies every
// race height and skeleton path defined by the skeleton source that a later
// plugin reverted, recording which (race, sex) heights it changed. The
// character pass then applies the height source's character heights, either
// directly when the character's race height is untouched or as a scaled
// adjustment when the race pass changed it.
package reconciler

import (
	"context"

	"github.com/agentstation/racepatch/pkg/differ"
	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/logging"
	"github.com/agentstation/racepatch/pkg/overrides"
	"github.com/agentstation/racepatch/pkg/records"
)

// LoadOrder is the read-only view of the active plugins a run needs.
type LoadOrder interface {
	// Plugin returns the named plugin if it is listed, enabled and present.
	Plugin(name string) (*records.Plugin, bool)

	// WinningRace returns the highest priority version of a race.
	WinningRace(k records.FormKey) (*records.Race, bool)

	// WinningCharacter returns the highest priority version of a character.
	WinningCharacter(k records.FormKey) (*records.Character, bool)
}

// Reconciler is the main interface for building a height patch.
type Reconciler interface {
	// Run executes both passes and fills patch with the resulting overrides.
	Run(ctx context.Context, lo LoadOrder, patch *overrides.Patch) (*Result, error)

	// Races runs the race pass over the races defined by source.
	Races(ctx context.Context, lo LoadOrder, source *records.Plugin, patch *overrides.Patch) (ModifiedRaceHeights, error)

	// Characters runs the character pass over the characters defined by source.
	Characters(ctx context.Context, lo LoadOrder, source *records.Plugin, patch *overrides.Patch, modified ModifiedRaceHeights) error
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	heightSource   string
	skeletonSource string
	multiplier     float64
	dryRun         bool
	exactDiff      bool
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		heightSource:   options.heightSource,
		skeletonSource: options.skeletonSource,
		multiplier:     options.multiplier,
		dryRun:         options.dryRun,
		exactDiff:      options.exactDiff,
	}, nil
}

// Run resolves both source plugins, then runs the race pass followed by the
// character pass. Nothing is written to patch if a source plugin is missing.
func (r *reconciler) Run(ctx context.Context, lo LoadOrder, patch *overrides.Patch) (*Result, error) {
	logger := logging.FromContext(ctx)
	result := NewResult()
	result.Metadata.HeightSource = r.heightSource
	result.Metadata.SkeletonSource = r.skeletonSource
	result.Metadata.Multiplier = r.multiplier
	result.Metadata.DryRun = r.dryRun
	result.Metadata.Patch = patch.Name()
	result.Metadata.RunID = patch.RunID()

	// Step 1: Resolve source plugins
	heights, err := r.source(lo, r.heightSource)
	if err != nil {
		return nil, err
	}
	skeletons, err := r.source(lo, r.skeletonSource)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("run_id", patch.RunID()).
		Str("height_source", r.heightSource).
		Str("skeleton_source", r.skeletonSource).
		Float64("multiplier", r.multiplier).
		Msg("Starting height reconciliation")

	// Step 2: Re-apply race heights and skeletons
	modified, err := r.races(ctx, lo, skeletons, patch, &result.Metadata.Stats)
	if err != nil {
		return nil, err
	}

	// Step 3: Adjust characters against the modified races
	if err := r.characters(ctx, lo, heights, patch, modified, &result.Metadata.Stats); err != nil {
		return nil, err
	}

	// Step 4: Record what the patch changes
	result.ModifiedRaceHeights = modified
	result.Changeset = differ.New(differ.WithExactHeights(r.exactDiff)).Patch(patch)
	result.Finalize()

	logger.Info().
		Int("races_patched", result.Metadata.Stats.RacesPatched).
		Int("characters_adjusted", result.Metadata.Stats.CharactersAdjusted()).
		Dur("duration", result.Metadata.Duration).
		Msg("Height reconciliation complete")

	return result, nil
}

// Races runs the race pass on its own.
func (r *reconciler) Races(ctx context.Context, lo LoadOrder, source *records.Plugin, patch *overrides.Patch) (ModifiedRaceHeights, error) {
	var stats ResultStatistics
	return r.races(ctx, lo, source, patch, &stats)
}

// Characters runs the character pass on its own.
func (r *reconciler) Characters(ctx context.Context, lo LoadOrder, source *records.Plugin, patch *overrides.Patch, modified ModifiedRaceHeights) error {
	var stats ResultStatistics
	return r.characters(ctx, lo, source, patch, modified, &stats)
}

// source looks up a required source plugin.
func (r *reconciler) source(lo LoadOrder, name string) (*records.Plugin, error) {
	plugin, ok := lo.Plugin(name)
	if !ok || plugin == nil {
		return nil, errors.NewPreconditionError(name, "is not activated or present in the load order")
	}
	return plugin, nil
}

// checkCanceled returns a wrapped context error once ctx is done.
func checkCanceled(ctx context.Context, operation string) error {
	select {
	case <-ctx.Done():
		return errors.WrapCanceled(operation, ctx.Err())
	default:
		return nil
	}
}
