package reconciler

import (
	"context"

	"github.com/agentstation/racepatch/pkg/constants"
	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/logging"
	"github.com/agentstation/racepatch/pkg/overrides"
	"github.com/agentstation/racepatch/pkg/records"
)

// characters applies the height of every character defined by source.
func (r *reconciler) characters(ctx context.Context, lo LoadOrder, source *records.Plugin, patch *overrides.Patch, modified ModifiedRaceHeights, stats *ResultStatistics) error {
	ctx = logging.WithOperation(logging.WithPlugin(ctx, source.Name), "adjust_characters")

	for i := range source.Characters {
		if err := checkCanceled(ctx, "adjust characters"); err != nil {
			return err
		}

		src := &source.Characters[i]
		winning, ok := lo.WinningCharacter(src.FormKey)
		if !ok {
			return errors.NewMissingOverrideError("character", src.FormKey.String(), source.Name)
		}

		// Every character of the height source gets an override, even one
		// whose height is already correct.
		o := patch.Characters().GetOrAddAsOverride(winning)
		stats.CharactersExamined++

		cctx := logging.WithRecord(ctx, "character", src.FormKey.String())
		if modified.Contains(o.RaceSex()) {
			r.scaleHeight(cctx, src, o)
			stats.CharactersScaled++
			continue
		}
		if applyHeight(cctx, src, o) {
			stats.CharactersDirect++
		} else {
			stats.CharactersSkipped++
		}
	}

	return nil
}

// applyHeight copies the source height onto a character whose race height
// was not changed. It reports whether the override changed.
func applyHeight(ctx context.Context, src, o *records.Character) bool {
	logger := logging.FromContext(ctx)

	if records.HeightsEqual(o.Height, src.Height) {
		logger.Debug().
			Str("character", o.DisplayName()).
			Msg("Race untouched and height already correct, skipping")
		return false
	}

	logger.Info().
		Str("character", o.DisplayName()).
		Float32("old_height", o.Height).
		Float32("new_height", src.Height).
		Msg("Race untouched, applying height directly")
	o.Height = src.Height
	return true
}

// scaleHeight shifts a character's height by a fraction of the source
// plugin's deviation from the neutral height. It always applies, so running
// it twice on the same override moves the height twice.
func (r *reconciler) scaleHeight(ctx context.Context, src, o *records.Character) {
	heightDiff := float32(constants.BaselineHeight) - src.Height
	newHeight := o.Height - float32(float64(heightDiff)*r.multiplier)

	logger := logging.FromContext(ctx)
	logger.Info().
		Str("character", o.DisplayName()).
		Float32("old_height", o.Height).
		Float32("new_height", newHeight).
		Msg("Race height changed, scaling character height")
	if newHeight <= 0 {
		logger.Warn().
			Str("character", o.DisplayName()).
			Float64("multiplier", r.multiplier).
			Float32("new_height", newHeight).
			Msg("Scaled character height is not positive")
	}
	o.Height = newHeight
}
