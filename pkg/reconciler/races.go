package reconciler

import (
	"context"

	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/logging"
	"github.com/agentstation/racepatch/pkg/overrides"
	"github.com/agentstation/racepatch/pkg/records"
)

// ModifiedRaceHeights maps a (race, sex) pair to the height the race pass
// wrote for it. A pair is present only if that height actually changed.
type ModifiedRaceHeights map[records.RaceSexKey]float32

// Contains reports whether the race pass changed the height of k.
func (m ModifiedRaceHeights) Contains(k records.RaceSexKey) bool {
	_, ok := m[k]
	return ok
}

// races compares every race of source with its winning override and copies
// differing heights and skeletons into the patch.
func (r *reconciler) races(ctx context.Context, lo LoadOrder, source *records.Plugin, patch *overrides.Patch, stats *ResultStatistics) (ModifiedRaceHeights, error) {
	ctx = logging.WithOperation(logging.WithPlugin(ctx, source.Name), "reconcile_races")
	modified := make(ModifiedRaceHeights)

	for i := range source.Races {
		if err := checkCanceled(ctx, "reconcile races"); err != nil {
			return nil, err
		}

		src := &source.Races[i]
		winning, ok := lo.WinningRace(src.FormKey)
		if !ok {
			return nil, errors.NewMissingOverrideError("race", src.FormKey.String(), source.Name)
		}

		stats.RacesExamined++
		if patchRace(logging.WithRecord(ctx, "race", src.FormKey.String()), src, winning, patch, modified) {
			stats.RacesPatched++
		} else {
			stats.RacesSkipped++
		}
	}

	return modified, nil
}

// patchRace reconciles one race and reports whether it wrote an override.
func patchRace(ctx context.Context, src, winning *records.Race, patch *overrides.Patch, modified ModifiedRaceHeights) bool {
	logger := logging.FromContext(ctx)

	heightChanged := map[records.Sex]bool{}
	skeletonChanged := false
	for _, sex := range []records.Sex{records.Male, records.Female} {
		heightChanged[sex] = !records.HeightsEqual(winning.Height.Get(sex), src.Height.Get(sex))
		if !records.SkeletonPathsEqual(winning.Skeleton.Path(sex), src.Skeleton.Path(sex)) {
			skeletonChanged = true
		}
	}

	if !heightChanged[records.Male] && !heightChanged[records.Female] && !skeletonChanged {
		logger.Debug().
			Str("race", src.DisplayName()).
			Msg("All values for race are correct, skipping")
		return false
	}

	o := patch.Races().GetOrAddAsOverride(winning)

	for _, sex := range []records.Sex{records.Male, records.Female} {
		if !heightChanged[sex] {
			continue
		}
		h := src.Height.Get(sex)
		o.Height.Set(sex, h)
		modified[records.RaceSexKey{Race: o.FormKey, Female: sex.IsFemale()}] = h
		logger.Info().
			Str("race", src.DisplayName()).
			Stringer("sex", sex).
			Float32("old_height", winning.Height.Get(sex)).
			Float32("new_height", h).
			Msg("Race height updated")
	}

	if skeletonChanged {
		// Both paths move together so a race never mixes skeletons.
		o.Skeleton = src.Skeleton.Copy()
		logger.Info().
			Str("race", src.DisplayName()).
			Str("male_path", pathOrEmpty(o.Skeleton.Path(records.Male))).
			Str("female_path", pathOrEmpty(o.Skeleton.Path(records.Female))).
			Msg("Race skeleton updated")
	}

	return true
}

func pathOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
