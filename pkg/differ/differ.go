package differ

import (
	"strconv"

	"github.com/agentstation/racepatch/pkg/overrides"
	"github.com/agentstation/racepatch/pkg/records"
)

// Differ handles change detection between records and their overrides.
type Differ interface {
	// Race compares a race with its override and returns nil if they match
	Race(existing, updated *records.Race) *RaceUpdate

	// Character compares a character with its override and returns nil if they match
	Character(existing, updated *records.Character) *CharacterUpdate

	// Patch compares every override in a patch with the record it shadows
	Patch(patch *overrides.Patch) *Changeset
}

// differ is the default implementation of Differ.
type differ struct {
	exactHeights bool
}

// New creates a Differ with default settings.
func New(opts ...Option) Differ {
	d := &differ{}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Patch compares every override in patch with its original, in override
// creation order.
func (diff *differ) Patch(patch *overrides.Patch) *Changeset {
	changeset := &Changeset{
		Races:      []RaceUpdate{},
		Characters: []CharacterUpdate{},
	}

	for _, o := range patch.Races().List() {
		original, ok := patch.Races().Original(o.FormKey)
		if !ok {
			continue
		}
		if update := diff.Race(original, o); update != nil {
			changeset.Races = append(changeset.Races, *update)
		}
	}

	for _, o := range patch.Characters().List() {
		original, ok := patch.Characters().Original(o.FormKey)
		if !ok {
			continue
		}
		if update := diff.Character(original, o); update != nil {
			changeset.Characters = append(changeset.Characters, *update)
		}
	}

	changeset.Summary = calculateSummary(changeset.Races, changeset.Characters)
	return changeset
}

// Race compares two versions of a race.
func (diff *differ) Race(existing, updated *records.Race) *RaceUpdate {
	changes := []FieldChange{}

	for _, sex := range []records.Sex{records.Male, records.Female} {
		if c := diff.height("height."+sex.String(), existing.Height.Get(sex), updated.Height.Get(sex)); c != nil {
			changes = append(changes, *c)
		}
	}
	for _, sex := range []records.Sex{records.Male, records.Female} {
		if c := diffPath("skeleton."+sex.String(), existing.Skeleton.Path(sex), updated.Skeleton.Path(sex)); c != nil {
			changes = append(changes, *c)
		}
	}

	if len(changes) == 0 {
		return nil
	}

	return &RaceUpdate{
		FormKey:  existing.FormKey,
		Name:     updated.DisplayName(),
		Existing: *existing,
		New:      *updated,
		Changes:  changes,
	}
}

// Character compares two versions of a character.
func (diff *differ) Character(existing, updated *records.Character) *CharacterUpdate {
	changes := []FieldChange{}

	if c := diff.height("height", existing.Height, updated.Height); c != nil {
		changes = append(changes, *c)
	}

	if existing.Race != updated.Race {
		changes = append(changes, FieldChange{
			Path:     "race",
			OldValue: existing.Race.String(),
			NewValue: updated.Race.String(),
			Type:     ChangeTypeUpdate,
		})
	}

	if len(changes) == 0 {
		return nil
	}

	return &CharacterUpdate{
		FormKey:  existing.FormKey,
		Name:     updated.DisplayName(),
		Existing: *existing,
		New:      *updated,
		Changes:  changes,
	}
}

// height compares two height multipliers.
func (diff *differ) height(path string, existing, updated float32) *FieldChange {
	if diff.exactHeights {
		if existing == updated {
			return nil
		}
	} else if records.HeightsEqual(existing, updated) {
		return nil
	}
	return &FieldChange{
		Path:     path,
		OldValue: formatHeight(existing),
		NewValue: formatHeight(updated),
		Type:     ChangeTypeUpdate,
	}
}

// diffPath compares two optional model paths.
func diffPath(path string, existing, updated *string) *FieldChange {
	if records.SkeletonPathsEqual(existing, updated) {
		return nil
	}

	change := &FieldChange{Path: path, Type: ChangeTypeUpdate}
	switch {
	case existing == nil:
		change.Type = ChangeTypeAdd
		change.NewValue = *updated
	case updated == nil:
		change.Type = ChangeTypeRemove
		change.OldValue = *existing
	default:
		change.OldValue = *existing
		change.NewValue = *updated
	}
	return change
}

// Helper functions

// formatHeight formats a height multiplier with the fewest digits that
// round-trip.
func formatHeight(h float32) string {
	return strconv.FormatFloat(float64(h), 'g', -1, 32)
}
