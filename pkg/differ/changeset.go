// Package differ compares override records against the records they were
// created from and reports per-field changes.
package differ

import (
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/racepatch/pkg/records"
)

// ChangeType represents the type of change.
type ChangeType string

const (
	// ChangeTypeAdd indicates a field gained a value.
	ChangeTypeAdd ChangeType = "add"
	// ChangeTypeUpdate indicates a field value changed.
	ChangeTypeUpdate ChangeType = "update"
	// ChangeTypeRemove indicates a field lost its value.
	ChangeTypeRemove ChangeType = "remove"
)

// FieldChange represents a change to a specific field.
type FieldChange struct {
	Path     string     `json:"path" yaml:"path"`           // Field path (e.g., "height.female")
	OldValue string     `json:"old_value" yaml:"old_value"` // Previous value (string representation)
	NewValue string     `json:"new_value" yaml:"new_value"` // New value (string representation)
	Type     ChangeType `json:"type" yaml:"type"`
}

// RaceUpdate represents the changes an override makes to a race.
type RaceUpdate struct {
	FormKey  records.FormKey `json:"form_key" yaml:"form_key"`
	Name     string          `json:"name" yaml:"name"`
	Existing records.Race    `json:"-" yaml:"-"`
	New      records.Race    `json:"-" yaml:"-"`
	Changes  []FieldChange   `json:"changes" yaml:"changes"`
}

// CharacterUpdate represents the changes an override makes to a character.
type CharacterUpdate struct {
	FormKey  records.FormKey   `json:"form_key" yaml:"form_key"`
	Name     string            `json:"name" yaml:"name"`
	Existing records.Character `json:"-" yaml:"-"`
	New      records.Character `json:"-" yaml:"-"`
	Changes  []FieldChange     `json:"changes" yaml:"changes"`
}

// Changeset represents all changes a patch makes over the winning records.
type Changeset struct {
	Races      []RaceUpdate      `json:"races" yaml:"races"`
	Characters []CharacterUpdate `json:"characters" yaml:"characters"`
	Summary    ChangesetSummary  `json:"summary" yaml:"summary"`
}

// ChangesetSummary provides summary statistics for a changeset.
type ChangesetSummary struct {
	RacesUpdated      int `json:"races_updated" yaml:"races_updated"`
	CharactersUpdated int `json:"characters_updated" yaml:"characters_updated"`
	FieldsChanged     int `json:"fields_changed" yaml:"fields_changed"`
	TotalChanges      int `json:"total_changes" yaml:"total_changes"`
}

// HasChanges returns true if the changeset contains any changes.
func (c *Changeset) HasChanges() bool {
	return c.Summary.TotalChanges > 0
}

// IsEmpty returns true if the changeset contains no changes.
func (c *Changeset) IsEmpty() bool {
	return c.Summary.TotalChanges == 0
}

// calculateSummary computes the summary for a changeset.
func calculateSummary(races []RaceUpdate, characters []CharacterUpdate) ChangesetSummary {
	fields := 0
	for _, r := range races {
		fields += len(r.Changes)
	}
	for _, c := range characters {
		fields += len(c.Changes)
	}
	return ChangesetSummary{
		RacesUpdated:      len(races),
		CharactersUpdated: len(characters),
		FieldsChanged:     fields,
		TotalChanges:      len(races) + len(characters),
	}
}

// String returns a human-readable summary of the changeset.
func (c *Changeset) String() string {
	if c.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	if c.Summary.RacesUpdated > 0 {
		parts = append(parts, fmt.Sprintf("Races: %d updated", c.Summary.RacesUpdated))
	}
	if c.Summary.CharactersUpdated > 0 {
		parts = append(parts, fmt.Sprintf("Characters: %d updated", c.Summary.CharactersUpdated))
	}

	return fmt.Sprintf("Changeset: %s (Total: %d changes, %d fields)",
		strings.Join(parts, "; "), c.Summary.TotalChanges, c.Summary.FieldsChanged)
}

// Print writes a detailed, human-readable view of the changeset to w.
func (c *Changeset) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, c.String())
	if c.IsEmpty() {
		return
	}
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	if len(c.Races) > 0 {
		_, _ = fmt.Fprintf(w, "\n🔄 Updated Races (%d):\n", len(c.Races))
		for _, u := range c.Races {
			printUpdate(w, u.FormKey, u.Name, u.Changes)
		}
	}

	if len(c.Characters) > 0 {
		_, _ = fmt.Fprintf(w, "\n🔄 Updated Characters (%d):\n", len(c.Characters))
		for _, u := range c.Characters {
			printUpdate(w, u.FormKey, u.Name, u.Changes)
		}
	}
}

func printUpdate(w io.Writer, key records.FormKey, name string, changes []FieldChange) {
	_, _ = fmt.Fprintf(w, "  • %s", key)
	if name != "" {
		_, _ = fmt.Fprintf(w, " (%s)", name)
	}
	_, _ = fmt.Fprintln(w, ":")
	for _, change := range changes {
		_, _ = fmt.Fprintf(w, "    - %s: %s → %s\n", change.Path, change.OldValue, change.NewValue)
	}
}
