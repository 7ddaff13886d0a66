package records

import (
	"fmt"

	"github.com/agentstation/racepatch/pkg/errors"
)

// Character is an individual NPC record. Height is a multiplier applied on
// top of the race height for the character's sex.
type Character struct {
	FormKey  FormKey `json:"form_key" yaml:"form_key" toml:"form_key"`
	EditorID string  `json:"editor_id,omitempty" yaml:"editor_id,omitempty" toml:"editor_id,omitempty"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Height   float32 `json:"height" yaml:"height" toml:"height"`
	Race     FormKey `json:"race" yaml:"race" toml:"race"`
	Female   bool    `json:"female,omitempty" yaml:"female,omitempty" toml:"female,omitempty"`
}

// Sex returns the character's sex.
func (c *Character) Sex() Sex {
	return SexOf(c.Female)
}

// RaceSex returns the key that links the character to its race height.
func (c *Character) RaceSex() RaceSexKey {
	return RaceSexKey{Race: c.Race, Female: c.Female}
}

// Copy returns a copy of the character.
func (c *Character) Copy() *Character {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// DisplayName returns the name, falling back to the editor ID and form key.
func (c *Character) DisplayName() string {
	return displayName(c.Name, c.EditorID, c.FormKey)
}

// Validate checks the character invariants. Heights are not range checked:
// a scaled height may legitimately end up at or below zero.
func (c *Character) Validate() error {
	if c.FormKey.IsNull() {
		return &errors.ValidationError{Field: "form_key", Message: fmt.Sprintf("character %q has no form key", c.DisplayName())}
	}
	if c.Race.IsNull() {
		return &errors.ValidationError{Field: "race", Message: fmt.Sprintf("character %s has no race", c.FormKey)}
	}
	return nil
}

// RaceSexKey identifies one sex of one race.
type RaceSexKey struct {
	Race   FormKey
	Female bool
}

// String formats the key as "<form key>/<sex>".
func (k RaceSexKey) String() string {
	return k.Race.String() + "/" + SexOf(k.Female).String()
}
