package records

import (
	"fmt"

	"github.com/agentstation/utc"

	"github.com/agentstation/racepatch/pkg/errors"
)

// Header carries plugin metadata.
type Header struct {
	Author      string    `json:"author,omitempty" yaml:"author,omitempty" toml:"author,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Masters     []string  `json:"masters,omitempty" yaml:"masters,omitempty" toml:"masters,omitempty"`
	GeneratedBy string    `json:"generated_by,omitempty" yaml:"generated_by,omitempty" toml:"generated_by,omitempty"`
	GeneratedAt *utc.Time `json:"generated_at,omitempty" yaml:"generated_at,omitempty" toml:"generated_at,omitempty"`
	RunID       string    `json:"run_id,omitempty" yaml:"run_id,omitempty" toml:"run_id,omitempty"`
}

// Plugin is one data source in the load order. Record order is the order
// the plugin lists them in and is preserved on load and save.
type Plugin struct {
	Name       string      `json:"name" yaml:"name" toml:"name"`
	Header     Header      `json:"header" yaml:"header" toml:"header"`
	Races      []Race      `json:"races,omitempty" yaml:"races,omitempty" toml:"races,omitempty"`
	Characters []Character `json:"characters,omitempty" yaml:"characters,omitempty" toml:"characters,omitempty"`
}

// FindRace returns the race with key k defined or overridden by the plugin.
func (p *Plugin) FindRace(k FormKey) (*Race, bool) {
	for i := range p.Races {
		if p.Races[i].FormKey == k {
			return &p.Races[i], true
		}
	}
	return nil, false
}

// FindCharacter returns the character with key k defined or overridden by the plugin.
func (p *Plugin) FindCharacter(k FormKey) (*Character, bool) {
	for i := range p.Characters {
		if p.Characters[i].FormKey == k {
			return &p.Characters[i], true
		}
	}
	return nil, false
}

// Validate checks every record and rejects duplicate keys.
func (p *Plugin) Validate() error {
	if p.Name == "" {
		return &errors.ValidationError{Field: "name", Message: "plugin name cannot be empty"}
	}

	seen := make(map[FormKey]bool, len(p.Races))
	for i := range p.Races {
		r := &p.Races[i]
		if err := r.Validate(); err != nil {
			return fmt.Errorf("plugin %s: %w", p.Name, err)
		}
		if seen[r.FormKey] {
			return fmt.Errorf("plugin %s: duplicate race %s: %w", p.Name, r.FormKey, errors.ErrAlreadyExists)
		}
		seen[r.FormKey] = true
	}

	seen = make(map[FormKey]bool, len(p.Characters))
	for i := range p.Characters {
		c := &p.Characters[i]
		if err := c.Validate(); err != nil {
			return fmt.Errorf("plugin %s: %w", p.Name, err)
		}
		if seen[c.FormKey] {
			return fmt.Errorf("plugin %s: duplicate character %s: %w", p.Name, c.FormKey, errors.ErrAlreadyExists)
		}
		seen[c.FormKey] = true
	}
	return nil
}
