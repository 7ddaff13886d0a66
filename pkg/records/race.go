package records

import (
	"fmt"

	"github.com/agentstation/racepatch/pkg/errors"
)

// Sex selects the male or female half of a gendered value.
type Sex int

const (
	// Male selects the male value.
	Male Sex = iota
	// Female selects the female value.
	Female
)

// SexOf converts a female flag into a Sex.
func SexOf(female bool) Sex {
	if female {
		return Female
	}
	return Male
}

// IsFemale reports whether s is Female.
func (s Sex) IsFemale() bool {
	return s == Female
}

// String returns "male" or "female".
func (s Sex) String() string {
	if s == Female {
		return "female"
	}
	return "male"
}

// Gendered holds one value per sex.
type Gendered[T any] struct {
	Male   T `json:"male" yaml:"male" toml:"male"`
	Female T `json:"female" yaml:"female" toml:"female"`
}

// Get returns the value for sex s.
func (g Gendered[T]) Get(s Sex) T {
	if s == Female {
		return g.Female
	}
	return g.Male
}

// Set assigns the value for sex s.
func (g *Gendered[T]) Set(s Sex, v T) {
	if s == Female {
		g.Female = v
		return
	}
	g.Male = v
}

// SkeletalModel holds the skeleton model path of each sex. A nil path means
// the race defines no skeleton for that sex.
type SkeletalModel struct {
	Male   *string `json:"male,omitempty" yaml:"male,omitempty" toml:"male,omitempty"`
	Female *string `json:"female,omitempty" yaml:"female,omitempty" toml:"female,omitempty"`
}

// Path returns the model path for sex s. It is safe on a nil model.
func (m *SkeletalModel) Path(s Sex) *string {
	if m == nil {
		return nil
	}
	if s == Female {
		return m.Female
	}
	return m.Male
}

// Copy returns a deep copy of the model.
func (m *SkeletalModel) Copy() *SkeletalModel {
	if m == nil {
		return nil
	}
	return &SkeletalModel{Male: copyString(m.Male), Female: copyString(m.Female)}
}

// Race is a race template record. Height values are multipliers where 1.0
// is the game's baseline.
type Race struct {
	FormKey  FormKey           `json:"form_key" yaml:"form_key" toml:"form_key"`
	EditorID string            `json:"editor_id,omitempty" yaml:"editor_id,omitempty" toml:"editor_id,omitempty"`
	Name     string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Height   Gendered[float32] `json:"height" yaml:"height" toml:"height"`
	Skeleton *SkeletalModel    `json:"skeleton,omitempty" yaml:"skeleton,omitempty" toml:"skeleton,omitempty"`
}

// Copy returns a deep copy of the race.
func (r *Race) Copy() *Race {
	if r == nil {
		return nil
	}
	c := *r
	c.Skeleton = r.Skeleton.Copy()
	return &c
}

// DisplayName returns the name, falling back to the editor ID and form key.
func (r *Race) DisplayName() string {
	return displayName(r.Name, r.EditorID, r.FormKey)
}

// Validate checks the race invariants.
func (r *Race) Validate() error {
	if r.FormKey.IsNull() {
		return &errors.ValidationError{Field: "form_key", Message: fmt.Sprintf("race %q has no form key", r.DisplayName())}
	}
	if r.Height.Male <= 0 || r.Height.Female <= 0 {
		return &errors.ValidationError{
			Field:   "height",
			Value:   r.Height,
			Message: fmt.Sprintf("race %s heights must be positive", r.FormKey),
		}
	}
	return nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func displayName(name, editorID string, key FormKey) string {
	switch {
	case name != "":
		return name
	case editorID != "":
		return editorID
	default:
		return key.String()
	}
}
