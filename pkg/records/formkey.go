// Package records defines the game records racepatch reads and writes:
// races, characters, the plugins that carry them and the keys that
// identify them across plugins.
package records

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/racepatch/pkg/errors"
)

// MaxLocalID is the largest form ID a plugin can assign locally.
const MaxLocalID = 0xFFFFFF

// FormKey identifies a record independently of load order: the local form
// ID plus the plugin that first defined the record.
type FormKey struct {
	ID     uint32
	Plugin string
}

// NewFormKey returns the key for id defined in plugin.
func NewFormKey(id uint32, plugin string) FormKey {
	return FormKey{ID: id, Plugin: plugin}
}

// ParseFormKey parses the "<hex id>:<plugin>" form, e.g. "013746:Skyrim.esm".
func ParseFormKey(s string) (FormKey, error) {
	idPart, plugin, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return FormKey{}, &errors.ParseError{Format: "formkey", Message: fmt.Sprintf("%q: missing ':' separator", s)}
	}
	if plugin == "" {
		return FormKey{}, &errors.ParseError{Format: "formkey", Message: fmt.Sprintf("%q: missing plugin name", s)}
	}
	id, err := strconv.ParseUint(idPart, 16, 32)
	if err != nil {
		return FormKey{}, errors.NewParseError("formkey", "", fmt.Sprintf("%q: invalid form id", s), err)
	}
	if id > MaxLocalID {
		return FormKey{}, &errors.ParseError{Format: "formkey", Message: fmt.Sprintf("%q: form id exceeds %06X", s, MaxLocalID)}
	}
	return FormKey{ID: uint32(id), Plugin: plugin}, nil
}

// MustParseFormKey is like ParseFormKey but panics on error.
// Intended for tests and static tables.
func MustParseFormKey(s string) FormKey {
	k, err := ParseFormKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// String formats the key as "<hex id>:<plugin>".
func (k FormKey) String() string {
	return fmt.Sprintf("%06X:%s", k.ID, k.Plugin)
}

// IsNull reports whether the key is the zero key.
func (k FormKey) IsNull() bool {
	return k.ID == 0 && k.Plugin == ""
}

// MarshalText implements encoding.TextMarshaler.
func (k FormKey) MarshalText() ([]byte, error) {
	if k.IsNull() {
		return []byte{}, nil
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FormKey) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*k = FormKey{}
		return nil
	}
	parsed, err := ParseFormKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
