// Package loadorder resolves records across an ordered list of plugins.
// Plugins later in the order have higher priority: the version of a record
// in the last enabled plugin that carries it is the winning override.
package loadorder

import (
	"strings"

	"github.com/agentstation/racepatch/pkg/records"
)

// Listing is one line of the load order. Plugin is nil when the load order
// names a plugin whose file is not present.
type Listing struct {
	Name    string
	Enabled bool
	Plugin  *records.Plugin
}

// Present reports whether the plugin's records are available.
func (l Listing) Present() bool {
	return l.Plugin != nil
}

// LoadOrder is an immutable, priority-ordered view over plugins.
type LoadOrder struct {
	listings []Listing
	index    map[string]int

	races      map[records.FormKey]*records.Race
	characters map[records.FormKey]*records.Character
}

// New builds a load order from listings in priority order (lowest first).
// Later listings with the same name replace earlier ones in place.
func New(listings ...Listing) *LoadOrder {
	lo := &LoadOrder{
		index:      make(map[string]int, len(listings)),
		races:      make(map[records.FormKey]*records.Race),
		characters: make(map[records.FormKey]*records.Character),
	}

	for _, l := range listings {
		key := normalize(l.Name)
		if i, ok := lo.index[key]; ok {
			lo.listings[i] = l
			continue
		}
		lo.index[key] = len(lo.listings)
		lo.listings = append(lo.listings, l)
	}

	// Layer records in priority order; higher priority overwrites.
	for _, l := range lo.listings {
		if !l.Enabled || l.Plugin == nil {
			continue
		}
		for i := range l.Plugin.Races {
			r := &l.Plugin.Races[i]
			lo.races[r.FormKey] = r
		}
		for i := range l.Plugin.Characters {
			c := &l.Plugin.Characters[i]
			lo.characters[c.FormKey] = c
		}
	}

	return lo
}

// FromPlugins builds a load order of enabled plugins in the given order.
func FromPlugins(plugins ...*records.Plugin) *LoadOrder {
	listings := make([]Listing, len(plugins))
	for i, p := range plugins {
		listings[i] = Listing{Name: p.Name, Enabled: true, Plugin: p}
	}
	return New(listings...)
}

// Append returns a new load order with listings added at the highest priority.
func (lo *LoadOrder) Append(listings ...Listing) *LoadOrder {
	all := make([]Listing, 0, len(lo.listings)+len(listings))
	all = append(all, lo.listings...)
	all = append(all, listings...)
	return New(all...)
}

// Without returns a new load order with the named listings removed. A
// rebuilt patch is resolved against the load order without its own previous
// output.
func (lo *LoadOrder) Without(names ...string) *LoadOrder {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[normalize(n)] = true
	}
	kept := make([]Listing, 0, len(lo.listings))
	for _, l := range lo.listings {
		if !drop[normalize(l.Name)] {
			kept = append(kept, l)
		}
	}
	return New(kept...)
}

// Listings returns the listings in priority order (lowest first).
func (lo *LoadOrder) Listings() []Listing {
	out := make([]Listing, len(lo.listings))
	copy(out, lo.listings)
	return out
}

// Len returns the number of listings.
func (lo *LoadOrder) Len() int {
	return len(lo.listings)
}

// Listing returns the listing for name. Names compare case-insensitively.
func (lo *LoadOrder) Listing(name string) (Listing, bool) {
	i, ok := lo.index[normalize(name)]
	if !ok {
		return Listing{}, false
	}
	return lo.listings[i], true
}

// Position returns the index of name in the load order, or -1.
func (lo *LoadOrder) Position(name string) int {
	if i, ok := lo.index[normalize(name)]; ok {
		return i
	}
	return -1
}

// Plugin returns the plugin named name if it is listed, enabled and present.
func (lo *LoadOrder) Plugin(name string) (*records.Plugin, bool) {
	l, ok := lo.Listing(name)
	if !ok || !l.Enabled || l.Plugin == nil {
		return nil, false
	}
	return l.Plugin, true
}

// WinningRace returns the highest-priority version of the race.
func (lo *LoadOrder) WinningRace(k records.FormKey) (*records.Race, bool) {
	r, ok := lo.races[k]
	return r, ok
}

// WinningCharacter returns the highest-priority version of the character.
func (lo *LoadOrder) WinningCharacter(k records.FormKey) (*records.Character, bool) {
	c, ok := lo.characters[k]
	return c, ok
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
