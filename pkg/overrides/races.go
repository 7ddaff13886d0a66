package overrides

import (
	"github.com/agentstation/racepatch/pkg/records"
)

// raceEntry pairs the record an override was created from with the override.
type raceEntry struct {
	original *records.Race
	override *records.Race
}

// Races is an insertion-ordered set of race overrides.
type Races struct {
	order   []records.FormKey
	entries map[records.FormKey]*raceEntry
}

// NewRaces creates an empty race override set.
func NewRaces() *Races {
	return &Races{entries: make(map[records.FormKey]*raceEntry)}
}

// GetOrAddAsOverride returns the override for winning's key, creating it as
// a deep copy of winning on first use.
func (r *Races) GetOrAddAsOverride(winning *records.Race) *records.Race {
	if e, ok := r.entries[winning.FormKey]; ok {
		return e.override
	}
	e := &raceEntry{original: winning, override: winning.Copy()}
	r.entries[winning.FormKey] = e
	r.order = append(r.order, winning.FormKey)
	return e.override
}

// Get returns the override for k.
func (r *Races) Get(k records.FormKey) (*records.Race, bool) {
	e, ok := r.entries[k]
	if !ok {
		return nil, false
	}
	return e.override, true
}

// Original returns the record the override for k was copied from.
func (r *Races) Original(k records.FormKey) (*records.Race, bool) {
	e, ok := r.entries[k]
	if !ok {
		return nil, false
	}
	return e.original, true
}

// Exists checks if an override exists for k.
func (r *Races) Exists(k records.FormKey) bool {
	_, ok := r.entries[k]
	return ok
}

// Len returns the number of overrides.
func (r *Races) Len() int {
	return len(r.order)
}

// List returns the overrides in creation order.
func (r *Races) List() []*records.Race {
	out := make([]*records.Race, len(r.order))
	for i, k := range r.order {
		out[i] = r.entries[k].override
	}
	return out
}
