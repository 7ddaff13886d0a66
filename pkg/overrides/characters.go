package overrides

import (
	"github.com/agentstation/racepatch/pkg/records"
)

type characterEntry struct {
	original *records.Character
	override *records.Character
}

// Characters is an insertion-ordered set of character overrides.
//
//nolint:dupl // mirrors Races for a different record type
type Characters struct {
	order   []records.FormKey
	entries map[records.FormKey]*characterEntry
}

// NewCharacters creates an empty character override set.
func NewCharacters() *Characters {
	return &Characters{entries: make(map[records.FormKey]*characterEntry)}
}

// GetOrAddAsOverride returns the override for winning's key, creating it as
// a copy of winning on first use.
func (c *Characters) GetOrAddAsOverride(winning *records.Character) *records.Character {
	if e, ok := c.entries[winning.FormKey]; ok {
		return e.override
	}
	e := &characterEntry{original: winning, override: winning.Copy()}
	c.entries[winning.FormKey] = e
	c.order = append(c.order, winning.FormKey)
	return e.override
}

// Get returns the override for k.
func (c *Characters) Get(k records.FormKey) (*records.Character, bool) {
	e, ok := c.entries[k]
	if !ok {
		return nil, false
	}
	return e.override, true
}

// Original returns the record the override for k was copied from.
func (c *Characters) Original(k records.FormKey) (*records.Character, bool) {
	e, ok := c.entries[k]
	if !ok {
		return nil, false
	}
	return e.original, true
}

// Exists checks if an override exists for k.
func (c *Characters) Exists(k records.FormKey) bool {
	_, ok := c.entries[k]
	return ok
}

// Len returns the number of overrides.
func (c *Characters) Len() int {
	return len(c.order)
}

// List returns the overrides in creation order.
func (c *Characters) List() []*records.Character {
	out := make([]*records.Character, len(c.order))
	for i, k := range c.order {
		out[i] = c.entries[k].override
	}
	return out
}
