// Package overrides holds the output layer of a run: copy-on-write override
// records shadowing the winning versions of races and characters.
//
// Overrides are created lazily by GetOrAddAsOverride the first time a record
// has to change; later calls return the same shadow. The records passed in
// are never modified. A Patch is owned by a single run and is not safe for
// concurrent use.
package overrides

import (
	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/racepatch/pkg/constants"
	"github.com/agentstation/racepatch/pkg/records"
)

// Patch is the in-memory override plugin produced by a run.
type Patch struct {
	name       string
	runID      string
	races      *Races
	characters *Characters
}

// New creates an empty patch named name. Each patch gets a fresh run ID that
// is written into its header.
func New(name string) *Patch {
	return &Patch{
		name:       name,
		runID:      uuid.NewString(),
		races:      NewRaces(),
		characters: NewCharacters(),
	}
}

// Name returns the patch plugin name.
func (p *Patch) Name() string {
	return p.name
}

// RunID returns the identifier of the run that produced the patch.
func (p *Patch) RunID() string {
	return p.runID
}

// Races returns the race overrides.
func (p *Patch) Races() *Races {
	return p.races
}

// Characters returns the character overrides.
func (p *Patch) Characters() *Characters {
	return p.characters
}

// IsEmpty reports whether the patch holds no overrides.
func (p *Patch) IsEmpty() bool {
	return p.races.Len() == 0 && p.characters.Len() == 0
}

// Masters returns the plugins the overrides depend on, in first-use order.
func (p *Patch) Masters() []string {
	seen := make(map[string]bool)
	var masters []string
	add := func(plugin string) {
		if plugin == "" || plugin == p.name || seen[plugin] {
			return
		}
		seen[plugin] = true
		masters = append(masters, plugin)
	}

	for _, r := range p.races.List() {
		add(r.FormKey.Plugin)
	}
	for _, c := range p.characters.List() {
		add(c.FormKey.Plugin)
		add(c.Race.Plugin)
	}
	return masters
}

// Plugin snapshots the patch as a plugin. The returned records are copies.
func (p *Patch) Plugin() *records.Plugin {
	now := utc.Now()
	plugin := &records.Plugin{
		Name: p.name,
		Header: records.Header{
			Masters:     p.Masters(),
			GeneratedBy: constants.GeneratorName,
			GeneratedAt: &now,
			RunID:       p.runID,
		},
	}

	for _, r := range p.races.List() {
		plugin.Races = append(plugin.Races, *r.Copy())
	}
	for _, c := range p.characters.List() {
		plugin.Characters = append(plugin.Characters, *c.Copy())
	}
	return plugin
}
