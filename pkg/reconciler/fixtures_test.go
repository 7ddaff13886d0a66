package reconciler_test

import (
	"github.com/agentstation/racepatch/pkg/constants"
	"github.com/agentstation/racepatch/pkg/loadorder"
	"github.com/agentstation/racepatch/pkg/records"
)

var (
	nordKey  = records.MustParseFormKey("013746:Skyrim.esm")
	orcKey   = records.MustParseFormKey("013747:Skyrim.esm")
	lydiaKey = records.MustParseFormKey("0A2C94:Skyrim.esm")
	borriKey = records.MustParseFormKey("01A6D3:Skyrim.esm")
	ghorzKey = records.MustParseFormKey("01B07F:Skyrim.esm")
)

const (
	malePath   = `Actors\Character\Character Assets\skeleton.nif`
	femalePath = `Actors\Character\Character Assets Female\skeleton_female.nif`
	fkMalePath = `Actors\Character\FK\Nord\skeleton.nif`
)

func strPtr(s string) *string { return &s }

func race(key records.FormKey, name string, male, female float32, skel *records.SkeletalModel) records.Race {
	return records.Race{
		FormKey:  key,
		EditorID: name + "Race",
		Name:     name,
		Height:   records.Gendered[float32]{Male: male, Female: female},
		Skeleton: skel,
	}
}

func vanillaSkeleton() *records.SkeletalModel {
	return &records.SkeletalModel{Male: strPtr(malePath), Female: strPtr(femalePath)}
}

func character(key records.FormKey, name string, height float32, raceKey records.FormKey, female bool) records.Character {
	return records.Character{FormKey: key, Name: name, Height: height, Race: raceKey, Female: female}
}

// fixture is a four plugin load order: the base game, the skeleton source,
// the height source, and an overhaul loaded last that reverts some values.
type fixture struct {
	base      *records.Plugin
	skeletons *records.Plugin
	heights   *records.Plugin
	overhaul  *records.Plugin
}

func newFixture() *fixture {
	return &fixture{
		base: &records.Plugin{
			Name: "Skyrim.esm",
			Races: []records.Race{
				race(nordKey, "Nord", 1.0, 1.0, vanillaSkeleton()),
				race(orcKey, "Orc", 1.0, 1.0, vanillaSkeleton()),
			},
			Characters: []records.Character{
				character(lydiaKey, "Lydia", 1.0, nordKey, true),
				character(borriKey, "Borri", 1.0, nordKey, false),
				character(ghorzKey, "Ghorza", 1.0, orcKey, true),
			},
		},
		skeletons: &records.Plugin{Name: constants.DefaultSkeletonSource},
		heights:   &records.Plugin{Name: constants.DefaultHeightSource},
		overhaul:  &records.Plugin{Name: "Overhaul.esp"},
	}
}

func (f *fixture) loadOrder() *loadorder.LoadOrder {
	return loadorder.FromPlugins(f.base, f.skeletons, f.heights, f.overhaul)
}
