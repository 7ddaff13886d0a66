package plugins_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/racepatch/internal/plugins"
	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/overrides"
	"github.com/agentstation/racepatch/pkg/records"
)

const skyrimYAML = `name: Skyrim.esm
header:
  author: Bethesda
races:
  - form_key: 013746:Skyrim.esm
    editor_id: NordRace
    name: Nord
    height:
      male: 1.0
      female: 1.0
    skeleton:
      male: Actors\Character\Character Assets\skeleton.nif
      female: Actors\Character\Character Assets Female\skeleton_female.nif
characters:
  - form_key: 0A2C94:Skyrim.esm
    name: Lydia
    height: 1.0
    race: 013746:Skyrim.esm
    female: true
`

const skeletonsTOML = `
[[races]]
form_key = "013746:Skyrim.esm"
name = "Nord"

[races.height]
male = 1.05
female = 1.02
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "Skyrim.esm.yaml", skyrimYAML)

	p, err := plugins.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Skyrim.esm", p.Name)
	assert.Equal(t, "Bethesda", p.Header.Author)
	require.Len(t, p.Races, 1)
	assert.Equal(t, records.MustParseFormKey("013746:Skyrim.esm"), p.Races[0].FormKey)
	require.NotNil(t, p.Races[0].Skeleton)
	assert.Equal(t, `Actors\Character\Character Assets\skeleton.nif`, *p.Races[0].Skeleton.Male)
	require.Len(t, p.Characters, 1)
	assert.True(t, p.Characters[0].Female)
}

func TestLoadTOMLTakesNameFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "FK's Diverse Racial Skeletons.esp.toml", skeletonsTOML)

	p, err := plugins.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FK's Diverse Racial Skeletons.esp", p.Name)
	require.Len(t, p.Races, 1)
	assert.Equal(t, float32(1.05), p.Races[0].Height.Male)
	assert.Nil(t, p.Races[0].Skeleton)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := plugins.Load(filepath.Join(dir, "Missing.esp.yaml"))
	assert.True(t, errors.IsNotFound(err))

	bad := writeFile(t, dir, "Bad.esp.yaml", "races:\n  - form_key: nothex:Bad.esp\n")
	_, err = plugins.Load(bad)
	var pe *errors.ParseError
	assert.ErrorAs(t, err, &pe)

	invalid := writeFile(t, dir, "Zero.esp.yaml", "races:\n  - form_key: 000800:Zero.esp\n    height: {male: 0, female: 1}\n")
	_, err = plugins.Load(invalid)
	assert.Error(t, err, "non-positive heights are rejected")

	_, err = plugins.Decode("notes.txt", []byte("x"))
	assert.ErrorAs(t, err, &pe)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src, err := plugins.Load(writeFile(t, dir, "Skyrim.esm.yaml", skyrimYAML))
	require.NoError(t, err)

	patch := overrides.New("HeightOfSkyrimPatch.esp")
	o := patch.Races().GetOrAddAsOverride(&src.Races[0])
	o.Height.Male = 1.05
	patch.Characters().GetOrAddAsOverride(&src.Characters[0])

	out := filepath.Join(dir, "out")
	path, err := plugins.Save(out, patch.Plugin())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "HeightOfSkyrimPatch.esp.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# HeightOfSkyrimPatch.esp - generated by racepatch\n"))

	loaded, err := plugins.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Skyrim.esm"}, loaded.Header.Masters)
	assert.Equal(t, patch.RunID(), loaded.Header.RunID)
	require.Len(t, loaded.Races, 1)
	assert.Equal(t, float32(1.05), loaded.Races[0].Height.Male)
	assert.Equal(t, *src.Races[0].Skeleton.Female, *loaded.Races[0].Skeleton.Female)
	require.Len(t, loaded.Characters, 1)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	_, err = plugins.Save(out, &records.Plugin{})
	assert.True(t, errors.IsValidationError(err))
}

func TestParseLoadOrder(t *testing.T) {
	input := `# Automatically generated
*Skyrim.esm
*FK's Diverse Racial Skeletons.esp   # skeletons

Disabled.esp
*Heights_of_Skyrim.esp
`
	entries, err := plugins.ParseLoadOrder(strings.NewReader(input), "plugins.txt")
	require.NoError(t, err)
	assert.Equal(t, []plugins.Entry{
		{Name: "Skyrim.esm", Enabled: true},
		{Name: "FK's Diverse Racial Skeletons.esp", Enabled: true},
		{Name: "Disabled.esp", Enabled: false},
		{Name: "Heights_of_Skyrim.esp", Enabled: true},
	}, entries)

	_, err = plugins.ParseLoadOrder(strings.NewReader("*Skyrim.esm\n*\n"), "plugins.txt")
	var pe *errors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
}

func TestLoadDir(t *testing.T) {
	t.Run("load order file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Skyrim.esm.yaml", skyrimYAML)
		writeFile(t, dir, "FK's Diverse Racial Skeletons.esp.toml", skeletonsTOML)
		writeFile(t, dir, "plugins.txt", "*skyrim.esm\n*FK's Diverse Racial Skeletons.esp\n*Heights_of_Skyrim.esp\n")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "backup"), 0o750))
		writeFile(t, filepath.Join(dir, "backup"), "Old.esp.yaml", "name: Old.esp\n")

		lo, err := plugins.LoadDir(context.Background(), dir, "")
		require.NoError(t, err)
		assert.Equal(t, 3, lo.Len())

		l, ok := lo.Listing("Heights_of_Skyrim.esp")
		require.True(t, ok)
		assert.False(t, l.Present())

		r, ok := lo.WinningRace(records.MustParseFormKey("013746:Skyrim.esm"))
		require.True(t, ok)
		assert.Equal(t, float32(1.05), r.Height.Male)

		_, ok = lo.Listing("Old.esp")
		assert.False(t, ok, "subdirectories are not searched")
	})

	t.Run("lexical order without load order file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "B.esp.yaml", "races:\n  - form_key: 000800:A.esm\n    height: {male: 2, female: 2}\n")
		writeFile(t, dir, "A.esm.yaml", "races:\n  - form_key: 000800:A.esm\n    height: {male: 1, female: 1}\n")

		lo, err := plugins.LoadDir(context.Background(), dir, "")
		require.NoError(t, err)
		require.Equal(t, 2, lo.Len())
		assert.Equal(t, 0, lo.Position("A.esm"))

		r, _ := lo.WinningRace(records.MustParseFormKey("000800:A.esm"))
		assert.Equal(t, float32(2), r.Height.Male)
	})

	t.Run("generated patches load last without load order file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "A.esm.yaml", "races:\n  - form_key: 000800:A.esm\n    height: {male: 1, female: 1}\n")
		writeFile(t, dir, "B.esp.yaml", "races:\n  - form_key: 000800:A.esm\n    height: {male: 2, female: 2}\n")
		writeFile(t, dir, "0Patch.esp.yaml", "header:\n  generated_by: racepatch\nraces:\n  - form_key: 000800:A.esm\n    height: {male: 3, female: 3}\n")

		// A trailing separator still finds the top-level files.
		lo, err := plugins.LoadDir(context.Background(), dir+string(filepath.Separator), "")
		require.NoError(t, err)
		require.Equal(t, 3, lo.Len())
		assert.Equal(t, 2, lo.Position("0Patch.esp"))
		assert.Equal(t, 0, lo.Position("A.esm"))
	})

	t.Run("explicit missing load order file", func(t *testing.T) {
		_, err := plugins.LoadDir(context.Background(), t.TempDir(), filepath.Join(t.TempDir(), "nope.txt"))
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("broken plugin", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Broken.esp.yaml", "races: [")
		_, err := plugins.LoadDir(context.Background(), dir, "")
		var pe *errors.ParseError
		assert.ErrorAs(t, err, &pe)
	})
}
