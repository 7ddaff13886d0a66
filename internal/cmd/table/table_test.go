package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/racepatch/internal/cmd/table"
	"github.com/agentstation/racepatch/pkg/differ"
	"github.com/agentstation/racepatch/pkg/records"
)

func TestRacesToTableData(t *testing.T) {
	skel := "skeleton.nif"
	races := []*records.Race{{
		FormKey:  records.MustParseFormKey("013746:Skyrim.esm"),
		Name:     "Nord",
		Height:   records.Gendered[float32]{Male: 1.05, Female: 1},
		Skeleton: &records.SkeletalModel{Male: &skel},
	}}

	data := table.RacesToTableData(races, false)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"013746:Skyrim.esm", "-", "Nord", "1.05", "1"}, data.Rows[0])

	wide := table.RacesToTableData(races, true)
	assert.Len(t, wide.Headers, 7)
	assert.Equal(t, []string{"skeleton.nif", "-"}, wide.Rows[0][5:])
}

func TestChangesetToTableData(t *testing.T) {
	c := &differ.Changeset{
		Characters: []differ.CharacterUpdate{{
			FormKey: records.MustParseFormKey("0A2C94:Skyrim.esm"),
			Name:    "Lydia",
			Changes: []differ.FieldChange{{Path: "height", OldValue: "1", NewValue: "0.9"}},
		}},
	}

	data := table.ChangesetToTableData(c)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, []string{"character", "0A2C94:Skyrim.esm", "Lydia", "height", "1", "0.9"}, data.Rows[0])
	assert.Empty(t, table.ChangesetToTableData(nil).Rows)
}
