package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/racepatch/internal/cmd/output"
	"github.com/agentstation/racepatch/internal/cmd/table"
	"github.com/agentstation/racepatch/pkg/records"
)

func sampleRaces() []*records.Race {
	return []*records.Race{{
		FormKey: records.MustParseFormKey("013746:Skyrim.esm"),
		Name:    "Nord",
		Height:  records.Gendered[float32]{Male: 1.05, Female: 1},
	}}
}

func TestFormatRaces(t *testing.T) {
	tests := []struct {
		format output.Format
		want   []string
	}{
		{output.FormatTable, []string{"013746:Skyrim.esm", "1.05"}},
		{output.FormatJSON, []string{`"form_key": "013746:Skyrim.esm"`, `"male": 1.05`}},
		{output.FormatYAML, []string{"form_key: 013746:Skyrim.esm", "name: Nord"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, output.FormatRaces(&buf, sampleRaces(), tt.format))
			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := output.ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, output.FormatYAML, f)

	_, err = output.ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, output.FormatWide, output.DetectFormat("wide"))
}

func TestTableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewFormatter(output.FormatTable).Format(&buf, map[string]int{"races_patched": 2}))
	assert.JSONEq(t, `{"races_patched": 2}`, buf.String())
}

func TestTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	data := output.Data{
		Headers:         []string{"Name", "Height"},
		Rows:            [][]string{{"Lydia", "1.05"}, {"Borri", "0.925"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	}
	require.NoError(t, output.NewFormatter(output.FormatWide).Format(&buf, data))
	assert.Contains(t, strings.ToUpper(buf.String()), "HEIGHT")
	assert.Contains(t, buf.String(), "0.925")
}
