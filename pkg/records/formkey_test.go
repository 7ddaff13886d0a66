package records_test

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/records"
)

func TestParseFormKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    records.FormKey
		wantErr bool
	}{
		{name: "padded id", input: "013746:Skyrim.esm", want: records.NewFormKey(0x013746, "Skyrim.esm")},
		{name: "short id", input: "7:Skyrim.esm", want: records.NewFormKey(7, "Skyrim.esm")},
		{name: "plugin with spaces", input: "000D62:FK's Diverse Racial Skeletons.esp", want: records.NewFormKey(0xD62, "FK's Diverse Racial Skeletons.esp")},
		{name: "surrounding whitespace", input: "  000001:a.esp ", want: records.NewFormKey(1, "a.esp")},
		{name: "missing separator", input: "013746", wantErr: true},
		{name: "missing plugin", input: "013746:", wantErr: true},
		{name: "bad hex", input: "XYZ:Skyrim.esm", wantErr: true},
		{name: "id too large", input: "1000000:Skyrim.esm", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := records.ParseFormKey(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				var pe *errors.ParseError
				assert.ErrorAs(t, err, &pe)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFormKeyString(t *testing.T) {
	assert.Equal(t, "013746:Skyrim.esm", records.NewFormKey(0x13746, "Skyrim.esm").String())
	assert.True(t, records.FormKey{}.IsNull())
	assert.False(t, records.NewFormKey(0, "a.esp").IsNull())
}

func TestFormKeyYAML(t *testing.T) {
	type wrapper struct {
		Key records.FormKey `yaml:"key"`
	}

	data, err := yaml.Marshal(wrapper{Key: records.NewFormKey(0x13746, "Skyrim.esm")})
	require.NoError(t, err)
	assert.Contains(t, string(data), "013746:Skyrim.esm")

	var decoded wrapper
	require.NoError(t, yaml.Unmarshal([]byte("key: 000D62:Dawnguard.esm\n"), &decoded))
	assert.Equal(t, records.NewFormKey(0xD62, "Dawnguard.esm"), decoded.Key)

	assert.Error(t, yaml.Unmarshal([]byte("key: nonsense\n"), &decoded))
}

func TestMustParseFormKeyPanics(t *testing.T) {
	assert.Panics(t, func() { records.MustParseFormKey("bad") })
}
