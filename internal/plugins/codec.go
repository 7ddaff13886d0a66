package plugins

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/agentstation/racepatch/pkg/constants"
	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/records"
)

// codec decodes one plugin file format.
type codec struct {
	format string
	decode func(data []byte, p *records.Plugin) error
}

var codecs = map[string]codec{
	constants.PluginFileExt: {format: "yaml", decode: decodeYAML},
	".yml":                  {format: "yaml", decode: decodeYAML},
	".toml":                 {format: "toml", decode: decodeTOML},
}

func decodeYAML(data []byte, p *records.Plugin) error {
	return yaml.Unmarshal(data, p)
}

func decodeTOML(data []byte, p *records.Plugin) error {
	_, err := toml.Decode(string(data), p)
	return err
}

// codecFor returns the codec for a plugin file path and the plugin name the
// file name implies.
func codecFor(path string) (codec, string, bool) {
	base := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(base))
	c, ok := codecs[ext]
	if !ok {
		return codec{}, "", false
	}
	return c, strings.TrimSuffix(base, filepath.Ext(base)), true
}

// Decode parses plugin data in the format implied by path.
func Decode(path string, data []byte) (*records.Plugin, error) {
	c, name, ok := codecFor(path)
	if !ok {
		return nil, errors.NewParseError("plugin", path, "unsupported plugin file extension", nil)
	}

	var p records.Plugin
	if err := c.decode(data, &p); err != nil {
		return nil, errors.WrapParse(c.format, path, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	if err := p.Validate(); err != nil {
		return nil, errors.WrapParse(c.format, path, err)
	}
	return &p, nil
}

// Encode renders a plugin as YAML.
func Encode(p *records.Plugin) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, errors.WrapParse("yaml", p.Name, err)
	}
	return data, nil
}
