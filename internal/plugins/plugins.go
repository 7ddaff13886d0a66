// Package plugins reads and writes plugin record files and the load order
// file that lists them.
//
// A plugin named "Skyrim.esm" lives in "Skyrim.esm.yaml" (or ".yml", or
// ".toml" for hand-written plugins) inside the data directory. Patches are
// always written as YAML.
package plugins

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/racepatch/pkg/constants"
	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/logging"
	"github.com/agentstation/racepatch/pkg/records"
)

// Load reads a single plugin file.
func Load(path string) (*records.Plugin, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the data directory listing
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("plugin file", path)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return Decode(path, data)
}

// FileName returns the file name a plugin is saved under.
func FileName(plugin string) string {
	return plugin + constants.PluginFileExt
}

// Save writes p into dir as YAML and returns the written path. The file is
// replaced atomically.
func Save(dir string, p *records.Plugin) (string, error) {
	if p.Name == "" {
		return "", &errors.ValidationError{Field: "name", Message: "plugin has no name"}
	}

	data, err := Encode(p)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", dir, err)
	}

	path := filepath.Join(dir, FileName(p.Name))
	header := fmt.Sprintf("# %s - generated by %s\n", p.Name, constants.GeneratorName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append([]byte(header), data...), constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", errors.WrapIO("rename", path, err)
	}

	logging.Debug().
		Str("plugin", p.Name).
		Str("path", path).
		Int("races", len(p.Races)).
		Int("characters", len(p.Characters)).
		Msg("Saved plugin")

	return path, nil
}
