package plugins

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/sourcegraph/conc/pool"

	"github.com/agentstation/racepatch/pkg/constants"
	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/loadorder"
	"github.com/agentstation/racepatch/pkg/logging"
)

// Discover lists the plugin files directly inside dataDir, keyed by the
// lowercased plugin name. Subdirectories are not searched.
func Discover(dataDir string) (map[string]string, error) {
	found := make(map[string]string)
	root := filepath.Clean(dataDir)
	err := godirwalk.Walk(dataDir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				if filepath.Clean(path) != root {
					return godirwalk.SkipThis
				}
				return nil
			}
			if _, name, ok := codecFor(path); ok {
				found[strings.ToLower(name)] = path
			}
			return nil
		},
	})
	if err != nil {
		return nil, errors.WrapIO("walk", dataDir, err)
	}
	return found, nil
}

// LoadDir builds the load order for dataDir.
//
// The order comes from loadOrderFile, or from the data directory's
// plugins.txt when loadOrderFile is empty. Without either, every plugin in
// the directory is enabled in lexical file name order. Plugins named by the
// load order but missing from the directory become listings without records
// so runnability checks can report them.
func LoadDir(ctx context.Context, dataDir, loadOrderFile string) (*loadorder.LoadOrder, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(dataDir)
	if err != nil {
		return nil, err
	}

	entries, listed, err := resolveEntries(dataDir, loadOrderFile, files)
	if err != nil {
		return nil, err
	}

	listings := make([]loadorder.Listing, len(entries))
	p := pool.New().WithErrors().WithMaxGoroutines(runtime.GOMAXPROCS(0))
	for i, e := range entries {
		i := i
		listings[i] =loadorder.Listing{Name: e.Name, Enabled: e.Enabled}
		path, ok := files[strings.ToLower(e.Name)]
		if !ok {
			logger.Warn().Str("plugin", e.Name).Msg("Plugin listed in load order but not found in data directory")
			continue
		}
		p.Go(func() error {
			if ctx.Err() != nil {
				return errors.WrapCanceled("load plugins", ctx.Err())
			}
			plugin, err := Load(path)
			if err != nil {
				return err
			}
			listings[i].Plugin = plugin
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	if !listed {
		generatedLast(listings)
	}

	logger.Debug().
		Str("data_dir", dataDir).
		Int("plugins", len(listings)).
		Msg("Loaded load order")

	return loadorder.New(listings...), nil
}

// resolveEntries picks the load order source for LoadDir. listed is false
// when the order was derived from file names.
func resolveEntries(dataDir, loadOrderFile string, files map[string]string) (entries []Entry, listed bool, err error) {
	if loadOrderFile != "" {
		entries, err = ReadLoadOrderFile(loadOrderFile)
		return entries, true, err
	}

	def := filepath.Join(dataDir, constants.DefaultLoadOrderFile)
	if _, err := os.Stat(def); err == nil {
		entries, err = ReadLoadOrderFile(def)
		return entries, true, err
	}

	paths := make([]string, 0, len(files))
	for _, path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	entries = make([]Entry, 0, len(paths))
	for _, path := range paths {
		_, name, _ := codecFor(path)
		entries = append(entries, Entry{Name: name, Enabled: true})
	}
	return entries, false, nil
}

// generatedLast moves plugins written by this tool behind hand-authored
// ones, keeping the relative order within each group.
func generatedLast(listings []loadorder.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		return !isGenerated(listings[i]) && isGenerated(listings[j])
	})
}

func isGenerated(l loadorder.Listing) bool {
	return l.Plugin != nil && l.Plugin.Header.GeneratedBy == constants.GeneratorName
}
