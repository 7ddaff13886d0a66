package plugins

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/agentstation/racepatch/pkg/errors"
)

// Entry is one plugin line of a load order file.
type Entry struct {
	Name    string
	Enabled bool
}

// ParseLoadOrder reads a plugins.txt style list: one plugin per line in
// priority order (lowest first), "*" marks an enabled plugin, "#" starts a
// comment and blank lines are ignored.
func ParseLoadOrder(r io.Reader, file string) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.Index(text, "#"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		enabled := strings.HasPrefix(text, "*")
		name := strings.TrimSpace(strings.TrimPrefix(text, "*"))
		if name == "" {
			return nil, &errors.ParseError{
				Format:  "loadorder",
				File:    file,
				Line:    line,
				Message: "enabled marker without a plugin name",
			}
		}
		entries = append(entries, Entry{Name: name, Enabled: enabled})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapIO("read", file, err)
	}
	return entries, nil
}

// ReadLoadOrderFile parses the load order file at path.
func ReadLoadOrderFile(path string) ([]Entry, error) {
	f, err := os.Open(path) //nolint:gosec // user supplied load order path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("load order file", path)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	return ParseLoadOrder(f, path)
}
