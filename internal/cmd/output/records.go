package output

import (
	"io"

	"github.com/agentstation/racepatch/internal/cmd/table"
	"github.com/agentstation/racepatch/pkg/records"
	"github.com/agentstation/racepatch/pkg/reconciler"
)

// isTable reports whether format renders as a table.
func isTable(format Format) bool {
	return format == FormatTable || format == FormatWide || format == ""
}

// FormatRaces writes races as a table, or as structured data for json/yaml.
func FormatRaces(w io.Writer, races []*records.Race, format Format) error {
	var data any = races
	if isTable(format) {
		data = table.RacesToTableData(races, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatCharacters writes characters as a table, or as structured data for json/yaml.
func FormatCharacters(w io.Writer, characters []*records.Character, format Format) error {
	var data any = characters
	if isTable(format) {
		data = table.CharactersToTableData(characters, format == FormatWide)
	}
	return NewFormatter(format).Format(w, data)
}

// FormatResult writes the field changes of a run. Structured formats get
// the whole result.
func FormatResult(w io.Writer, result *reconciler.Result, format Format) error {
	if !isTable(format) {
		return NewFormatter(format).Format(w, result)
	}
	if !result.HasChanges() {
		return nil
	}
	return NewFormatter(format).Format(w, table.ChangesetToTableData(result.Changeset))
}
