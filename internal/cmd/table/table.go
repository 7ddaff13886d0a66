// Package table converts racepatch records and results into rows for table output.
package table

import (
	"strconv"

	"github.com/agentstation/racepatch/pkg/differ"
	"github.com/agentstation/racepatch/pkg/records"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// RacesToTableData converts races to table format. Wide output adds the
// skeleton paths.
func RacesToTableData(races []*records.Race, wide bool) Data {
	headers := []string{"Form Key", "Editor ID", "Name", "Male", "Female"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight}
	if wide {
		headers = append(headers, "Male Skeleton", "Female Skeleton")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(races))
	for _, r := range races {
		row := []string{
			r.FormKey.String(),
			dash(r.EditorID),
			dash(r.Name),
			FormatHeight(r.Height.Male),
			FormatHeight(r.Height.Female),
		}
		if wide {
			row = append(row,
				dashPtr(r.Skeleton.Path(records.Male)),
				dashPtr(r.Skeleton.Path(records.Female)),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// CharactersToTableData converts characters to table format.
func CharactersToTableData(characters []*records.Character, wide bool) Data {
	headers := []string{"Form Key", "Name", "Height", "Sex"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft}
	if wide {
		headers = append(headers, "Editor ID", "Race")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(characters))
	for _, c := range characters {
		row := []string{
			c.FormKey.String(),
			dash(c.Name),
			FormatHeight(c.Height),
			c.Sex().String(),
		}
		if wide {
			row = append(row, dash(c.EditorID), c.Race.String())
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// ChangesetToTableData lists one row per changed field.
func ChangesetToTableData(c *differ.Changeset) Data {
	headers := []string{"Record", "Form Key", "Name", "Field", "Old", "New"}

	var rows [][]string
	if c != nil {
		for _, u := range c.Races {
			for _, f := range u.Changes {
				rows = append(rows, []string{"race", u.FormKey.String(), u.Name, f.Path, dash(f.OldValue), dash(f.NewValue)})
			}
		}
		for _, u := range c.Characters {
			for _, f := range u.Changes {
				rows = append(rows, []string{"character", u.FormKey.String(), u.Name, f.Path, dash(f.OldValue), dash(f.NewValue)})
			}
		}
	}

	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight},
	}
}

// FormatHeight formats a height multiplier for display.
func FormatHeight(h float32) string {
	return strconv.FormatFloat(float64(h), 'f', -1, 32)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func dashPtr(s *string) string {
	if s == nil {
		return "-"
	}
	return dash(*s)
}
