// Package report renders a Markdown summary of a reconciliation run, suitable
// for shipping next to a generated patch.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/racepatch/pkg/constants"
	"github.com/agentstation/racepatch/pkg/differ"
	"github.com/agentstation/racepatch/pkg/errors"
	"github.com/agentstation/racepatch/pkg/reconciler"
)

// Write renders result as Markdown.
func Write(w io.Writer, result *reconciler.Result) error {
	meta := result.Metadata
	doc := md.NewMarkdown(w)

	doc.H1(meta.Patch).LF()
	doc.PlainText(fmt.Sprintf("Generated by %s from %s and %s.",
		constants.GeneratorName, meta.SkeletonSource, meta.HeightSource)).LF().LF()

	doc.H2("Run").LF()
	doc.Table(md.TableSet{
		Header: []string{"Setting", "Value"},
		Rows: [][]string{
			{"Run ID", meta.RunID},
			{"Skeleton source", meta.SkeletonSource},
			{"Height source", meta.HeightSource},
			{"Height change multiplier", strconv.FormatFloat(meta.Multiplier, 'f', -1, 64)},
			{"Dry run", strconv.FormatBool(meta.DryRun)},
			{"Duration", meta.Duration.String()},
		},
	}).LF()

	s := meta.Stats
	doc.H2("Statistics").LF()
	doc.Table(md.TableSet{
		Header: []string{"Records", "Examined", "Changed", "Skipped"},
		Rows: [][]string{
			{"Races", strconv.Itoa(s.RacesExamined), strconv.Itoa(s.RacesPatched), strconv.Itoa(s.RacesSkipped)},
			{"Characters", strconv.Itoa(s.CharactersExamined), strconv.Itoa(s.CharactersAdjusted()), strconv.Itoa(s.CharactersSkipped)},
		},
	}).LF()
	doc.BulletList(
		fmt.Sprintf("%d characters had their height applied directly", s.CharactersDirect),
		fmt.Sprintf("%d characters were scaled against a changed race height", s.CharactersScaled),
	).LF()

	if result.Changeset != nil {
		writeRaces(doc, result.Changeset.Races)
		writeCharacters(doc, result.Changeset.Characters)
	}

	return doc.Build()
}

func writeRaces(doc *md.Markdown, updates []differ.RaceUpdate) {
	if len(updates) == 0 {
		return
	}
	var rows [][]string
	for _, u := range updates {
		rows = append(rows, changeRows(u.FormKey.String(), u.Name, u.Changes)...)
	}
	writeChanges(doc, fmt.Sprintf("Races (%d)", len(updates)), rows)
}

func writeCharacters(doc *md.Markdown, updates []differ.CharacterUpdate) {
	if len(updates) == 0 {
		return
	}
	var rows [][]string
	for _, u := range updates {
		rows = append(rows, changeRows(u.FormKey.String(), u.Name, u.Changes)...)
	}
	writeChanges(doc, fmt.Sprintf("Characters (%d)", len(updates)), rows)
}

func writeChanges(doc *md.Markdown, title string, rows [][]string) {
	doc.H2(title).LF()
	doc.Table(md.TableSet{
		Header: []string{"Form Key", "Name", "Field", "Old", "New"},
		Rows:   rows,
	}).LF()
}

func changeRows(key, name string, changes []differ.FieldChange) [][]string {
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, []string{key, name, c.Path, c.OldValue, c.NewValue})
	}
	return rows
}

// WriteFile renders result into the file at path.
func WriteFile(path string, result *reconciler.Result) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions) //nolint:gosec // user supplied report path
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := Write(f, result); err != nil {
		_ = f.Close()
		return errors.WrapIO("write", path, err)
	}
	return errors.WrapIO("close", path, f.Close())
}
